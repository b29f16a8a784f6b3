package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRegisterRequiresCampusEmail(t *testing.T) {
	app := newTestApp(t)
	resp := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"name": "Outsider", "email": "outsider@gmail.com", "password": "secret1",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for non-campus email, got %d", resp.StatusCode)
	}
}

func TestRegisterLoginAndMe(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"name": "Azlan", "email": "azlan@student.usm.my", "password": "secret1",
		"phone": "0123334444", "matricNumber": "158123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: want 201, got %d", resp.StatusCode)
	}
	var reg struct {
		Token string `json:"token"`
		User  struct {
			ID   int    `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	decode(t, resp, &reg)
	if reg.Token == "" || reg.User.Role != "user" {
		t.Fatalf("register payload wrong: %+v", reg)
	}
	// Seed users hold IDs 1 and 2.
	if reg.User.ID != 3 {
		t.Fatalf("want next user id 3, got %d", reg.User.ID)
	}

	token := login(t, app, "azlan@student.usm.my", "secret1")
	resp = doJSON(t, app, "GET", "/api/auth/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: want 200, got %d", resp.StatusCode)
	}
	var me map[string]any
	decode(t, resp, &me)
	if me["email"] != "azlan@student.usm.my" {
		t.Fatalf("me returned wrong user: %v", me)
	}
	if _, leaked := me["password"]; leaked {
		t.Fatal("credential hash leaked in /me response")
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	app := newTestApp(t)

	body := fiber.Map{"name": "Azlan", "email": "azlan@student.usm.my", "password": "secret1"}
	if resp := doJSON(t, app, "POST", "/api/auth/register", "", body); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first register failed: %d", resp.StatusCode)
	}

	// Same address, different case.
	body["email"] = "AZLAN@student.usm.my"
	resp := doJSON(t, app, "POST", "/api/auth/register", "", body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 on duplicate email, got %d", resp.StatusCode)
	}
	var out map[string]string
	decode(t, resp, &out)
	if out["error"] != "Email already registered" {
		t.Fatalf("want conflict message, got %q", out["error"])
	}
}

func TestRequestsWithoutTokenRejected(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/api/auth/me", "/api/users/profile", "/api/users/my-listings"} {
		resp := doJSON(t, app, "GET", path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: want 401, got %d", path, resp.StatusCode)
		}
	}
	resp := doJSON(t, app, "GET", "/api/auth/me", "not-a-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: want 401, got %d", resp.StatusCode)
	}
}

func TestUpdateProfile(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "student@2street.usm.my", "user123")

	resp := doJSON(t, app, "PUT", "/api/users/profile", token, fiber.Map{
		"name": "Renamed Student", "phone": "0199990000",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update profile: want 200, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/api/users/profile", token, nil)
	var me map[string]any
	decode(t, resp, &me)
	if me["name"] != "Renamed Student" || me["phone"] != "0199990000" {
		t.Fatalf("profile not merged: %v", me)
	}
	// Untouched field survives the partial update.
	if me["matric_number"] != "STU001" {
		t.Fatalf("matric number lost: %v", me)
	}
}
