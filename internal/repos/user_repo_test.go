package repos_test

import (
	"errors"
	"path/filepath"
	"testing"

	"twostreet/internal/domain"
	"twostreet/internal/repos"
	"twostreet/internal/store"
)

func tempStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCreateUserRejectsDuplicateEmailCaseInsensitive(t *testing.T) {
	users := repos.NewUserRepo(tempStore(t))

	first, err := users.Create(domain.User{Name: "Aisha", Email: "aisha@student.usm.my", Password: "h"})
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == 0 || first.Role != domain.RoleUser || first.Status != domain.StatusActive {
		t.Fatalf("create defaults wrong: %+v", first)
	}

	_, err = users.Create(domain.User{Name: "Imposter", Email: "AISHA@Student.USM.my", Password: "h"})
	if !errors.Is(err, repos.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}

	if got := users.ByEmail("AISHA@STUDENT.USM.MY"); got == nil || got.ID != first.ID {
		t.Fatalf("case-insensitive lookup failed: %+v", got)
	}
}

func TestReadsReturnDefensiveCopies(t *testing.T) {
	users := repos.NewUserRepo(tempStore(t))

	u := users.ByID(1)
	if u == nil {
		t.Fatal("seed admin missing")
	}
	u.Name = "mutated"
	u.Status = domain.StatusBanned

	again := users.ByID(1)
	if again.Name == "mutated" || again.Status == domain.StatusBanned {
		t.Fatalf("caller mutation leaked into store: %+v", again)
	}

	all := users.All()
	all[0].Email = "hax@student.usm.my"
	if users.ByID(all[0].ID).Email == "hax@student.usm.my" {
		t.Fatal("slice mutation leaked into store")
	}
}

func TestUpdateUserMergesAndSignalsNotFound(t *testing.T) {
	users := repos.NewUserRepo(tempStore(t))

	phone := "0111222333"
	updated, err := users.Update(2, repos.UserUpdate{Phone: &phone})
	if err != nil {
		t.Fatal(err)
	}
	if updated == nil || updated.Phone != phone {
		t.Fatalf("phone not merged: %+v", updated)
	}
	if updated.Name != "Student User" || updated.Email != "student@2street.usm.my" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	missing, err := users.Update(999, repos.UserUpdate{Phone: &phone})
	if err != nil || missing != nil {
		t.Fatalf("missing row must be (nil, nil), got %+v %v", missing, err)
	}
}
