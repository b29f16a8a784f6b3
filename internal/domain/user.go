package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusActive = "active"
	StatusBanned = "banned"
)

type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password,omitempty"` // bcrypt hash, stripped before leaving the API
	Phone        string `json:"phone,omitempty"`
	MatricNumber string `json:"matric_number,omitempty"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// Public returns the user without the credential hash.
func (u User) Public() User {
	u.Password = ""
	return u
}
