package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"twostreet/internal/domain"
	"twostreet/internal/repos"
)

var (
	ErrBadCreds = errors.New("invalid credentials")
	ErrBanned   = errors.New("account banned")
)

const tokenTTL = 7 * 24 * time.Hour

type AuthService struct {
	Users  *repos.UserRepo
	Secret []byte
}

func NewAuthService(users *repos.UserRepo, secret string) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret)}
}

// Register hashes the password and creates the user; duplicate emails surface
// as repos.ErrEmailTaken. Returns the created user and a fresh token.
func (s *AuthService) Register(name, email, password, phone, matric string) (domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return domain.User{}, "", err
	}
	u, err := s.Users.Create(domain.User{
		Name:         name,
		Email:        email,
		Password:     string(hash),
		Phone:        phone,
		MatricNumber: matric,
	})
	if err != nil {
		return domain.User{}, "", err
	}
	tok, err := s.Token(u.ID, u.Role)
	return u, tok, err
}

func (s *AuthService) Login(email, password string) (domain.User, string, error) {
	u := s.Users.ByEmail(email)
	if u == nil {
		return domain.User{}, "", ErrBadCreds
	}
	if u.Status == domain.StatusBanned {
		return domain.User{}, "", ErrBanned
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return domain.User{}, "", ErrBadCreds
	}
	tok, err := s.Token(u.ID, u.Role)
	return *u, tok, err
}

// Token issues an HS256 JWT carrying the authenticated principal.
func (s *AuthService) Token(userID int, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Parse validates the token and returns the principal it carries.
func (s *AuthService) Parse(tokenStr string) (userID int, role string, err error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, "", ErrBadCreds
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrBadCreds
	}
	id, ok := claims["user_id"].(float64) // JWT numbers decode as float64
	if !ok {
		return 0, "", ErrBadCreds
	}
	role, _ = claims["role"].(string)
	return int(id), role, nil
}
