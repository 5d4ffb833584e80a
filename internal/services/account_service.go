package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"

	"expensetracker/internal/auth"
	"expensetracker/internal/core"
)

// Registration is the submitted sign-up form.
type Registration struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (r Registration) Validate() error {
	v := &core.ValidationErrors{}
	if strings.TrimSpace(r.FullName) == "" {
		v.Add("FullName", "Full name is required.")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		v.Add("Email", "Email is required.")
	} else if err := checkmail.ValidateFormat(email); err != nil {
		v.Add("Email", "Email is not a valid address.")
	}
	switch {
	case utf8.RuneCountInString(r.Password) < auth.MinPasswordLen:
		v.Add("Password", fmt.Sprintf("Password must be at least %d characters.", auth.MinPasswordLen))
	case len(r.Password) > auth.MaxPasswordBytes:
		v.Add("Password", fmt.Sprintf("Password must be at most %d bytes.", auth.MaxPasswordBytes))
	}
	if r.Password != r.ConfirmPassword {
		v.Add("ConfirmPassword", "Passwords do not match.")
	}
	return v.OrNil()
}

type AccountService struct {
	users UserStore
}

func NewAccountService(users UserStore) *AccountService {
	return &AccountService{users: users}
}

// Register validates r and creates the user. A taken email is a validation error.
func (s *AccountService) Register(ctx context.Context, r Registration) (core.User, error) {
	if err := r.Validate(); err != nil {
		return core.User{}, err
	}
	hash, err := auth.HashPassword(r.Password)
	if err != nil {
		return core.User{}, err
	}

	u, err := s.users.CreateUser(ctx, core.User{
		ID:           uuid.NewString(),
		FullName:     strings.TrimSpace(r.FullName),
		Email:        strings.TrimSpace(r.Email),
		PasswordHash: hash,
	})
	if errors.Is(err, core.ErrEmailTaken) {
		v := &core.ValidationErrors{}
		v.Add("Email", "An account with this email already exists.")
		return core.User{}, v
	}
	if err != nil {
		return core.User{}, fmt.Errorf("register user: %w", err)
	}
	return u, nil
}

// Login checks the credentials and returns core.ErrInvalidCredentials for an
// unknown email or a wrong password alike.
func (s *AccountService) Login(ctx context.Context, email, password string) (core.User, error) {
	u, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, core.ErrNotFound) {
		return core.User{}, core.ErrInvalidCredentials
	}
	if err != nil {
		return core.User{}, fmt.Errorf("login: %w", err)
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return core.User{}, core.ErrInvalidCredentials
	}
	return u, nil
}
