package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/model"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/repository"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/session"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/utils"
)

// UserStore is the slice of the user repository the service needs.  The
// concrete *repository.UserRepo satisfies it; tests plug in fakes.
type UserStore interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
}

// Service wires the password hasher, the credential store and the session
// manager into the signup/login/logout flow.
type Service struct {
	users      UserStore
	sessions   session.Store
	bcryptCost int
}

func NewService(users UserStore, sessions session.Store, bcryptCost int) *Service {
	return &Service{users: users, sessions: sessions, bcryptCost: bcryptCost}
}

// SignupInput carries the raw signup form fields.  Organization is the only
// optional one.
type SignupInput struct {
	Name         string
	Email        string
	Password     string
	Phone        uint64
	Location     string
	Organization string
	Role         string
}

// Signup validates the input, hashes the password and persists the record.
// The plaintext password is discarded as soon as the hash exists.  The
// returned user has its PasswordHash cleared so callers cannot leak it.
func (s *Service) Signup(ctx context.Context, in SignupInput) (model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Location = strings.TrimSpace(in.Location)
	in.Role = strings.TrimSpace(in.Role)

	if in.Name == "" || in.Email == "" || in.Password == "" || in.Phone == 0 || in.Location == "" {
		return model.User{}, ErrInvalidInput
	}
	if !model.ValidRole(in.Role) {
		return model.User{}, ErrInvalidInput
	}
	if in.Organization == "" {
		in.Organization = model.DefaultOrganization
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	in.Password = "" // plaintext is done with

	u, err := s.users.Create(ctx, model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Location:     in.Location,
		Organization: in.Organization,
		Role:         in.Role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return model.User{}, ErrEmailOrPhoneTaken
		}
		log.Printf("signup: create user failed: %v", err)
		return model.User{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	u.PasswordHash = ""
	return u, nil
}

// Login verifies the credentials and establishes a session.  Unknown email
// and wrong password stay distinguishable on purpose; see ErrUserNotFound.
func (s *Service) Login(ctx context.Context, email, password string) (string, session.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", session.Identity{}, ErrUserNotFound
		}
		log.Printf("login: lookup failed: %v", err)
		return "", session.Identity{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return "", session.Identity{}, ErrInvalidPassword
	}

	id := session.IdentityOf(u)
	token, err := s.sessions.Create(ctx, id)
	if err != nil {
		log.Printf("login: create session failed: %v", err)
		return "", session.Identity{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return token, id, nil
}

// Logout destroys the session.  From the caller's perspective it always
// succeeds; a store failure is logged and swallowed because the cookie is
// cleared regardless.
func (s *Service) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.sessions.Destroy(ctx, token); err != nil {
		log.Printf("logout: destroy session failed: %v", err)
	}
}

// CurrentUser resolves the session token.  ok is false for anonymous
// callers: no token, unknown token, or expired session.
func (s *Service) CurrentUser(ctx context.Context, token string) (session.Identity, bool) {
	if token == "" {
		return session.Identity{}, false
	}
	id, ok, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		log.Printf("currentuser: resolve failed: %v", err)
		return session.Identity{}, false
	}
	return id, ok
}
