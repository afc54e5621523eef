package app

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"stayfinder/internal/domain"
)

const minPasswordLength = 6

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (in RegisterInput) Validate() error {
	verr := domain.NewValidationError()
	if _, err := mail.ParseAddress(in.Email); err != nil {
		verr.Add("email", "must be a valid email address")
	}
	if len(in.Password) < minPasswordLength {
		verr.Add("password", "must be at least 6 characters")
	}
	requireText(verr, "firstName", in.FirstName)
	requireText(verr, "lastName", in.LastName)
	return verr.OrNil()
}

// ProfileUpdate mutates names and optionally the password. An empty Password
// leaves the stored hash untouched.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Password  string
}

type UserService struct {
	repo domain.UserRepository
}

func NewUserService(r domain.UserRepository) *UserService {
	return &UserService{repo: r}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if err := in.Validate(); err != nil {
		return domain.User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Authenticate resolves email+password to the stored user. Failures are
// indistinguishable between unknown email and wrong password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// burn comparable time so timing doesn't reveal account existence
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		}
		return domain.User{}, domain.ErrNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

// UpdateProfile rehashes only when the raw password field changed; an
// unrelated update reuses nothing and recomputes nothing.
func (s *UserService) UpdateProfile(ctx context.Context, p domain.Principal, in ProfileUpdate) (domain.User, error) {
	u, err := s.repo.GetUser(ctx, p.UserID)
	if err != nil {
		return domain.User{}, err
	}
	verr := domain.NewValidationError()
	requireText(verr, "firstName", in.FirstName)
	requireText(verr, "lastName", in.LastName)
	if in.Password != "" && len(in.Password) < minPasswordLength {
		verr.Add("password", "must be at least 6 characters")
	}
	if err := verr.OrNil(); err != nil {
		return domain.User{}, err
	}

	u.FirstName = in.FirstName
	u.LastName = in.LastName
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.User{}, err
		}
		u.PasswordHash = string(hash)
	}
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// dummyHash is a throwaway bcrypt hash used only for timing equalization.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
