package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vbonduro/assetreg/internal/domain"
)

// userRepository is the subset of store.UserStore that UserService requires.
type userRepository interface {
	CreatePlaceholder(ctx context.Context, name string) (*domain.User, error)
	CreateAccount(ctx context.Context, name, email string, role domain.Role, passwordHash string) (*domain.User, error)
	UpgradeToAccount(ctx context.Context, id int64, email string, role domain.Role, passwordHash string) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type tokenIssuer interface {
	Issue(u *domain.User) (string, time.Time, error)
}

// AccountInput describes a login account. Role defaults to user.
type AccountInput struct {
	Name     string      `json:"name" validate:"required,max=200"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8,max=72"`
	Role     domain.Role `json:"role" validate:"oneof=admin user"`
}

type placeholderInput struct {
	Name string `json:"name" validate:"required,max=200"`
}

// Session is returned by a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type UserService struct {
	users    userRepository
	tokens   tokenIssuer
	activity activityRecorder
	logger   *slog.Logger
	hashCost int
}

func NewUserService(users userRepository, tokens tokenIssuer, activity activityRecorder, logger *slog.Logger) *UserService {
	return &UserService{
		users:    users,
		tokens:   tokens,
		activity: activity,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
	}
}

// Login checks the credentials of an account and issues a session token.
// Unknown emails, placeholders and wrong passwords all yield
// domain.ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if u == nil || !u.IsAccount || u.PasswordHash == "" {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to compare password: %w", err)
	}

	token, expires, err := s.tokens.Issue(u)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	s.logger.Info("user logged in", "user_id", u.ID)
	return &Session{Token: token, ExpiresAt: expires, User: u}, nil
}

// CreatePlaceholder records a custodian without a login, so assets can be
// assigned to them.
func (s *UserService) CreatePlaceholder(ctx context.Context, actor domain.Actor, name string) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("only administrators may add users: %w", domain.ErrForbidden)
	}
	in := placeholderInput{Name: titleCase(name)}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	u, err := s.users.CreatePlaceholder(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actor, "added user %s", u.Name)
	return u, nil
}

func (s *UserService) CreateAccount(ctx context.Context, actor domain.Actor, in AccountInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("only administrators may add users: %w", domain.ErrForbidden)
	}
	hash, err := s.prepareAccount(&in)
	if err != nil {
		return nil, err
	}
	u, err := s.users.CreateAccount(ctx, in.Name, in.Email, in.Role, hash)
	if err != nil {
		return nil, err
	}
	s.logger.Info("account created", "user_id", u.ID, "role", string(u.Role))
	s.activity.Record(ctx, actor, "created account for %s", u.Name)
	return u, nil
}

// UpgradeToAccount gives a placeholder a login. The placeholder's name is
// kept; in.Name is ignored.
func (s *UserService) UpgradeToAccount(ctx context.Context, actor domain.Actor, id int64, in AccountInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("only administrators may manage accounts: %w", domain.ErrForbidden)
	}
	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	if existing.IsAccount {
		return nil, domain.NewValidationError("id", "user already has an account")
	}

	in.Name = existing.Name
	hash, err := s.prepareAccount(&in)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpgradeToAccount(ctx, id, in.Email, in.Role, hash); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actor, "created account for %s", existing.Name)
	return s.users.GetByID(ctx, id)
}

// ListUsers returns accounts and placeholders ordered by name.
func (s *UserService) ListUsers(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("only administrators may list users: %w", domain.ErrForbidden)
	}
	return s.users.List(ctx)
}

func (s *UserService) prepareAccount(in *AccountInput) (string, error) {
	in.Name = titleCase(in.Name)
	in.Email = normalizeEmail(in.Email)
	if in.Role == "" {
		in.Role = domain.RoleUser
	}
	if err := validateStruct(in); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
