package application

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/harshaldafade/Scheduling-Agent/internal/persistence"
)

// UserService validates and persists user accounts.
type UserService struct {
	users       UserStore
	idGenerator func() string
	logger      *slog.Logger
}

// UserStore captures the persistence interactions needed by the service.
type UserStore interface {
	CreateUser(ctx context.Context, user persistence.User) (persistence.User, error)
	GetUser(ctx context.Context, id string) (persistence.User, error)
	GetUserByEmail(ctx context.Context, email string) (persistence.User, error)
	UpdateUser(ctx context.Context, user persistence.User) (persistence.User, error)
	ListUsers(ctx context.Context) ([]persistence.User, error)
}

// NewUserService wires dependencies for user operations.
func NewUserService(users UserStore, idGenerator func() string, logger *slog.Logger) *UserService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &UserService{
		users:       users,
		idGenerator: idGenerator,
		logger:      defaultLogger(logger),
	}
}

// CreateUser validates the input and stores a new account.
func (s *UserService) CreateUser(ctx context.Context, input UserInput) (UserView, error) {
	if vErr := validateUserInput(input); vErr.HasErrors() {
		return UserView{}, vErr
	}

	timezone := input.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	created, err := s.users.CreateUser(ctx, persistence.User{
		ID:           s.idGenerator(),
		Email:        strings.TrimSpace(input.Email),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Timezone:     timezone,
		Preferences:  input.Preferences,
		Availability: input.Availability,
	})
	if err != nil {
		return UserView{}, mapRepoError(err)
	}

	serviceLogger(ctx, s.logger, "users", "create", "user_id", created.ID).Info("user created")
	return userView(created), nil
}

// GetUser retrieves an account by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (UserView, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return UserView{}, mapRepoError(err)
	}
	return userView(user), nil
}

// UpdateUser replaces the mutable fields of an existing account.
func (s *UserService) UpdateUser(ctx context.Context, id string, input UserInput) (UserView, error) {
	if vErr := validateUserInput(input); vErr.HasErrors() {
		return UserView{}, vErr
	}

	current, err := s.users.GetUser(ctx, id)
	if err != nil {
		return UserView{}, mapRepoError(err)
	}

	current.Email = strings.TrimSpace(input.Email)
	current.DisplayName = strings.TrimSpace(input.DisplayName)
	if input.Timezone != "" {
		current.Timezone = input.Timezone
	}
	if input.Preferences != nil {
		current.Preferences = input.Preferences
	}
	if input.Availability != nil {
		current.Availability = input.Availability
	}

	updated, err := s.users.UpdateUser(ctx, current)
	if err != nil {
		return UserView{}, mapRepoError(err)
	}

	serviceLogger(ctx, s.logger, "users", "update", "user_id", id).Info("user updated")
	return userView(updated), nil
}

// ListUsers returns all accounts.
func (s *UserService) ListUsers(ctx context.Context) ([]UserView, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	views := make([]UserView, len(users))
	for i, u := range users {
		views[i] = userView(u)
	}
	return views, nil
}

func validateUserInput(input UserInput) *ValidationError {
	vErr := &ValidationError{}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		vErr.add("email", "email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		vErr.add("email", "email is not a valid address")
	}

	if strings.TrimSpace(input.DisplayName) == "" {
		vErr.add("name", "name is required")
	}

	if input.Timezone != "" {
		if _, err := time.LoadLocation(input.Timezone); err != nil {
			vErr.add("timezone", "timezone is not a valid IANA zone")
		}
	}

	return vErr
}
