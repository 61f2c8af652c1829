package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordlehub/wordle-tournaments/models"
	"github.com/wordlehub/wordle-tournaments/repositories"
)

type memoryUserRepo struct {
	fakeUserRepo
	byUsername map[string]*models.User
	nextID     int
}

func (m *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.byUsername == nil {
		m.byUsername = make(map[string]*models.User)
	}
	if _, taken := m.byUsername[user.Username]; taken {
		return repositories.ErrUserUsernameConflict
	}
	m.nextID++
	user.ID = m.nextID
	m.byUsername[user.Username] = user
	return nil
}

func (m *memoryUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := m.byUsername[username]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func TestRegisterAndLogin(t *testing.T) {
	repo := &memoryUserRepo{}
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "felipe", Name: "Felipe", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "correct-horse", user.PasswordHash, "password must be stored hashed")

	logged, err := svc.Login(context.Background(), LoginInput{Username: "felipe", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Empty(t, logged.PasswordHash, "hash never leaves the service")
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewAuthService(&memoryUserRepo{})
	_, err := svc.Register(context.Background(), RegisterInput{Username: "x", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	repo := &memoryUserRepo{}
	svc := NewAuthService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "felipe", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Username: "felipe", Password: "another-pass"})
	assert.ErrorIs(t, err, ErrAuthUsernameTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &memoryUserRepo{}
	svc := NewAuthService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "felipe", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{Username: "felipe", Password: "wrong"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(&memoryUserRepo{})
	_, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}
