package service

import (
	"context"
	"errors"
	"testing"

	"github.com/baikov/orders-backend/internal/config"
	"github.com/baikov/orders-backend/internal/dto"
	"github.com/baikov/orders-backend/internal/model"
	"github.com/baikov/orders-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo(users ...*model.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func testUser(t *testing.T, username, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Name:         "Test User",
		Role:         "manager",
		Active:       true,
	}
}

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func TestLoginSuccess(t *testing.T) {
	user := testUser(t, "manager", "s3cret")
	svc := NewAuthService(newStubUserRepo(user), authTestConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "manager", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, 3600, resp.ExpiresIn)

	// The access token carries the user's identity claims.
	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, "manager", claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	user := testUser(t, "manager", "s3cret")
	svc := NewAuthService(newStubUserRepo(user), authTestConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "manager", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), authTestConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestRefreshRoundTrip(t *testing.T) {
	user := testUser(t, "manager", "s3cret")
	svc := NewAuthService(newStubUserRepo(user), authTestConfig())

	first, err := svc.Login(context.Background(), dto.LoginRequest{Username: "manager", Password: "s3cret"})
	require.NoError(t, err)

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), authTestConfig())

	_, err := svc.Refresh(context.Background(), "not-a-token")
	require.Error(t, err)
}

func TestRefreshInactiveUser(t *testing.T) {
	user := testUser(t, "manager", "s3cret")
	repo := newStubUserRepo(user)
	svc := NewAuthService(repo, authTestConfig())

	first, err := svc.Login(context.Background(), dto.LoginRequest{Username: "manager", Password: "s3cret"})
	require.NoError(t, err)

	user.Active = false
	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	require.Error(t, err)
}

func TestMe(t *testing.T) {
	user := testUser(t, "manager", "s3cret")
	svc := NewAuthService(newStubUserRepo(user), authTestConfig())

	resp, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "manager", resp.Username)
	assert.Equal(t, "manager", resp.Role)
}
