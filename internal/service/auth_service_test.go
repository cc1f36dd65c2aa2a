package service

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagemarket/api/internal/config"
	"imagemarket/api/internal/repository"
	"imagemarket/api/internal/security"
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	return &config.AppConfig{
		Environment: "test",
		Storage: config.StorageConfig{
			DataDir:   dir,
			UploadDir: dir + "/uploads",
		},
		Security: config.SecurityConfig{
			JWTSecret: "test-secret",
			JWTTTL:    time.Hour,
			DemoAuth:  true,
		},
	}
}

func newAuthService(t *testing.T) (*AuthService, *repository.UserRepository) {
	t.Helper()
	cfg := testConfig(t)
	users := repository.NewUserRepository(cfg.Storage.DataDir)
	return NewAuthService(users, security.DemoCredentials{}, cfg, zerolog.Nop()), users
}

func TestRegisterIssuesToken(t *testing.T) {
	svc, _ := newAuthService(t)

	result, err := svc.Register(RegisterInput{Username: "ann", Email: "ann@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.User.ID)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "ann", result.User.Username)

	claims, err := security.ParseAccessToken(result.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(RegisterInput{Email: "a@b.com", Password: "pw"})
	assert.Error(t, err)

	_, err = svc.Register(RegisterInput{Username: "a", Email: "not-an-email", Password: "pw"})
	assert.Error(t, err)
}

// Registering the same email twice is not rejected: two records with
// distinct ids coexist, and email lookup keeps returning the first.
func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users := newAuthService(t)

	first, err := svc.Register(RegisterInput{Username: "one", Email: "dup@example.com", Password: "pw"})
	require.NoError(t, err)
	second, err := svc.Register(RegisterInput{Username: "two", Email: "dup@example.com", Password: "pw"})
	require.NoError(t, err)

	assert.NotEqual(t, first.User.ID, second.User.ID)

	_, err = users.GetByID(first.User.ID)
	assert.NoError(t, err)
	_, err = users.GetByID(second.User.ID)
	assert.NoError(t, err)

	found, err := users.FindByEmail("dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, found.ID)
}

func TestLoginCreatesUnknownUser(t *testing.T) {
	svc, users := newAuthService(t)

	result, err := svc.Login(LoginInput{Email: "a@b.com", Password: "whatever"})
	require.NoError(t, err)
	assert.Equal(t, "a", result.User.Username)
	assert.NotEmpty(t, result.Token)

	persisted, err := users.FindByEmail("a@b.com")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, persisted.ID)
}

func TestLoginAcceptsAnyPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(RegisterInput{Username: "ann", Email: "ann@example.com", Password: "right"})
	require.NoError(t, err)

	result, err := svc.Login(LoginInput{Email: "ann@example.com", Password: "wrong"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestLoginBcryptRejectsWrongPassword(t *testing.T) {
	cfg := testConfig(t)
	users := repository.NewUserRepository(cfg.Storage.DataDir)
	svc := NewAuthService(users, security.BcryptCredentials{}, cfg, zerolog.Nop())

	_, err := svc.Register(RegisterInput{Username: "ann", Email: "ann@example.com", Password: "right"})
	require.NoError(t, err)

	_, err = svc.Login(LoginInput{Email: "ann@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginInput{Email: "ann@example.com", Password: "right"})
	assert.NoError(t, err)
}

func TestLoginValidation(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(LoginInput{Email: "a@b.com"})
	assert.Error(t, err)
	_, err = svc.Login(LoginInput{Password: "pw"})
	assert.Error(t, err)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newAuthService(t)

	result, err := svc.Register(RegisterInput{Username: "ann", Email: "ann@example.com", Password: "pw"})
	require.NoError(t, err)

	name := "annie"
	password := "new-pw"
	updated, err := svc.UpdateProfile(result.User.ID, UpdateProfileInput{Username: &name, NewPassword: &password})
	require.NoError(t, err)
	assert.Equal(t, "annie", updated.Username)
	// Demo credentials store the password verbatim.
	assert.Equal(t, "new-pw", updated.PasswordHash)

	fetched, err := svc.GetProfile(result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "annie", fetched.Username)
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.GetProfile("missing")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
