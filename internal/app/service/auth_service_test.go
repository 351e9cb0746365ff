package service

import (
	"testing"
	"time"

	"github.com/pedefood/pedefood-backend/internal/app/model"
	"github.com/pedefood/pedefood-backend/internal/app/repository"
	"github.com/pedefood/pedefood-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key"

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, testJWTSecret, 15*time.Minute, 7*24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	svc := setupAuthServiceTest(t)

	user, tokens, err := svc.Register("cliente@example.com", "senha123", "Cliente Teste", "11999998888")
	assert.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	// Phone normalized to E.164
	assert.Equal(t, "+5511999998888", user.Phone)
	assert.False(t, user.PhoneVerified)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, _, err := svc.Register("cliente@example.com", "senha123", "Cliente Teste", "")
	require.NoError(t, err)

	_, _, err = svc.Register("cliente@example.com", "outrasenha", "Outro Nome", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	svc := setupAuthServiceTest(t)

	registered, _, err := svc.Register("cliente@example.com", "senha123", "Cliente Teste", "")
	require.NoError(t, err)

	user, tokens, err := svc.Login("cliente@example.com", "senha123")
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, _, err := svc.Register("cliente@example.com", "senha123", "Cliente Teste", "")
	require.NoError(t, err)

	_, _, err = svc.Login("cliente@example.com", "senhaerrada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, _, err := svc.Login("naoexiste@example.com", "senha123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc := setupAuthServiceTest(t)

	user, _, err := svc.Register("cliente@example.com", "senha123", "Cliente Teste", "11999998888")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, "Novo Nome", "")
	assert.NoError(t, err)
	assert.Equal(t, "Novo Nome", updated.Name)
	assert.Equal(t, "+5511999998888", updated.Phone)
}

func TestAuthService_UpdateProfile_NewPhoneResetsVerification(t *testing.T) {
	svc := setupAuthServiceTest(t)

	user, _, err := svc.Register("cliente@example.com", "senha123", "Cliente Teste", "11999998888")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, "", "11888887777")
	assert.NoError(t, err)
	assert.Equal(t, "+5511888887777", updated.Phone)
	assert.False(t, updated.PhoneVerified)
}

func TestAuthService_GetUserByID_NotFound(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, err := svc.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
