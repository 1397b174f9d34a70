package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"salesdesk/internal/models"
	"salesdesk/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func hashedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &models.User{ID: 1, Username: "manager", Password: string(hash)}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "test_secret", 15*time.Minute, 24*time.Hour)

	userRepo.On("GetByUsername", "manager").Return(hashedUser(t, "password123"), nil).Once()

	user, access, refresh, err := service.Login("manager", "password123")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := service.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "manager", claims["username"])
	assert.Equal(t, "access", claims["typ"])
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "test_secret", 15*time.Minute, 24*time.Hour)

	userRepo.On("GetByUsername", "manager").Return(hashedUser(t, "password123"), nil).Once()

	_, _, _, err := service.Login("manager", "wrong")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestLoginUnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "test_secret", 15*time.Minute, 24*time.Hour)

	userRepo.On("GetByUsername", "ghost").Return(nil, fmt.Errorf("user with username ghost not found")).Once()

	_, _, _, err := service.Login("ghost", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestRefreshTokenIsRejectedOnProtectedRoutes(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "test_secret", 15*time.Minute, 24*time.Hour)

	userRepo.On("GetByUsername", "manager").Return(hashedUser(t, "password123"), nil).Once()

	_, _, refresh, err := service.Login("manager", "password123")
	require.NoError(t, err)

	_, err = service.ValidateToken(refresh)
	assert.Error(t, err)
}

func TestRefreshAccessRotatesAccessToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "test_secret", 15*time.Minute, 24*time.Hour)

	user := hashedUser(t, "password123")
	userRepo.On("GetByUsername", "manager").Return(user, nil).Once()
	userRepo.On("GetByID", uint(1)).Return(user, nil).Once()

	_, access, refresh, err := service.Login("manager", "password123")
	require.NoError(t, err)

	newAccess, err := service.RefreshAccess(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)

	claims, err := service.ValidateToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, "manager", claims["username"])

	// An access token cannot be used to refresh.
	_, err = service.RefreshAccess(access)
	assert.Error(t, err)
}

func TestRegisterUserHashesPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "test_secret", 15*time.Minute, 24*time.Hour)

	userRepo.On("GetByUsername", "manager").Return(nil, fmt.Errorf("user with username manager not found")).Once()
	userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user := &models.User{Username: "manager", Password: "password123"}
	require.NoError(t, service.RegisterUser(user))

	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
}
