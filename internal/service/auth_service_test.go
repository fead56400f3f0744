package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"nestcloud/internal/auth"
	"nestcloud/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, username string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, username, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "user already exists",
			username: "bob",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "bob").Return(&model.User{Username: "bob"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMock(userRepo)

			svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

			user, err := svc.Register(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.username, user.Username)
				assert.NotEqual(t, tt.password, user.PasswordHash, "password must be stored hashed")
			}
			userRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcryptCost)
	storedUser := &model.User{ID: 3, Username: "carol", PasswordHash: string(hash)}

	tests := []struct {
		name          string
		username      string
		password      string
		setupMocks    func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "carol",
			password: "correct-horse",
			setupMocks: func(repo *MockUserRepository, store *MockTokenStore) {
				repo.On("FindByUsername", mock.Anything, "carol").Return(storedUser, nil)
				store.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), uint(3), "carol", auth.RefreshTokenExpiry).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "whatever",
			setupMocks: func(repo *MockUserRepository, store *MockTokenStore) {
				repo.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "carol",
			password: "incorrect",
			setupMocks: func(repo *MockUserRepository, store *MockTokenStore) {
				repo.On("FindByUsername", mock.Anything, "carol").Return(storedUser, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tokenStore := new(MockTokenStore)
			tt.setupMocks(userRepo, tokenStore)

			svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), tokenStore)

			accessToken, refreshToken, user, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.Equal(t, "carol", user.Username)
			}
			userRepo.AssertExpectations(t)
			tokenStore.AssertExpectations(t)
		})
	}
}
