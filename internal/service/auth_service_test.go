package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wayandway/moneylog-backend/internal/auth"
	apperrors "github.com/wayandway/moneylog-backend/internal/errors"
	"github.com/wayandway/moneylog-backend/internal/model"
)

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) ConsumeVerificationToken(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, tokenID, ttl)
	return args.Bool(0), args.Error(1)
}

// MockMailSender is a mock implementation of mailer.Sender.
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) SendVerification(to, name, verifyURL string) error {
	args := m.Called(to, name, verifyURL)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		domain        string
		userName      string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockMailSender)
		expectedError error
	}{
		{
			name:     "successful registration sends verification mail",
			domain:   "wayand",
			userName: "Wayand",
			email:    "wayand@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mMail *MockMailSender) {
				mUser.On("FindByEmailOrDomain", mock.Anything, "wayand@example.com", "wayand").
					Return(nil, gorm.ErrRecordNotFound)
				mMail.On("SendVerification", "wayand@example.com", "Wayand", mock.AnythingOfType("string")).Return(nil)
			},
		},
		{
			name:     "email or domain already registered",
			domain:   "wayand",
			userName: "Wayand",
			email:    "wayand@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mMail *MockMailSender) {
				mUser.On("FindByEmailOrDomain", mock.Anything, "wayand@example.com", "wayand").
					Return(&model.User{ID: 1, Email: "wayand@example.com"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
		{
			name:          "uppercase domain is rejected",
			domain:        "Wayand",
			userName:      "Wayand",
			email:         "wayand@example.com",
			password:      "password123",
			setupMock:     func(mUser *MockUserRepository, mMail *MockMailSender) {},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			mockMail := new(MockMailSender)
			tt.setupMock(mockUsers, mockMail)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockUsers, jwtService, new(MockTokenStore), mockMail, "http://localhost:8080")

			err := service.Register(context.Background(), tt.domain, tt.userName, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockUsers.AssertExpectations(t)
			mockMail.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_VerificationLink(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockMail := new(MockMailSender)
	mockUsers.On("FindByEmailOrDomain", mock.Anything, "wayand@example.com", "wayand").
		Return(nil, gorm.ErrRecordNotFound)

	var sentURL string
	mockMail.On("SendVerification", "wayand@example.com", "Wayand", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sentURL = args.String(2) }).
		Return(nil)

	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(mockUsers, jwtService, new(MockTokenStore), mockMail, "http://localhost:8080/")

	err := service.Register(context.Background(), "wayand", "Wayand", "wayand@example.com", "password123")
	assert.NoError(t, err)
	assert.Contains(t, sentURL, "http://localhost:8080/api/auth/verify-email?token=")
	mockMail.AssertExpectations(t)
}

func TestAuthService_VerifyEmail(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	tokenID, token, err := jwtService.GenerateVerificationToken("wayand", "Wayand", "wayand@example.com", string(hashedPassword))
	assert.NoError(t, err)

	tests := []struct {
		name          string
		token         string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:  "valid token creates the user",
			token: token,
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore) {
				mToken.On("ConsumeVerificationToken", mock.Anything, tokenID, auth.VerificationTokenExpiry).Return(true, nil)
				mUser.On("FindByEmailOrDomain", mock.Anything, "wayand@example.com", "wayand").
					Return(nil, gorm.ErrRecordNotFound)
				mUser.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:          "malformed token",
			token:         "not-a-token",
			setupMock:     func(mUser *MockUserRepository, mToken *MockTokenStore) {},
			expectedError: ErrInvalidVerifyToken,
		},
		{
			name:  "already consumed token",
			token: token,
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore) {
				mToken.On("ConsumeVerificationToken", mock.Anything, tokenID, auth.VerificationTokenExpiry).Return(false, nil)
			},
			expectedError: ErrInvalidVerifyToken,
		},
		{
			name:  "user registered meanwhile",
			token: token,
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore) {
				mToken.On("ConsumeVerificationToken", mock.Anything, tokenID, auth.VerificationTokenExpiry).Return(true, nil)
				mUser.On("FindByEmailOrDomain", mock.Anything, "wayand@example.com", "wayand").
					Return(&model.User{ID: 1, Email: "wayand@example.com"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockUsers, mockTokenStore)

			service := NewAuthService(mockUsers, jwtService, mockTokenStore, new(MockMailSender), "http://localhost:8080")
			user, err := service.VerifyEmail(context.Background(), tt.token)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				if assert.NotNil(t, user) {
					assert.Equal(t, "wayand", user.Domain)
					assert.Equal(t, "Wayand", user.Name)
					assert.Equal(t, "wayand@example.com", user.Email)
					assert.Equal(t, string(hashedPassword), user.PasswordHash)
				}
			}

			mockUsers.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	verified := &model.User{
		ID:           1,
		Domain:       "wayand",
		Email:        "wayand@example.com",
		PasswordHash: string(hashedPassword),
	}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "wayand@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository) {
				mUser.On("FindByEmail", mock.Anything, "wayand@example.com").Return(verified, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository) {
				mUser.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "wayand@example.com",
			password: "wrong-password",
			setupMock: func(mUser *MockUserRepository) {
				mUser.On("FindByEmail", mock.Anything, "wayand@example.com").Return(verified, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockUsers)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockUsers, jwtService, new(MockTokenStore), new(MockMailSender), "http://localhost:8080")

			accessToken, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				if assert.NotNil(t, user) {
					assert.Equal(t, tt.email, user.Email)
				}

				claims, err := jwtService.ValidateToken(accessToken)
				assert.NoError(t, err)
				assert.Equal(t, uint(1), claims.UserID)
				assert.Equal(t, "wayand", claims.Domain)
			}

			mockUsers.AssertExpectations(t)
		})
	}
}
