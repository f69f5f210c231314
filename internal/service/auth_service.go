package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wayandway/moneylog-backend/internal/auth"
	apperrors "github.com/wayandway/moneylog-backend/internal/errors"
	"github.com/wayandway/moneylog-backend/internal/mailer"
	"github.com/wayandway/moneylog-backend/internal/model"
	"github.com/wayandway/moneylog-backend/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect,
	// or when the email was never verified.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserAlreadyExists is returned when the email or domain is already
	// registered.
	ErrUserAlreadyExists = errors.New("email or domain already registered")
	// ErrInvalidVerifyToken is returned when an email verification token is
	// malformed, expired, or already used.
	ErrInvalidVerifyToken = errors.New("invalid or expired verification token")
)

// AuthService handles registration, email verification and login. A user
// record only exists after the verification link is followed; until then the
// pending payload lives inside the signed verification token.
type AuthService interface {
	Register(ctx context.Context, domain, name, email, password string) error
	VerifyEmail(ctx context.Context, token string) (*model.User, error)
	Login(ctx context.Context, email, password string) (accessToken string, user *model.User, err error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	mail       mailer.Sender
	baseURL    string
}

// NewAuthService creates a new authentication service. baseURL is the public
// address the verification link points back to.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, mail mailer.Sender, baseURL string) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		tokenStore: tokenStore,
		mail:       mail,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Register checks for duplicates, hashes the password and mails a signed
// verification link. No user record is written yet.
func (s *authService) Register(ctx context.Context, domain, name, email, password string) error {
	if domain != strings.ToLower(domain) {
		return fmt.Errorf("%w: domain must be lowercase", apperrors.ErrValidation)
	}

	existing, err := s.users.FindByEmailOrDomain(ctx, email, domain)
	if err == nil && existing != nil {
		return ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, token, err := s.jwtService.GenerateVerificationToken(domain, name, email, string(hashedPassword))
	if err != nil {
		return fmt.Errorf("generate verification token: %w", err)
	}

	verifyURL := fmt.Sprintf("%s/api/auth/verify-email?token=%s", s.baseURL, url.QueryEscape(token))
	if err := s.mail.SendVerification(email, name, verifyURL); err != nil {
		return fmt.Errorf("send verification: %w", err)
	}
	return nil
}

// VerifyEmail validates the token, consumes its ID so the link is single
// use, and creates the user from the pending payload.
func (s *authService) VerifyEmail(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwtService.ValidateVerificationToken(token)
	if err != nil {
		return nil, ErrInvalidVerifyToken
	}

	fresh, err := s.tokenStore.ConsumeVerificationToken(ctx, claims.ID, auth.VerificationTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("consume verification token: %w", err)
	}
	if !fresh {
		return nil, ErrInvalidVerifyToken
	}

	existing, err := s.users.FindByEmailOrDomain(ctx, claims.Email, claims.Domain)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	user := &model.User{
		Domain:       claims.Domain,
		Name:         claims.Name,
		Email:        claims.Email,
		PasswordHash: claims.PasswordHash, // hashed at registration time
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates a verified user and returns an access token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Domain, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, user, nil
}
