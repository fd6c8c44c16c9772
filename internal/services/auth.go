package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"anvaya/anvaya-api/internal/models"
	"anvaya/anvaya-api/internal/repositories"
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOTP         = errors.New("invalid or expired verification code")
	ErrEmailNotVerified   = errors.New("email address is not verified")
)

type AuthService interface {
	// Signup creates an unverified account and emails a verification code.
	Signup(name, email, password string, role models.UserRole) (*models.User, error)
	// VerifyOTP checks the pending code for the email and marks the account
	// verified on success.
	VerifyOTP(email, code string) error
	// Login validates the password step. The caller continues with face
	// verification when a reference face is registered.
	Login(email, password string) (*models.User, error)
	// ResendOTP issues a fresh verification code.
	ResendOTP(email string) error
}

type authService struct {
	users  repositories.UserRepository
	mailer MailerService
	otpTTL time.Duration
	logger *zap.Logger
}

func NewAuthService(
	users repositories.UserRepository,
	mailer MailerService,
	otpTTL time.Duration,
	logger *zap.Logger,
) AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &authService{
		users:  users,
		mailer: mailer,
		otpTTL: otpTTL,
		logger: logger,
	}
}

// Signup implements AuthService.
func (s *authService) Signup(name, email, password string, role models.UserRole) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	if err := s.issueOTP(email); err != nil {
		// Account exists; the user can request a fresh code.
		s.logger.Warn("failed to send verification code", zap.String("email", email), zap.Error(err))
	}

	return user, nil
}

// VerifyOTP implements AuthService.
func (s *authService) VerifyOTP(email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	otp, err := s.users.FindOTP(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidOTP
		}
		return err
	}

	if time.Now().After(otp.ExpiresAt) || otp.Code != strings.TrimSpace(code) {
		return ErrInvalidOTP
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		return err
	}

	if err := s.users.MarkEmailVerified(user.ID); err != nil {
		return err
	}

	if err := s.users.DeleteOTP(email); err != nil {
		s.logger.Warn("failed to delete used otp", zap.Error(err))
	}

	return nil
}

// Login implements AuthService.
func (s *authService) Login(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	return user, nil
}

// ResendOTP implements AuthService.
func (s *authService) ResendOTP(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.FindByEmail(email); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	return s.issueOTP(email)
}

func (s *authService) issueOTP(email string) error {
	code, err := GenerateOTP()
	if err != nil {
		return err
	}

	if err := s.users.SaveOTP(&models.EmailOTP{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.otpTTL),
	}); err != nil {
		return err
	}

	return s.mailer.Send(email, "Your Anvaya Verification Code", BuildOTPBody(code))
}

// GenerateOTP returns a random 6-digit code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
