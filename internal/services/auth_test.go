package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"anvaya/anvaya-api/internal/models"
	"anvaya/anvaya-api/internal/repositories"
)

type fakeUserRepo struct {
	users map[string]*models.User
	otps  map[string]*models.EmailOTP
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[string]*models.User),
		otps:  make(map[string]*models.EmailOTP),
	}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) MarkEmailVerified(id uuid.UUID) error {
	user, err := r.FindByID(id)
	if err != nil {
		return err
	}
	user.EmailVerified = true
	return nil
}

func (r *fakeUserRepo) SaveOTP(otp *models.EmailOTP) error {
	r.otps[otp.Email] = otp
	return nil
}

func (r *fakeUserRepo) FindOTP(email string) (*models.EmailOTP, error) {
	otp, ok := r.otps[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return otp, nil
}

func (r *fakeUserRepo) DeleteOTP(email string) error {
	delete(r.otps, email)
	return nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func newTestAuth(repo *fakeUserRepo, mailer *fakeMailer) AuthService {
	return NewAuthService(repo, mailer, 10*time.Minute, nil)
}

func TestSignup(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := newTestAuth(repo, mailer)

	user, err := svc.Signup("Dewi", "Dewi@Example.com", "s3cret-pass", models.RoleEmployee)
	require.NoError(t, err)

	assert.Equal(t, "dewi@example.com", user.Email, "email is lowercased")
	assert.False(t, user.EmailVerified)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	otp, err := repo.FindOTP("dewi@example.com")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), otp.Code)
	assert.Equal(t, []string{"dewi@example.com"}, mailer.sent)
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuth(repo, &fakeMailer{})

	_, err := svc.Signup("Dewi", "dewi@example.com", "pass-one", models.RoleEmployee)
	require.NoError(t, err)

	_, err = svc.Signup("Other", "dewi@example.com", "pass-two", models.RoleEmployer)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupSurvivesMailerFailure(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuth(repo, &fakeMailer{err: errors.New("smtp unreachable")})

	user, err := svc.Signup("Dewi", "dewi@example.com", "s3cret-pass", models.RoleEmployee)
	require.NoError(t, err, "account creation must not fail when the code cannot be sent")
	assert.NotNil(t, user)
}

func TestVerifyOTP(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuth(repo, &fakeMailer{})

	_, err := svc.Signup("Dewi", "dewi@example.com", "s3cret-pass", models.RoleEmployee)
	require.NoError(t, err)

	otp, err := repo.FindOTP("dewi@example.com")
	require.NoError(t, err)

	t.Run("wrong code rejected", func(t *testing.T) {
		wrong := "000000"
		if otp.Code == wrong {
			wrong = "000001"
		}
		assert.ErrorIs(t, svc.VerifyOTP("dewi@example.com", wrong), ErrInvalidOTP)
	})

	t.Run("correct code verifies and consumes", func(t *testing.T) {
		require.NoError(t, svc.VerifyOTP("dewi@example.com", otp.Code))

		user, err := repo.FindByEmail("dewi@example.com")
		require.NoError(t, err)
		assert.True(t, user.EmailVerified)

		_, err = repo.FindOTP("dewi@example.com")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("consumed code cannot be replayed", func(t *testing.T) {
		assert.ErrorIs(t, svc.VerifyOTP("dewi@example.com", otp.Code), ErrInvalidOTP)
	})
}

func TestVerifyOTPExpired(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuth(repo, &fakeMailer{})

	_, err := svc.Signup("Dewi", "dewi@example.com", "s3cret-pass", models.RoleEmployee)
	require.NoError(t, err)

	otp, err := repo.FindOTP("dewi@example.com")
	require.NoError(t, err)
	otp.ExpiresAt = time.Now().Add(-time.Minute)

	assert.ErrorIs(t, svc.VerifyOTP("dewi@example.com", otp.Code), ErrInvalidOTP)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuth(repo, &fakeMailer{})

	_, err := svc.Signup("Dewi", "dewi@example.com", "s3cret-pass", models.RoleEmployee)
	require.NoError(t, err)

	t.Run("unverified email blocked", func(t *testing.T) {
		_, err := svc.Login("dewi@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrEmailNotVerified)
	})

	otp, err := repo.FindOTP("dewi@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.VerifyOTP("dewi@example.com", otp.Code))

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login("dewi@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "dewi@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login("dewi@example.com", "wrong-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login("nobody@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestResendOTP(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := newTestAuth(repo, mailer)

	_, err := svc.Signup("Dewi", "dewi@example.com", "s3cret-pass", models.RoleEmployee)
	require.NoError(t, err)

	require.NoError(t, svc.ResendOTP("dewi@example.com"))
	assert.Len(t, mailer.sent, 2)

	assert.ErrorIs(t, svc.ResendOTP("nobody@example.com"), ErrInvalidCredentials)
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)
	}
}
