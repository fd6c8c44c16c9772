package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"anvaya/anvaya-api/internal/models"
	"anvaya/anvaya-api/internal/repositories"
	"anvaya/anvaya-api/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	enrollments repositories.FaceEnrollmentRepository
}

func NewAuthHandler(
	authService services.AuthService,
	enrollments repositories.FaceEnrollmentRepository,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		enrollments: enrollments,
	}
}

// HandleSignup handles POST /auth/signup
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req models.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name, email and password are required",
		})
	}

	role := models.UserRole(req.Role)
	if role != models.RoleEmployee && role != models.RoleEmployer {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "role must be employee or employer",
		})
	}

	user, err := h.authService.Signup(req.Name, req.Email, req.Password, role)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create account",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created. Check your email for the verification code.",
		"user_id": user.ID.String(),
	})
}

// HandleVerifyOTP handles POST /auth/verify-otp
func (h *AuthHandler) HandleVerifyOTP(c *fiber.Ctx) error {
	var req models.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.authService.VerifyOTP(req.Email, req.Code); err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to verify code",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Email verified. You can now register your face.",
	})
}

// HandleResendOTP handles POST /auth/resend-otp
func (h *AuthHandler) HandleResendOTP(c *fiber.Ctx) error {
	var req models.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.authService.ResendOTP(req.Email); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No account found with this email",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send verification code",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Verification code sent",
	})
}

// HandleLogin handles POST /auth/login. This is only the password step; the
// client continues with POST /face/verify when a reference face exists.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid email or password",
			})
		case errors.Is(err, services.ErrEmailNotVerified):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Email address is not verified",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Login failed",
			})
		}
	}

	faceStepRequired := false
	if _, err := h.enrollments.FindByOwner(user.Email); err == nil {
		faceStepRequired = true
	}

	return c.JSON(models.LoginResponse{
		UserID:           user.ID.String(),
		Name:             user.Name,
		Email:            user.Email,
		Role:             string(user.Role),
		FaceStepRequired: faceStepRequired,
	})
}
