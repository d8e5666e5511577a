package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"stockroom/internal/auth"
	"stockroom/internal/config"
	"stockroom/internal/database"
	"stockroom/internal/mail"
	"stockroom/internal/platform/guard"
	puser "stockroom/internal/platform/user"
	"stockroom/pkg/passwd"
)

// Identical for unknown users, wrong passwords and locked pairs; the
// only allowed difference is the retry_after hint.
const genericDenial = "Invalid credentials"

// Reset keys outlive the mail round-trip but not much more.
const resetKeyTTL = time.Hour

func clientIP(c *fiber.Ctx) string {
	ip := c.IP()
	if len(c.IPs()) > 1 {
		ip = c.IPs()[0]
	}
	return ip
}

func Login(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)
	loginGuard := c.Locals("guard").(*guard.Guard)

	type LoginInput struct {
		Username string `json:"username" validate:"required,max=100"`
		Password string `json:"password" validate:"required,max=100"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	outcome := loginGuard.Authenticate(clientIP(c), input.Username, input.Password)

	switch outcome.Status {
	case guard.StatusAuthenticated:
		user := database.User{ID: outcome.UserID, Username: outcome.Username, Role: outcome.Role}
		token, err := auth.GenerateToken(cfg.JWTSecret, &user, c.Context().Time())
		if err != nil {
			log.Errorf("token generation failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
		}
		return c.JSON(fiber.Map{
			"success": true,
			"token":   token,
			"user": fiber.Map{
				"id":       outcome.UserID,
				"username": outcome.Username,
				"role":     outcome.Role,
			},
		})
	case guard.StatusInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	case guard.StatusRateLimited:
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"success":     false,
			"message":     genericDenial,
			"retry_after": int(outcome.RetryAfter.Seconds()),
		})
	case guard.StatusInvalidCredentials:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": genericDenial})
	default:
		log.Errorf("authentication store failure: %v", outcome.Err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
	}
}

// Logout only acknowledges; the session lives in the bearer token and
// the client drops it.
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

func ChangePassword(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	user := c.Locals("user").(database.User)
	loginGuard := c.Locals("guard").(*guard.Guard)

	userService := puser.NewService(db)

	type ChangePasswordInput struct {
		CurrentPassword string `json:"current_password" validate:"required,max=100"`
		NewPassword     string `json:"new_password" validate:"required,min=8,max=100"`
	}

	var input ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	// Reverification goes through the guard so repeated wrong current
	// passwords count against the same lockout window as login.
	outcome := loginGuard.Authenticate(clientIP(c), user.Username, input.CurrentPassword)
	switch outcome.Status {
	case guard.StatusAuthenticated:
	case guard.StatusRateLimited:
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"message":     genericDenial,
			"retry_after": int(outcome.RetryAfter.Seconds()),
		})
	case guard.StatusStoreUnavailable:
		log.Errorf("authentication store failure: %v", outcome.Err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	default:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": genericDenial})
	}

	if err := userService.UpdatePasswordHash(user.ID, passwd.Hash(input.NewPassword)); err != nil {
		log.Errorf("password update failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
	if err := userService.PurgeResetKeys(user.ID); err != nil {
		log.Errorf("reset key purge failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func ForgotPassword(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)
	db := c.Locals("db").(*gorm.DB)

	userService := puser.NewService(db)

	type ForgotPasswordInput struct {
		Username string `json:"username" validate:"required,max=100"`
	}

	var input ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	user, err := userService.GetByUsername(input.Username)
	if err != nil {
		if errors.Is(err, puser.ErrUserNotFound) {
			// Same response as the known-user path; no enumeration.
			return c.SendStatus(fiber.StatusNoContent)
		}
		log.Errorf("user lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	resetKey := database.ResetKey{
		Key:    uuid.New(),
		UserID: user.ID,
	}
	if err := db.Create(&resetKey).Error; err != nil {
		log.Errorf("reset key creation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	mailer := mail.NewMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunAPIBase)
	message := mail.Email{
		Subject: "Password reset",
		Body:    fmt.Sprintf("Your password reset key: %s", resetKey.Key),
		From:    cfg.MailFrom,
		To:      []string{user.Username},
	}
	if err := mailer.SendMail(&message); err != nil {
		log.Errorf("reset mail failed: %v", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func ResetPassword(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	userService := puser.NewService(db)

	type ResetPasswordInput struct {
		ResetKey    string `json:"reset_key" validate:"required,uuid"`
		NewPassword string `json:"new_password" validate:"required,min=8,max=100"`
	}

	var input ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	// An expired key answers exactly like an unknown one.
	var resetKey database.ResetKey
	result := db.First(&resetKey, "key = ? AND created_at >= ?", input.ResetKey, time.Now().Add(-resetKeyTTL))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": genericDenial})
		}
		log.Errorf("reset key lookup failed: %v", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	if err := userService.UpdatePasswordHash(resetKey.UserID, passwd.Hash(input.NewPassword)); err != nil {
		if errors.Is(err, puser.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": genericDenial})
		}
		log.Errorf("password update failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
	if err := userService.PurgeResetKeys(resetKey.UserID); err != nil {
		log.Errorf("reset key purge failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
