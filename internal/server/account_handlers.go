package server

import (
	"log/slog"
	"strings"
	"time"

	"haven/internal/middleware"
	"haven/internal/models"
	"haven/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type deleteAccountRequest struct {
	Reason string `json:"reason"`
}

// Register handles new account creation
// @Summary Register a new account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "Registration details"
// @Success 201 {object} authResponse
// @Router /api/accounts/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var in service.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accountService.Register(c.Context(), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "user_id", user.ID)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	slog.Info("account registered", "user_id", user.ID)
	return c.Status(fiber.StatusCreated).JSON(authResponse{Token: token, User: user})
}

// Login authenticates a user and returns a JWT
// @Summary Log in with email and password
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} authResponse
// @Router /api/accounts/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accountService.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "user_id", user.ID)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(authResponse{Token: token, User: user})
}

// Logout revokes the current token by blacklisting its jti until expiry.
// @Summary Log out and revoke the current token
// @Tags accounts
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /api/accounts/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	if s.redis == nil {
		return c.JSON(fiber.Map{"message": "Logged out"})
	}

	tokenString := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	// Signature was already verified by AuthRequired, only the claims are
	// needed here.
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return c.JSON(fiber.Map{"message": "Logged out"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.JSON(fiber.Map{"message": "Logged out"})
	}

	jti, _ := claims["jti"].(string)
	if jti != "" {
		ttl := tokenLifetime
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			ttl = time.Until(exp.Time)
		}
		if ttl > 0 {
			if err := s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl).Err(); err != nil {
				middleware.RedisErrors.WithLabelValues("set").Inc()
				slog.Warn("failed to blacklist token", "error", err)
			}
		}
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// GetMyAccount returns the authenticated user's profile
// @Summary Get current account
// @Tags accounts
// @Security BearerAuth
// @Success 200 {object} models.User
// @Router /api/accounts/me [get]
func (s *Server) GetMyAccount(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// UpdateMyAccount updates display name or anonymity settings
// @Summary Update current account
// @Tags accounts
// @Security BearerAuth
// @Param request body service.UpdateAccountInput true "Fields to update"
// @Success 200 {object} models.User
// @Router /api/accounts/me [patch]
func (s *Server) UpdateMyAccount(c *fiber.Ctx) error {
	var in service.UpdateAccountInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accountService.UpdateAccount(c.Context(), currentUser(c), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// DeleteMyAccount anonymizes and deactivates the authenticated account
// @Summary Delete current account
// @Tags accounts
// @Security BearerAuth
// @Param request body deleteAccountRequest false "Optional reason"
// @Success 200 {object} service.DeleteAccountResult
// @Router /api/accounts/me [delete]
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	var req deleteAccountRequest
	// Body is optional, a missing reason falls back to the default
	_ = c.BodyParser(&req)

	user := currentUser(c)
	result, err := s.accountService.DeleteAccount(c.Context(), user, req.Reason, &user.ID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	slog.Info("account deleted", "user_id", user.ID)
	return c.JSON(result)
}
