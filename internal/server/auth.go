package server

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"haven/internal/config"
	"haven/internal/middleware"
	"haven/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	tokenIssuer   = "haven-api"
	tokenAudience = "haven-client"
	tokenLifetime = 7 * 24 * time.Hour
)

// Authenticator resolves the requesting user from an incoming request.
// Two implementations exist: JWT bearer tokens for real deployments and a
// trust-the-first-user mode for local development.
type Authenticator interface {
	Authenticate(c *fiber.Ctx) (*models.User, error)
}

func newAuthenticator(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (Authenticator, error) {
	switch cfg.AuthMode {
	case config.AuthModeJWT, "":
		return &jwtAuthenticator{secret: []byte(cfg.JWTSecret), db: db, redis: redisClient}, nil
	case config.AuthModeDev:
		if cfg.Env == "production" || cfg.Env == "prod" {
			return nil, fmt.Errorf("auth mode %q is not allowed in production", cfg.AuthMode)
		}
		return &devAuthenticator{db: db}, nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
}

type jwtAuthenticator struct {
	secret []byte
	db     *gorm.DB
	redis  *redis.Client
}

func (a *jwtAuthenticator) Authenticate(c *fiber.Ctx) (*models.User, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, models.NewUnauthorizedError("Missing authorization header")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, models.NewUnauthorizedError("Invalid authorization format")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid token subject")
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid token subject")
	}

	// Revoked tokens are blacklisted by jti until they expire.
	if jti, ok := claims["jti"].(string); ok && a.redis != nil {
		exists, err := a.redis.Exists(c.Context(), "blacklist:"+jti).Result()
		if err != nil {
			middleware.RedisErrors.WithLabelValues("exists").Inc()
			slog.Warn("token blacklist check failed", "error", err)
		} else if exists > 0 {
			return nil, models.NewUnauthorizedError("Token has been revoked")
		}
	}

	var user models.User
	if err := a.db.WithContext(c.Context()).First(&user, uint(userID)).Error; err != nil {
		return nil, models.NewUnauthorizedError("User not found")
	}
	return &user, nil
}

// devAuthenticator authenticates every request as the first active user in
// the database. Local development only; newAuthenticator rejects it for
// production builds.
type devAuthenticator struct {
	db *gorm.DB
}

func (a *devAuthenticator) Authenticate(c *fiber.Ctx) (*models.User, error) {
	var user models.User
	err := a.db.WithContext(c.Context()).
		Where("is_active = ?", true).
		Order("id").
		First(&user).Error
	if err != nil {
		return nil, models.NewUnauthorizedError("No active user available, run the seeder first")
	}
	return &user, nil
}

// AuthRequired authenticates the request and loads the current user into
// locals. Deactivated accounts are rejected even with a valid token.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.authenticator.Authenticate(c)
		if err != nil {
			return models.RespondWithAppError(c, err)
		}

		if !user.IsActive {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Account is deactivated"))
		}

		c.Locals("userID", user.ID)
		c.Locals("currentUser", user)
		return c.Next()
	}
}

// ModeratorRequired restricts a route to moderators and admins. It must run
// after AuthRequired.
func (s *Server) ModeratorRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := currentUser(c)
		if user == nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authentication required"))
		}
		if !user.Role.CanModerate() {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Moderator access required"))
		}
		return c.Next()
	}
}

// generateToken creates a signed JWT for the given user.
func (s *Server) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"name": user.DisplayName,
		"role": string(user.Role),
		"iss":  tokenIssuer,
		"aud":  tokenAudience,
		"exp":  now.Add(tokenLifetime).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique token identifier for revocation tracking.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.NewString()[:8])
}
