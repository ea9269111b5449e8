package service

import (
	"context"

	"haven/internal/cache"
	"haven/internal/middleware"
	"haven/internal/models"
	"haven/internal/repository"
	"haven/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput is the payload for account registration.
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// UpdateAccountInput carries optional account setting changes.
type UpdateAccountInput struct {
	DisplayName *string `json:"display_name"`
	IsAnonymous *bool   `json:"is_anonymous"`
}

// DeleteAccountResult reports the outcome of an account deletion.
type DeleteAccountResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AccountService handles registration, authentication and account lifecycle.
type AccountService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
}

// NewAccountService returns a new AccountService.
func NewAccountService(db *gorm.DB, userRepo repository.UserRepository) *AccountService {
	return &AccountService{db: db, userRepo: userRepo}
}

// Register creates a new user account with a hashed password.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateDisplayName(in.DisplayName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	hashedStr := string(hashed)
	user := &models.User{
		Email:        &in.Email,
		PasswordHash: &hashedStr,
		DisplayName:  in.DisplayName,
		IsAnonymous:  false,
		Role:         models.RoleUser,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate verifies credentials and returns the user.
// Deleted accounts cannot log in; the error deliberately does not reveal
// whether the email exists.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Incorrect email or password")
	}
	if !user.IsActive {
		return nil, models.NewForbiddenError("Account is deleted")
	}
	if user.PasswordHash == nil {
		return nil, models.NewUnauthorizedError("Incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Incorrect email or password")
	}
	return user, nil
}

// GetByID returns a user by ID.
func (s *AccountService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateAccount applies optional setting changes to the user.
func (s *AccountService) UpdateAccount(ctx context.Context, user *models.User, in UpdateAccountInput) (*models.User, error) {
	if in.DisplayName != nil {
		if err := validation.ValidateDisplayName(*in.DisplayName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.DisplayName = *in.DisplayName
	}
	if in.IsAnonymous != nil {
		user.IsAnonymous = *in.IsAnonymous
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount irreversibly anonymizes the account: the row stays so the
// user's posts and reports remain attributed to a scrubbed identity, but
// email and credentials are nulled and the account is deactivated.
//
// actorID is recorded on the audit entry and is always the initiating
// principal: the user themselves on the self-service path, the moderator on
// the moderated path. Calling this on an already-deleted account re-nulls
// the fields without error and still writes an audit entry.
func (s *AccountService) DeleteAccount(ctx context.Context, user *models.User, reason string, actorID *uint) (*DeleteAccountResult, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return anonymizeAccount(tx, user, reason, actorID)
	})
	if err != nil {
		return nil, err
	}

	user.DisplayName = models.AnonymizedDisplayName
	user.Email = nil
	user.PasswordHash = nil
	user.IsAnonymous = true
	user.IsActive = false
	cache.InvalidateUser(ctx, user.ID)

	middleware.Logger.InfoContext(ctx, "account deleted", "user_id", user.ID)
	return &DeleteAccountResult{Success: true, Message: "Account deleted and content anonymized"}, nil
}

// anonymizeAccount scrubs the identity fields on the user row and writes the
// audit entry, all inside the caller's transaction. It does not touch the
// user's posts or reports: content persists, identity is scrubbed.
func anonymizeAccount(tx *gorm.DB, user *models.User, reason string, actorID *uint) error {
	updates := map[string]interface{}{
		"display_name":  models.AnonymizedDisplayName,
		"email":         nil,
		"password_hash": nil,
		"is_anonymous":  true,
		"is_active":     false,
	}
	if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return models.NewInternalError(err)
	}
	return appendAudit(tx, actorID, models.AuditDeleteAccount, "User", &user.ID, reason)
}
