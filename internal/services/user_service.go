package services

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"finledger/internal/config"
	apperrors "finledger/internal/errors"
	"finledger/internal/logger"
	"finledger/internal/models"
	"finledger/internal/validator"
)

// defaultAdminPassword seeds the bootstrap admin account. Change it on first
// login; EnsureDefaultAdmin logs a warning whenever it creates the account.
const defaultAdminPassword = "admin123"

// SessionClaims are the claims embedded in a session token.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// userService handles registration and credential checks. The ledger engine
// consumes only the opaque user ID this service hands out.
type userService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, cfg *config.Config) UserServicer {
	return &userService{db: db, cfg: cfg}
}

// Register creates a new user with a hashed password.
func (s *userService) Register(input RegisterInput) (*models.User, error) {
	if err := validator.Get().Struct(input); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidField, err)
	}
	if input.BudgetGoal.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "budget goal must be non-negative")
	}

	username := strings.ToLower(strings.TrimSpace(input.Username))

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleRegular
	}

	user := &models.User{
		Username:     username,
		Email:        strings.ToLower(input.Email),
		PasswordHash: string(hash),
		BudgetGoal:   input.BudgetGoal,
		Role:         role,
		IsActive:     true,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return user, nil
}

// Authenticate verifies credentials and issues a session token.
func (s *userService) Authenticate(username, password string) (*models.User, string, error) {
	user, err := s.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return user, token, nil
}

// GetByUsername retrieves an active user by username.
func (s *userService) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(username)), true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return &user, nil
}

// EnsureDefaultAdmin creates the bootstrap admin account if no admin exists.
func (s *userService) EnsureDefaultAdmin() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}
	admin := &models.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		BudgetGoal:   decimal.Zero,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}
	logger.Get().Warn("Created default admin account; change its password")
	return nil
}

// issueToken signs a session token for the user.
func (s *userService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "finledger",
			Subject:   user.Username,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SessionSecret))
}
