package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"salonbook-backend/apperrors"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type RegisterInput struct {
	Email        string
	Phone        string
	Name         string
	Password     string
	SalonName    string
	SalonAddress string
	WorkingHours models.JSONB
}

// AuthResult is a signed token and the user it was issued for.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService struct {
	db       *gorm.DB
	secret   string
	tokenTTL time.Duration
	now      func() time.Time
}

func NewAuthService(db *gorm.DB, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{db: db, secret: secret, tokenTTL: tokenTTL, now: time.Now}
}

// Register creates a new account with its owner user and first salon.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if in.Phone != "" && !utils.ValidatePhone(in.Phone) {
		return nil, apperrors.Validation("phone", "invalid phone number format")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	hours := in.WorkingHours
	if hours == nil {
		hours = models.DefaultOpeningHours()
	}

	user := &models.User{
		Email:    email,
		Password: hash,
		Name:     strings.TrimSpace(in.Name),
		Phone:    utils.CleanPhone(in.Phone),
		Role:     models.RoleOwner,
		IsActive: true,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account := &models.Account{Name: strings.TrimSpace(in.SalonName), IsActive: true}
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		user.AccountID = account.ID
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		salon := &models.Salon{
			AccountID:    account.ID,
			Name:         account.Name,
			Address:      in.SalonAddress,
			Phone:        user.Phone,
			OpeningHours: hours,
			IsActive:     true,
		}
		return tx.Create(salon).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperrors.Conflict("user", "email")
	}
	if err != nil {
		return nil, err
	}

	utils.LoggerFromContext(ctx).Info("Account registered",
		slog.String("account_id", user.AccountID.String()),
		slog.String("user_id", user.ID.String()),
	)
	return s.issue(user)
}

// Login accepts an email or phone identifier.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? OR phone = ?", strings.ToLower(identifier), utils.CleanPhone(identifier)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive || !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login", &now).Error; err != nil {
		utils.LoggerFromContext(ctx).Warn("Failed to record last login", slog.String("error", err.Error()))
	}
	return s.issue(&user)
}

func (s *AuthService) Me(ctx context.Context, actor Actor) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ? AND account_id = ?", actor.UserID, actor.AccountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(utils.Identity{AccountID: user.AccountID, UserID: user.ID}, s.secret, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// ActorFor builds the actor of an authenticated request.
func ActorFor(id utils.Identity) Actor {
	return Actor{AccountID: id.AccountID, UserID: id.UserID}
}

