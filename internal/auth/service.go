package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/hugh/birthday-reminder/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrUserExists               = errors.New("user already exists")
	ErrUserNotActive            = errors.New("user is not active")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrCodeVerificationNotFound = errors.New("code verification not found")
)

type Service struct {
	db     *gorm.DB
	jwt    *JWTService
	mailer VerificationMailer
}

func NewService(db *gorm.DB, jwt *JWTService, mailer VerificationMailer) *Service {
	return &Service{db: db, jwt: jwt, mailer: mailer}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates an inactive user together with its verification code and
// mails the activation link. Nothing is persisted unless the mail was handed
// to the transport.
func (s *Service) Register(ctx context.Context, input RegisterInput) error {
	var existing int64
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", input.Email).
		Count(&existing).Error; err != nil {
		return fmt.Errorf("checking existing user: %w", err)
	}
	if existing > 0 {
		return ErrUserExists
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Name:     input.Name,
			Email:    input.Email,
			Password: hash,
			Active:   false,
			Role:     models.RoleBranch,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("creating user: %w", err)
		}

		transaction, err := newTransactionCode()
		if err != nil {
			return fmt.Errorf("generating verification code: %w", err)
		}

		verification := models.CodeVerification{
			Transaction: transaction,
			UserID:      user.ID,
		}
		if err := tx.Create(&verification).Error; err != nil {
			return fmt.Errorf("creating code verification: %w", err)
		}

		if err := s.mailer.SendVerification(ctx, user.Email, user.Name, transaction); err != nil {
			return fmt.Errorf("sending verification email: %w", err)
		}

		return nil
	})
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("email = ?", input.Email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !user.Active {
		return nil, ErrUserNotActive
	}

	if !CheckPassword(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Name)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		User:  &user,
	}, nil
}

// Verify redeems a verification code: the owning user is activated, the code
// is consumed and a session token is returned.
func (s *Service) Verify(ctx context.Context, transaction string) (string, error) {
	var token string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var verification models.CodeVerification
		if err := tx.Preload("User").
			Where(&models.CodeVerification{Transaction: transaction}).
			First(&verification).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCodeVerificationNotFound
			}
			return err
		}
		if verification.User == nil {
			return ErrCodeVerificationNotFound
		}

		user := verification.User
		if err := tx.Model(user).Update("active", true).Error; err != nil {
			return fmt.Errorf("activating user: %w", err)
		}

		if err := tx.Delete(&verification).Error; err != nil {
			return fmt.Errorf("deleting code verification: %w", err)
		}

		var err error
		token, err = s.jwt.GenerateToken(user.ID, user.Name)
		return err
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

func (s *Service) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// BootstrapAdmin creates the admin account if none exists yet. It reports
// whether a user was created.
func (s *Service) BootstrapAdmin(ctx context.Context, name, email, password string) (bool, error) {
	var admins int64
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&admins).Error; err != nil {
		return false, fmt.Errorf("looking up admin: %w", err)
	}
	if admins > 0 {
		return false, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hashing password: %w", err)
	}

	admin := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Active:   true,
		Role:     models.RoleAdmin,
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return false, fmt.Errorf("creating admin: %w", err)
	}

	return true, nil
}

func newTransactionCode() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
