package dto

import (
	"time"

	"github.com/hugh/birthday-reminder/internal/database/models"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=14"`
}

// RegisterResponse confirms the verification email went out.
type RegisterResponse struct {
	Sended bool `json:"sended"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=14"`
}

type VerifyRequest struct {
	Transaction string `json:"transaction" validate:"required"`
}

type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID        uint                       `json:"id"`
	Name      string                     `json:"name"`
	Email     string                     `json:"email"`
	Cellphone *string                    `json:"cellphone"`
	Source    *models.NotificationSource `json:"source"`
	Active    bool                       `json:"active"`
	Role      models.Role                `json:"role"`
	Disabled  bool                       `json:"disabled"`
	CreatedAt time.Time                  `json:"createdAt"`
	UpdatedAt time.Time                  `json:"updatedAt"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Cellphone: u.Cellphone,
		Source:    u.Source,
		Active:    u.Active,
		Role:      u.Role,
		Disabled:  u.Disabled,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
