package dto

// UpdateProfileRequest is a partial update. Absent fields are left unchanged.
type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=3,max=200"`
	Cellphone *string `json:"cellphone" validate:"omitempty,numeric,max=32"`
	Source    *string `json:"source" validate:"omitempty,oneof=whatsapp email"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=14"`
}
