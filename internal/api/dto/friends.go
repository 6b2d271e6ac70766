package dto

import (
	"time"

	"github.com/hugh/birthday-reminder/internal/database/models"
)

const DateLayout = time.DateOnly

// FriendRequest is used for both create and full update.
type FriendRequest struct {
	Name      string `json:"name" validate:"required,min=3,max=200"`
	Source    string `json:"source" validate:"required,oneof=whatsapp email"`
	Birthdate string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
}

// ParsedBirthdate returns nil when no birthdate was sent. Call after validation.
func (r FriendRequest) ParsedBirthdate() *time.Time {
	if r.Birthdate == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, r.Birthdate)
	if err != nil {
		return nil
	}
	return &t
}

type FriendResponse struct {
	ID        uint                       `json:"id"`
	Name      string                     `json:"name"`
	Source    *models.NotificationSource `json:"source"`
	Birthdate *string                    `json:"birthdate"`
	UserID    uint                       `json:"userId"`
	CreatedAt time.Time                  `json:"createdAt"`
	UpdatedAt time.Time                  `json:"updatedAt"`
}

func NewFriendResponse(f *models.Friend) FriendResponse {
	resp := FriendResponse{
		ID:        f.ID,
		Name:      f.Name,
		Source:    f.Source,
		UserID:    f.UserID,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
	if f.Birthdate != nil {
		s := f.Birthdate.Format(DateLayout)
		resp.Birthdate = &s
	}
	return resp
}

func NewFriendList(friends []models.Friend) []FriendResponse {
	out := make([]FriendResponse, 0, len(friends))
	for i := range friends {
		out = append(out, NewFriendResponse(&friends[i]))
	}
	return out
}
