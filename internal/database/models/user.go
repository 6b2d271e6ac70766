package models

// NotificationSource is the channel a user or friend prefers for birthday notices.
type NotificationSource string

const (
	SourceEmail    NotificationSource = "email"
	SourceWhatsApp NotificationSource = "whatsapp"
)

func (s NotificationSource) Valid() bool {
	return s == SourceEmail || s == SourceWhatsApp
}

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleBranch Role = "branch"
)

type User struct {
	Base
	Name      string              `gorm:"size:200;not null" json:"name"`
	Email     string              `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password  string              `gorm:"not null" json:"-"`
	Cellphone *string             `gorm:"size:32" json:"cellphone"`
	Source    *NotificationSource `gorm:"size:16" json:"source"`
	Active    bool                `gorm:"not null;default:false" json:"active"`
	Role      Role                `gorm:"size:16;not null;default:'branch'" json:"role"`
	Disabled  bool                `gorm:"not null;default:false" json:"disabled"`

	// Relationships
	Friends          []Friend          `gorm:"foreignKey:UserID" json:"-"`
	CodeVerification *CodeVerification `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// NotifiesByEmail reports whether the user opted into email notifications.
func (u *User) NotifiesByEmail() bool {
	return u.Source != nil && *u.Source == SourceEmail
}
