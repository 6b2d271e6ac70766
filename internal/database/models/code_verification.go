package models

// CodeVerification is a single-use activation token emailed on registration.
type CodeVerification struct {
	Base
	Transaction string `gorm:"size:128;uniqueIndex;not null" json:"transaction"`
	UserID      uint   `gorm:"uniqueIndex;not null" json:"userId"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (CodeVerification) TableName() string {
	return "code_verifications"
}
