package models

import "time"

type Friend struct {
	Base
	Name      string              `gorm:"size:200;not null" json:"name"`
	Birthdate *time.Time          `gorm:"type:date" json:"-"`
	Source    *NotificationSource `gorm:"size:16" json:"source"`
	UserID    uint                `gorm:"index;not null" json:"userId"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Friend) TableName() string {
	return "friends"
}

// BirthdayOn reports whether the friend's birthdate falls on the same calendar
// day as day, ignoring the year. Leap-day birthdays are celebrated on
// February 28 in non-leap years.
func (f *Friend) BirthdayOn(day time.Time) bool {
	if f.Birthdate == nil {
		return false
	}
	month, dom := f.Birthdate.Month(), f.Birthdate.Day()
	if month == time.February && dom == 29 && !isLeap(day.Year()) {
		dom = 28
	}
	return day.Month() == month && day.Day() == dom
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
