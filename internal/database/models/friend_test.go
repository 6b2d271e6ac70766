package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFriend_BirthdayOn(t *testing.T) {
	born := date(1990, time.July, 4)
	f := Friend{Birthdate: &born}

	assert.True(t, f.BirthdayOn(date(2026, time.July, 4)))
	assert.True(t, f.BirthdayOn(time.Date(2026, time.July, 4, 23, 59, 0, 0, time.UTC)))
	assert.False(t, f.BirthdayOn(date(2026, time.July, 5)))
	assert.False(t, f.BirthdayOn(date(2026, time.June, 4)))
}

func TestFriend_BirthdayOn_NoBirthdate(t *testing.T) {
	f := Friend{}
	assert.False(t, f.BirthdayOn(date(2026, time.January, 1)))
}

func TestFriend_BirthdayOn_LeapDay(t *testing.T) {
	born := date(2000, time.February, 29)
	f := Friend{Birthdate: &born}

	assert.True(t, f.BirthdayOn(date(2027, time.February, 28)))
	assert.False(t, f.BirthdayOn(date(2027, time.March, 1)))
	assert.True(t, f.BirthdayOn(date(2028, time.February, 29)))
	assert.False(t, f.BirthdayOn(date(2028, time.February, 28)))
}

func TestUser_NotifiesByEmail(t *testing.T) {
	email := SourceEmail
	whatsapp := SourceWhatsApp

	assert.True(t, (&User{Source: &email}).NotifiesByEmail())
	assert.False(t, (&User{Source: &whatsapp}).NotifiesByEmail())
	assert.False(t, (&User{}).NotifiesByEmail())
}
