package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `json:"name" validate:"required,min=3,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=14"`
}

type contact struct {
	Name      *string `json:"name" validate:"omitempty,min=3,max=200"`
	Source    *string `json:"source" validate:"omitempty,oneof=whatsapp email"`
	Cellphone *string `json:"cellphone" validate:"omitempty,numeric"`
	Birthdate *string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
}

func ptr(s string) *string { return &s }

func TestStruct_Valid(t *testing.T) {
	assert.Nil(t, Struct(signup{Name: "Ada", Email: "ada@example.com", Password: "secret1"}))
	assert.Nil(t, Struct(contact{}))
	assert.Nil(t, Struct(contact{Source: ptr("email"), Birthdate: ptr("1990-07-04")}))
}

func TestStruct_FirstViolation(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		field   string
		message string
	}{
		{
			name:    "empty body reports first field",
			input:   signup{},
			field:   "name",
			message: `"name" is required`,
		},
		{
			name:    "short name",
			input:   signup{Name: "Al", Email: "al@example.com", Password: "secret1"},
			field:   "name",
			message: `"name" length must be at least 3 characters long`,
		},
		{
			name:    "bad email",
			input:   signup{Name: "Ada", Email: "not-an-email", Password: "secret1"},
			field:   "email",
			message: `"email" must be a valid email`,
		},
		{
			name:    "long password",
			input:   signup{Name: "Ada", Email: "ada@example.com", Password: "123456789012345"},
			field:   "password",
			message: `"password" length must be less than or equal to 14 characters long`,
		},
		{
			name:    "source outside enum",
			input:   contact{Source: ptr("sms")},
			field:   "source",
			message: `"source" must be one of [whatsapp, email]`,
		},
		{
			name:    "non numeric cellphone",
			input:   contact{Cellphone: ptr("12ab")},
			field:   "cellphone",
			message: `"cellphone" must be a number`,
		},
		{
			name:    "bad date",
			input:   contact{Birthdate: ptr("04/07/1990")},
			field:   "birthdate",
			message: `"birthdate" must be a valid date (YYYY-MM-DD)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			require.NotNil(t, err)
			assert.Equal(t, tt.field, err.Field)
			assert.Equal(t, tt.message, err.Message)
		})
	}
}
