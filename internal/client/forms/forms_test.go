package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/models"
)

func TestLoginForm_Validate(t *testing.T) {
	tests := []struct {
		name string
		form LoginForm
		want Errors
	}{
		{"ok", LoginForm{Email: "riya@example.com", Password: "x"}, nil},
		{"trims email", LoginForm{Email: "  riya@example.com \t", Password: "x"}, nil},
		{"empty", LoginForm{}, Errors{"email": "Email is required.", "password": "Password is required."}},
		{"blank email", LoginForm{Email: "   ", Password: "x"}, Errors{"email": "Email is required."}},
		{"no at sign", LoginForm{Email: "riya.example.com", Password: "x"}, Errors{"email": "Enter a valid email address."}},
		{"no dot in domain", LoginForm{Email: "riya@example", Password: "x"}, Errors{"email": "Enter a valid email address."}},
		{"inner space", LoginForm{Email: "ri ya@example.com", Password: "x"}, Errors{"email": "Enter a valid email address."}},
		{"whitespace password counts as present", LoginForm{Email: "r@e.co", Password: " "}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.form
			got := f.Validate()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoginForm_ValidateTrimsInPlace(t *testing.T) {
	f := LoginForm{Email: " riya@example.com ", Password: " secret "}
	require.Nil(t, f.Validate())

	assert.Equal(t, "riya@example.com", f.Email)
	assert.Equal(t, " secret ", f.Password, "passwords are never trimmed")
}

func validRegister() RegisterForm {
	return RegisterForm{
		Name:            "Riya Sen",
		Email:           "riya@example.com",
		Phone:           "+91 98765 43210",
		Address:         "12 Park Street, Kolkata",
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	}
}

func TestRegisterForm_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterForm)
		want   Errors
	}{
		{"ok", func(*RegisterForm) {}, nil},
		{"missing name", func(f *RegisterForm) { f.Name = "  " }, Errors{"name": "Name is required."}},
		{"missing phone", func(f *RegisterForm) { f.Phone = "" }, Errors{"phone": "Phone is required."}},
		{"missing address", func(f *RegisterForm) { f.Address = "\n" }, Errors{"address": "Address is required."}},
		{"bad email", func(f *RegisterForm) { f.Email = "nope" }, Errors{"email": "Enter a valid email address."}},
		{
			"weak password",
			func(f *RegisterForm) { f.Password, f.ConfirmPassword = "password", "password" },
			Errors{"password": "Use 8+ characters with upper, lower, number, and symbol."},
		},
		{
			"missing password",
			func(f *RegisterForm) { f.Password = "" },
			Errors{"password": "Password is required.", "confirmPassword": "Passwords do not match."},
		},
		{"missing confirmation", func(f *RegisterForm) { f.ConfirmPassword = "" }, Errors{"confirmPassword": "Please confirm your password."}},
		{"mismatch", func(f *RegisterForm) { f.ConfirmPassword = "Str0ng!pasS" }, Errors{"confirmPassword": "Passwords do not match."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validRegister()
			tt.mutate(&f)
			assert.Equal(t, tt.want, f.Validate())
		})
	}
}

func TestRegisterForm_Request(t *testing.T) {
	f := validRegister()
	f.Name = "  Riya Sen  "
	f.Address = " 12 Park Street, Kolkata "
	require.Nil(t, f.Validate())

	assert.Equal(t, models.RegisterRequest{
		Name:     "Riya Sen",
		Email:    "riya@example.com",
		Password: "Str0ng!pass",
		Phone:    "+91 98765 43210",
		Address:  models.Address{Full: "12 Park Street, Kolkata"},
	}, f.Request())
}

func TestStrongPassword(t *testing.T) {
	tests := map[string]bool{
		"Str0ng!pass": true,
		"Aa1 aaaa":    true,
		"Aa1!":        false,
		"alllower1!":  false,
		"ALLUPPER1!":  false,
		"NoDigits!!":  false,
		"NoSymbol12":  false,
		"Ünïcödé1A":   true,
		"ünïcödé1a":   false,
		"":            false,
	}
	for pw, want := range tests {
		assert.Equal(t, want, StrongPassword(pw), pw)
	}
}

func TestErrors_Error(t *testing.T) {
	e := Errors{"password": "Password is required.", "email": "Email is required."}
	assert.Equal(t, "email: Email is required.; password: Password is required.", e.Error())
}
