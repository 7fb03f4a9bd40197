// Package forms validates the login and registration forms before they are
// sent to the API. Messages are meant to be shown next to the offending
// field.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/models"
)

// LoginForm fields, as typed by the user.
type LoginForm struct {
	Email    string `form:"email" validate:"required,looseemail"`
	Password string `form:"password" validate:"required"`
}

type RegisterForm struct {
	Name            string `form:"name" validate:"required"`
	Email           string `form:"email" validate:"required,looseemail"`
	Phone           string `form:"phone" validate:"required"`
	Address         string `form:"address" validate:"required"`
	Password        string `form:"password" validate:"required,strongpassword"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
}

// Request builds the API payload. Call it after Validate.
func (f RegisterForm) Request() models.RegisterRequest {
	return models.RegisterRequest{
		Name:     f.Name,
		Email:    f.Email,
		Password: f.Password,
		Phone:    f.Phone,
		Address:  models.Address{Full: f.Address},
	}
}

// Errors maps a form field name to its message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s: %s", f, e[f])
	}
	return strings.Join(parts, "; ")
}

var messages = map[string]map[string]string{
	"name":    {"required": "Name is required."},
	"email":   {"required": "Email is required.", "looseemail": "Enter a valid email address."},
	"phone":   {"required": "Phone is required."},
	"address": {"required": "Address is required."},
	"password": {
		"required":       "Password is required.",
		"strongpassword": "Use 8+ characters with upper, lower, number, and symbol.",
	},
	"confirmPassword": {"required": "Please confirm your password.", "eqfield": "Passwords do not match."},
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return f.Name
	})
	if err := v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// StrongPassword reports whether pw has at least 8 characters and mixes
// ASCII upper and lower case letters, digits and anything else.
func StrongPassword(pw string) bool {
	if utf8.RuneCountInString(pw) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// Validate trims the text fields in place and checks them. It returns nil
// when the form is valid.
func (f *LoginForm) Validate() Errors {
	f.Email = strings.TrimSpace(f.Email)
	return check(f)
}

// Validate trims every field except the passwords and checks the form.
func (f *RegisterForm) Validate() Errors {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	return check(f)
}

func check(form any) Errors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{"form": err.Error()}
	}

	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if msg, ok := messages[field][fe.Tag()]; ok {
			out[field] = msg
			continue
		}
		out[field] = fmt.Sprintf("%s is invalid.", field)
	}
	return out
}
