package cli

import (
	"context"
	"errors"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/forms"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/session"
)

// fieldOrder is the order form errors are printed in.
var fieldOrder = []string{"name", "email", "phone", "address", "password", "confirmPassword"}

func (a *App) printFormErrors(errs forms.Errors) {
	for _, f := range fieldOrder {
		if msg, ok := errs[f]; ok {
			a.router.Println("  " + msg)
		}
	}
}

func (a *App) printFailure(err error) {
	var f *session.Failure
	if errors.As(err, &f) {
		a.router.Println(f.Message)
		return
	}
	a.router.Println("Error:", err)
}

func (a *App) login(ctx context.Context) {
	if a.session.IsAuthenticated() {
		a.router.Printf("Already logged in as %s. Log out first.\n", a.userName())
		return
	}

	var f forms.LoginForm
	var err error
	if f.Email, err = a.in.Ask("Email"); err != nil {
		return
	}
	if f.Password, err = a.in.AskSecret("Password"); err != nil {
		return
	}
	if errs := f.Validate(); errs != nil {
		a.printFormErrors(errs)
		return
	}

	if err := a.session.Login(ctx, f.Email, f.Password); err != nil {
		a.printFailure(err)
		return
	}
	a.afterAuth("Welcome back, %s!\n")
}

func (a *App) register(ctx context.Context) {
	if a.session.IsAuthenticated() {
		a.router.Println("Log out before creating another account.")
		return
	}

	var f forms.RegisterForm
	steps := []struct {
		prompt string
		dst    *string
		secret bool
	}{
		{"Full name", &f.Name, false},
		{"Email", &f.Email, false},
		{"Phone", &f.Phone, false},
		{"Address", &f.Address, false},
		{"Password", &f.Password, true},
		{"Confirm password", &f.ConfirmPassword, true},
	}
	for _, s := range steps {
		var err error
		if s.secret {
			*s.dst, err = a.in.AskSecret(s.prompt)
		} else {
			*s.dst, err = a.in.Ask(s.prompt)
		}
		if err != nil {
			return
		}
	}
	if errs := f.Validate(); errs != nil {
		a.printFormErrors(errs)
		return
	}

	if err := a.session.Register(ctx, f.Request()); err != nil {
		a.printFailure(err)
		return
	}
	a.afterAuth("Account created. Welcome, %s!\n")
}

func (a *App) afterAuth(greeting string) {
	if !a.session.IsAuthenticated() {
		a.router.Println("The server issued an expired session. Please log in again.")
		return
	}
	a.router.Go(ViewCatalog)
	a.router.Printf(greeting, a.userName())
}

func (a *App) logout(ctx context.Context) {
	if !a.session.IsAuthenticated() {
		a.router.Println("You are not logged in.")
		return
	}
	a.session.Logout(ctx, false)
	a.router.Go(a.router.LoginPath())
	a.router.Println("Logged out.")
}

// userName is the signed-in user's display name, or "" when anonymous.
func (a *App) userName() string {
	if u := a.session.User(); u != nil {
		return u.DisplayName()
	}
	return ""
}
