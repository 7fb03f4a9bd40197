package session

import (
	"context"
	"time"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/models"
)

// Storage keys owned by the session manager.
const (
	TokenKey = "token"
	UserKey  = "user"
)

const DefaultLoginPath = "/login"

const (
	defaultLoginMessage    = "Login failed. Please try again."
	defaultRegisterMessage = "Registration failed. Please try again."
)

type State int

const (
	StateUninitialized State = iota
	StateHydrating
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateHydrating:
		return "hydrating"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// AuthAPI is the part of the API client the manager needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
}

// Navigator moves the user interface to another view.
type Navigator interface {
	RedirectTo(path string)
}

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallScheduler struct{}

func (wallScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Failure is returned by Login and Register. Message is suitable for showing
// to the user; Err is the underlying cause, if any.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	State         State
	User          *models.Profile
	Token         string
	Loading       bool
	Authenticated bool
}
