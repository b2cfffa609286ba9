package auth

import (
	"fmt"
	"regexp"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
)

const (
	MAX_LENGTH_FULLNAME = 255
	MAX_LENGTH_USERNAME = 30
	MAX_PASSWORD_LENGTH = 72
)

type User struct {
	ID             string
	UserName       string
	FullName       string
	PasswordHashed string
}

type NewUser struct {
	UserName      string
	FullName      string
	PasswordPlain string
}

var usernameRegex = regexp.MustCompile(`^[a-z0-9_]{1,30}$`)

func (newUser NewUser) ValidateUserFields() error {
	if newUser.UserName == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Username cannot be empty!",
		}
	}
	if !usernameRegex.MatchString(newUser.UserName) {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Username contains wrong characters, example username: john_doe",
		}
	}
	if len(newUser.FullName) > MAX_LENGTH_FULLNAME {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Full name so long, maximum length is %d", MAX_LENGTH_FULLNAME),
		}
	}
	if newUser.PasswordPlain == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Password cannot be empty!",
		}
	}
	if len(newUser.PasswordPlain) > MAX_PASSWORD_LENGTH {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Password so long, maximum length is %d", MAX_PASSWORD_LENGTH),
		}
	}
	return nil
}

type Session struct {
	ID        string
	Token     string
	CreatedAt time.Time
	ExpireAt  time.Time
	UserID    string
}

type UserCredentialsPure struct {
	UserName      string
	PasswordPlain string
}

// Settings are the persisted onboarding flags. UserName doubles as the
// identity flag of the session gate.
type Settings struct {
	UserName          string
	HasCompletedSetup bool
	Language          string
}

// GateState is the onboarding state machine position derived from Settings.
type GateState string

const (
	StateAnonymous GateState = "anonymous"
	StateNoBudget  GateState = "authenticated"
	StateBudgetSet GateState = "budget-set"
)

const (
	RouteAuth        = "/auth"
	RouteBudgetSetup = "/budget-setup"
	RouteDashboard   = "/dashboard"
)
