package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Storage interface {
	SaveUser(user User) error
	GetUserByName(username string) (User, error)
	SaveSession(session Session) error
	GetSessionByToken(token string) (Session, error)
	UpdateSession(token string, expireAt time.Time) error
	DeleteSession(token string) error
	GetSettings() (Settings, error)
	SaveSettings(settings Settings) error
}

type Service struct {
	storage Storage
}

func NewService(s Storage) Service {
	return Service{storage: s}
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash plain password to hashed password: %w", err)
	}
	return string(hashedPassword), nil
}

func ComparePasswords(hashedPwd string, plainPwd string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPwd), []byte(plainPwd))
	return err == nil
}

func CapitalizeFullName(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Register creates the user, persists the identity flag and opens a session.
func (s *Service) Register(newUser NewUser) (string, error) {
	if err := newUser.ValidateUserFields(); err != nil {
		return "", err
	}

	username := strings.ToLower(newUser.UserName)
	if _, err := s.storage.GetUserByName(username); err == nil {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrConflict,
			Message: fmt.Sprintf("This '%s' username already taken.", username),
		}
	}

	hashedPassword, err := HashPassword(newUser.PasswordPlain)
	if err != nil {
		return "", err
	}

	user := User{
		ID:             uuid.New().String(),
		UserName:       username,
		FullName:       CapitalizeFullName(newUser.FullName),
		PasswordHashed: hashedPassword,
	}
	if err := s.storage.SaveUser(user); err != nil {
		return "", fmt.Errorf("failed to registration: %w", err)
	}

	settings, err := s.storage.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to load settings: %w", err)
	}
	settings.UserName = username
	settings.HasCompletedSetup = false
	if err := s.storage.SaveSettings(settings); err != nil {
		return "", fmt.Errorf("failed to save settings: %w", err)
	}

	return s.openSession(user)
}

// Login validates credentials and opens a session, moving the gate out of the
// anonymous state.
func (s *Service) Login(credentials UserCredentialsPure) (string, error) {
	if credentials.UserName == "" {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Username cannot be empty!",
		}
	}
	if credentials.PasswordPlain == "" {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Password cannot be empty!",
		}
	}

	user, err := s.storage.GetUserByName(strings.ToLower(credentials.UserName))
	if err != nil {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Username or password is wrong.",
		}
	}
	if !ComparePasswords(user.PasswordHashed, credentials.PasswordPlain) {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Username or password is wrong.",
		}
	}

	settings, err := s.storage.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to load settings: %w", err)
	}
	settings.UserName = user.UserName
	if err := s.storage.SaveSettings(settings); err != nil {
		return "", fmt.Errorf("failed to save settings: %w", err)
	}

	return s.openSession(user)
}

func (s *Service) openSession(user User) (string, error) {
	tokenByte := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, tokenByte); err != nil {
		return "", fmt.Errorf("failed to generate new session: %w", err)
	}
	token := hex.EncodeToString(tokenByte)

	now := time.Now().UTC()
	session := Session{
		ID:        uuid.New().String(),
		Token:     token,
		CreatedAt: now,
		ExpireAt:  now.AddDate(0, 3, 0),
		UserID:    user.ID,
	}
	if err := s.storage.SaveSession(session); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return token, nil
}

// CheckSession resolves the token to a user id and extends sessions that are
// close to expiring.
func (s *Service) CheckSession(token string) (string, error) {
	session, err := s.storage.GetSessionByToken(strings.TrimSpace(token))
	if err != nil {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Session not found, login again.",
		}
	}

	now := time.Now().UTC()
	if !session.ExpireAt.After(now) {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Session expired, login again.",
		}
	}

	daysUntilExpiry := int(session.ExpireAt.Sub(now).Hours() / 24)
	if daysUntilExpiry <= 5 {
		newExpireAt := now.AddDate(0, 1, 0)
		if err := s.storage.UpdateSession(session.Token, newExpireAt); err != nil {
			return "", fmt.Errorf("failed to update session: %w", err)
		}
	}

	return session.UserID, nil
}

// Logout deletes the session and clears both onboarding flags, returning the
// gate to the anonymous state.
func (s *Service) Logout(token string) error {
	if err := s.storage.DeleteSession(token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	settings, err := s.storage.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	settings.UserName = ""
	settings.HasCompletedSetup = false
	if err := s.storage.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// CompleteSetup records that the initial budget setup finished, the terminal
// state for a session.
func (s *Service) CompleteSetup() error {
	settings, err := s.storage.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.UserName == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "No authenticated user.",
		}
	}
	settings.HasCompletedSetup = true
	if err := s.storage.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *Service) SetLanguage(language string) error {
	settings, err := s.storage.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	settings.Language = language
	if err := s.storage.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GateState derives the onboarding state from the persisted flags.
func (s *Service) GateState() (GateState, error) {
	settings, err := s.storage.GetSettings()
	if err != nil {
		return StateAnonymous, fmt.Errorf("failed to load settings: %w", err)
	}
	return StateOf(settings), nil
}

func StateOf(settings Settings) GateState {
	if settings.UserName == "" {
		return StateAnonymous
	}
	if !settings.HasCompletedSetup {
		return StateNoBudget
	}
	return StateBudgetSet
}

// NextRoute decides where the client should go from the current route. An
// authenticated user without a budget stays on the setup flow instead of being
// redirected to it again.
func NextRoute(state GateState, currentRoute string) string {
	switch state {
	case StateAnonymous:
		return RouteAuth
	case StateNoBudget:
		// staying on the setup flow, never a redirect loop
		return RouteBudgetSetup
	default:
		if currentRoute == "" || currentRoute == RouteAuth || currentRoute == RouteBudgetSetup {
			return RouteDashboard
		}
		return currentRoute
	}
}
