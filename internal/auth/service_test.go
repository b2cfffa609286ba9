package auth

import (
	"testing"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/stretchr/testify/require"
)

// Mocks

type MockStorage struct {
	users    map[string]User
	sessions map[string]Session
	settings Settings
}

func NewMockStorage() *MockStorage {
	return &MockStorage{
		users:    make(map[string]User),
		sessions: make(map[string]Session),
	}
}

func (m *MockStorage) SaveUser(user User) error {
	m.users[user.UserName] = user
	return nil
}

func (m *MockStorage) GetUserByName(username string) (User, error) {
	user, ok := m.users[username]
	if !ok {
		return User{}, appErrors.ErrorResponse{Code: appErrors.ErrNotFound, Message: "User not found."}
	}
	return user, nil
}

func (m *MockStorage) SaveSession(session Session) error {
	m.sessions[session.Token] = session
	return nil
}

func (m *MockStorage) GetSessionByToken(token string) (Session, error) {
	session, ok := m.sessions[token]
	if !ok {
		return Session{}, appErrors.ErrorResponse{Code: appErrors.ErrNotFound, Message: "Session not found."}
	}
	return session, nil
}

func (m *MockStorage) UpdateSession(token string, expireAt time.Time) error {
	session := m.sessions[token]
	session.ExpireAt = expireAt
	m.sessions[token] = session
	return nil
}

func (m *MockStorage) DeleteSession(token string) error {
	delete(m.sessions, token)
	return nil
}

func (m *MockStorage) GetSettings() (Settings, error) {
	return m.settings, nil
}

func (m *MockStorage) SaveSettings(settings Settings) error {
	m.settings = settings
	return nil
}

// Tests

func TestHashPassword(t *testing.T) {
	plain := "messi10"

	new_hash, err := HashPassword(plain)
	require.NoError(t, err)

	require.True(t, ComparePasswords(new_hash, plain))
	require.False(t, ComparePasswords(new_hash, "wrong"))
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name        string
		input       NewUser
		wantErr     string
		expectedMsg string
	}{
		{
			name:  "Success - Valid registration",
			input: NewUser{UserName: "john_doe", FullName: "john doe", PasswordPlain: "secure123"},
		},
		{
			name:        "Fail - Empty username",
			input:       NewUser{UserName: "", PasswordPlain: "123"},
			wantErr:     appErrors.ErrInvalidInput,
			expectedMsg: "Username cannot be empty!",
		},
		{
			name:    "Fail - Invalid characters",
			input:   NewUser{UserName: "John Doe!", PasswordPlain: "123"},
			wantErr: appErrors.ErrInvalidInput,
		},
		{
			name:        "Fail - Empty password",
			input:       NewUser{UserName: "john_doe", PasswordPlain: ""},
			wantErr:     appErrors.ErrInvalidInput,
			expectedMsg: "Password cannot be empty!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := NewMockStorage()
			s := NewService(mockStore)

			token, err := s.Register(tt.input)
			if tt.wantErr != "" {
				require.Equal(t, tt.wantErr, appErrors.CodeOf(err))
				if appErr, ok := err.(appErrors.ErrorResponse); ok && tt.expectedMsg != "" {
					require.Equal(t, tt.expectedMsg, appErr.Message)
				}
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, token)

			// Registration signs the user in but setup is still pending.
			require.Equal(t, tt.input.UserName, mockStore.settings.UserName)
			require.False(t, mockStore.settings.HasCompletedSetup)

			user := mockStore.users[tt.input.UserName]
			require.Equal(t, "John Doe", user.FullName)
			require.NotEqual(t, tt.input.PasswordPlain, user.PasswordHashed)
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	mockStore := NewMockStorage()
	s := NewService(mockStore)

	_, err := s.Register(NewUser{UserName: "john_doe", PasswordPlain: "secure123"})
	require.NoError(t, err)

	_, err = s.Register(NewUser{UserName: "john_doe", PasswordPlain: "other456"})
	require.Equal(t, appErrors.ErrConflict, appErrors.CodeOf(err))
}

func TestLogin(t *testing.T) {
	mockStore := NewMockStorage()
	s := NewService(mockStore)

	_, err := s.Register(NewUser{UserName: "john_doe", PasswordPlain: "secure123"})
	require.NoError(t, err)
	require.NoError(t, s.Logout(""))

	tests := []struct {
		name    string
		input   UserCredentialsPure
		wantErr string
	}{
		{name: "Success - Valid credentials", input: UserCredentialsPure{UserName: "john_doe", PasswordPlain: "secure123"}},
		{name: "Success - Uppercase username", input: UserCredentialsPure{UserName: "JOHN_DOE", PasswordPlain: "secure123"}},
		{name: "Fail - Wrong password", input: UserCredentialsPure{UserName: "john_doe", PasswordPlain: "wrong"}, wantErr: appErrors.ErrAuth},
		{name: "Fail - Unknown user", input: UserCredentialsPure{UserName: "nobody", PasswordPlain: "secure123"}, wantErr: appErrors.ErrAuth},
		{name: "Fail - Empty username", input: UserCredentialsPure{UserName: "", PasswordPlain: "x"}, wantErr: appErrors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := s.Login(tt.input)
			if tt.wantErr != "" {
				require.Equal(t, tt.wantErr, appErrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, token)
			require.Equal(t, "john_doe", mockStore.settings.UserName)
		})
	}
}

func TestCheckSession(t *testing.T) {
	mockStore := NewMockStorage()
	s := NewService(mockStore)

	now := time.Now().UTC()
	mockStore.sessions["tok-valid"] = Session{
		ID: "s1", Token: "tok-valid", CreatedAt: now, ExpireAt: now.Add(48 * time.Hour), UserID: "u1",
	}
	mockStore.sessions["tok-expired"] = Session{
		ID: "s2", Token: "tok-expired", CreatedAt: now.Add(-2 * time.Hour), ExpireAt: now.Add(-1 * time.Hour), UserID: "u2",
	}
	mockStore.sessions["tok-healthy"] = Session{
		ID: "s3", Token: "tok-healthy", CreatedAt: now, ExpireAt: now.AddDate(0, 2, 0), UserID: "u3",
	}

	userID, err := s.CheckSession("tok-valid")
	require.NoError(t, err)
	require.Equal(t, "u1", userID)

	// A session close to expiry gets extended.
	require.True(t, mockStore.sessions["tok-valid"].ExpireAt.After(now.AddDate(0, 0, 20)))

	// A healthy session is left alone.
	_, err = s.CheckSession("tok-healthy")
	require.NoError(t, err)
	require.Equal(t, now.AddDate(0, 2, 0), mockStore.sessions["tok-healthy"].ExpireAt)

	_, err = s.CheckSession("tok-expired")
	require.Equal(t, appErrors.ErrAuth, appErrors.CodeOf(err))

	_, err = s.CheckSession("tok-unknown")
	require.Equal(t, appErrors.ErrAuth, appErrors.CodeOf(err))
}

func TestLogoutClearsGateFlags(t *testing.T) {
	mockStore := NewMockStorage()
	s := NewService(mockStore)

	token, err := s.Register(NewUser{UserName: "john_doe", PasswordPlain: "secure123"})
	require.NoError(t, err)
	require.NoError(t, s.CompleteSetup())

	state, err := s.GateState()
	require.NoError(t, err)
	require.Equal(t, StateBudgetSet, state)

	require.NoError(t, s.Logout(token))

	state, err = s.GateState()
	require.NoError(t, err)
	require.Equal(t, StateAnonymous, state)
	require.Empty(t, mockStore.sessions)
}

func TestCompleteSetupRequiresUser(t *testing.T) {
	mockStore := NewMockStorage()
	s := NewService(mockStore)

	err := s.CompleteSetup()
	require.Equal(t, appErrors.ErrAuth, appErrors.CodeOf(err))
}

func TestStateOf(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		want     GateState
	}{
		{name: "anonymous", settings: Settings{}, want: StateAnonymous},
		{name: "authenticated without budget", settings: Settings{UserName: "john"}, want: StateNoBudget},
		{name: "budget set", settings: Settings{UserName: "john", HasCompletedSetup: true}, want: StateBudgetSet},
		{name: "setup flag without user is still anonymous", settings: Settings{HasCompletedSetup: true}, want: StateAnonymous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StateOf(tt.settings); got != tt.want {
				t.Errorf("StateOf(%+v) = %q, want %q", tt.settings, got, tt.want)
			}
		})
	}
}

func TestNextRoute(t *testing.T) {
	tests := []struct {
		name         string
		state        GateState
		currentRoute string
		want         string
	}{
		{name: "anonymous goes to auth", state: StateAnonymous, currentRoute: RouteDashboard, want: RouteAuth},
		{name: "no budget goes to setup", state: StateNoBudget, currentRoute: RouteDashboard, want: RouteBudgetSetup},
		{name: "no budget stays on setup", state: StateNoBudget, currentRoute: RouteBudgetSetup, want: RouteBudgetSetup},
		{name: "budget set keeps current route", state: StateBudgetSet, currentRoute: "/goals", want: "/goals"},
		{name: "budget set leaves auth page", state: StateBudgetSet, currentRoute: RouteAuth, want: RouteDashboard},
		{name: "budget set leaves setup page", state: StateBudgetSet, currentRoute: RouteBudgetSetup, want: RouteDashboard},
		{name: "budget set with no route", state: StateBudgetSet, currentRoute: "", want: RouteDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextRoute(tt.state, tt.currentRoute); got != tt.want {
				t.Errorf("NextRoute(%q, %q) = %q, want %q", tt.state, tt.currentRoute, got, tt.want)
			}
		})
	}
}
