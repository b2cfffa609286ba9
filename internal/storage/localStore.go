package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/auth"
	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	"github.com/fatali-fataliyev/finance_ledger/internal/category"
	"github.com/fatali-fataliyev/finance_ledger/internal/goal"
	"github.com/fatali-fataliyev/finance_ledger/internal/ledger"
	"github.com/fatali-fataliyev/finance_ledger/logging"
)

// LocalStore keeps each key as one JSON file under dir, mirroring the
// key-value layout of the original browser storage. A value that fails to
// parse falls back to the built-in defaults instead of failing the caller.
type LocalStore struct {
	dir string
	mu  sync.Mutex
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		dir = "./data"
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (ls *LocalStore) GetStorageType() string {
	return "localstore"
}

func (ls *LocalStore) path(key string) string {
	return filepath.Join(ls.dir, key+".json")
}

// readKey decodes the value stored under key into v. A missing file leaves v
// untouched, a corrupt file is logged and also leaves v untouched so the
// caller keeps its defaults.
func (ls *LocalStore) readKey(key string, v any) error {
	data, err := os.ReadFile(ls.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read key %q: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		logging.Logger.Warnf("stored value for key %q is corrupt, falling back to defaults: %v", key, err)
		return nil
	}
	return nil
}

func (ls *LocalStore) writeKey(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal key %q: %w", key, err)
	}
	tmp := ls.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	if err := os.Rename(tmp, ls.path(key)); err != nil {
		return fmt.Errorf("failed to commit key %q: %w", key, err)
	}
	return nil
}

// --- LEDGER --- //

func (ls *LocalStore) GetTransactions() ([]ledger.Transaction, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.getTransactionsLocked()
}

func (ls *LocalStore) getTransactionsLocked() ([]ledger.Transaction, error) {
	var rows []storedTransaction
	if err := ls.readKey(keyTransactions, &rows); err != nil {
		return nil, err
	}
	return fromStoredTransactions(rows), nil
}

func (ls *LocalStore) SaveTransactions(transactions []ledger.Transaction) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.writeKey(keyTransactions, toStoredTransactions(transactions))
}

// --- CATEGORIES --- //

func (ls *LocalStore) GetCategories() ([]category.Category, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	rows := toStoredCategories(category.Defaults())
	if err := ls.readKey(keyCategories, &rows); err != nil {
		return nil, err
	}
	return fromStoredCategories(rows), nil
}

func (ls *LocalStore) SaveCategories(categories []category.Category) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.writeKey(keyCategories, toStoredCategories(categories))
}

// --- BUDGETS --- //

func (ls *LocalStore) GetBudgets() ([]budget.Budget, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	rows := toStoredBudgets(budget.Defaults())
	if err := ls.readKey(keyBudgets, &rows); err != nil {
		return nil, err
	}
	return fromStoredBudgets(rows), nil
}

func (ls *LocalStore) SaveBudgets(budgets []budget.Budget) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.writeKey(keyBudgets, toStoredBudgets(budgets))
}

// --- GOALS --- //

func (ls *LocalStore) GetGoals() ([]goal.Goal, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	var rows []storedGoal
	if err := ls.readKey(keyGoals, &rows); err != nil {
		return nil, err
	}
	return fromStoredGoals(rows), nil
}

func (ls *LocalStore) SaveGoals(goals []goal.Goal) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.writeKey(keyGoals, toStoredGoals(goals))
}

// SaveGoalFunding writes the goal collection and the linked transaction
// together. Both values are staged first and committed by rename, so a
// failure before the commit leaves the previous state intact.
func (ls *LocalStore) SaveGoalFunding(goals []goal.Goal, txn ledger.Transaction) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	transactions, err := ls.getTransactionsLocked()
	if err != nil {
		return err
	}
	transactions = append(transactions, txn)
	ledger.SortByDateDesc(transactions)

	goalsData, err := json.Marshal(toStoredGoals(goals))
	if err != nil {
		return fmt.Errorf("failed to marshal goals: %w", err)
	}
	txnsData, err := json.Marshal(toStoredTransactions(transactions))
	if err != nil {
		return fmt.Errorf("failed to marshal transactions: %w", err)
	}

	goalsTmp := ls.path(keyGoals) + ".tmp"
	txnsTmp := ls.path(keyTransactions) + ".tmp"
	if err := os.WriteFile(goalsTmp, goalsData, 0644); err != nil {
		return fmt.Errorf("failed to stage goals: %w", err)
	}
	if err := os.WriteFile(txnsTmp, txnsData, 0644); err != nil {
		os.Remove(goalsTmp)
		return fmt.Errorf("failed to stage transactions: %w", err)
	}
	if err := os.Rename(goalsTmp, ls.path(keyGoals)); err != nil {
		os.Remove(goalsTmp)
		os.Remove(txnsTmp)
		return fmt.Errorf("failed to commit goals: %w", err)
	}
	if err := os.Rename(txnsTmp, ls.path(keyTransactions)); err != nil {
		os.Remove(txnsTmp)
		return fmt.Errorf("failed to commit transactions: %w", err)
	}
	return nil
}

// --- USERS & SESSIONS --- //

func (ls *LocalStore) SaveUser(user auth.User) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	var rows []storedUser
	if err := ls.readKey(keyUsers, &rows); err != nil {
		return err
	}
	rows = append(rows, toStoredUser(user))
	return ls.writeKey(keyUsers, rows)
}

func (ls *LocalStore) GetUserByName(username string) (auth.User, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	var rows []storedUser
	if err := ls.readKey(keyUsers, &rows); err != nil {
		return auth.User{}, err
	}
	for _, r := range rows {
		if r.UserName == username {
			return fromStoredUser(r), nil
		}
	}
	return auth.User{}, appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: fmt.Sprintf("User not found: %s", username),
	}
}

func (ls *LocalStore) SaveSession(session auth.Session) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	var rows []storedSession
	if err := ls.readKey(keySessions, &rows); err != nil {
		return err
	}
	rows = append(rows, toStoredSession(session))
	return ls.writeKey(keySessions, rows)
}

func (ls *LocalStore) GetSessionByToken(token string) (auth.Session, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	var rows []storedSession
	if err := ls.readKey(keySessions, &rows); err != nil {
		return auth.Session{}, err
	}
	for _, r := range rows {
		if r.Token == token {
			return fromStoredSession(r), nil
		}
	}
	return auth.Session{}, appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: "Session not found.",
	}
}

func (ls *LocalStore) UpdateSession(token string, expireAt time.Time) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	var rows []storedSession
	if err := ls.readKey(keySessions, &rows); err != nil {
		return err
	}
	for i, r := range rows {
		if r.Token == token {
			rows[i].ExpireAt = expireAt
			return ls.writeKey(keySessions, rows)
		}
	}
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: "Session not found.",
	}
}

func (ls *LocalStore) DeleteSession(token string) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	var rows []storedSession
	if err := ls.readKey(keySessions, &rows); err != nil {
		return err
	}
	for i, r := range rows {
		if r.Token == token {
			rows = append(rows[:i], rows[i+1:]...)
			return ls.writeKey(keySessions, rows)
		}
	}
	return nil
}

// --- SETTINGS --- //

func (ls *LocalStore) GetSettings() (auth.Settings, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	var settings auth.Settings
	if err := ls.readKey(keyUserName, &settings.UserName); err != nil {
		return auth.Settings{}, err
	}
	if err := ls.readKey(keyHasCompletedSetup, &settings.HasCompletedSetup); err != nil {
		return auth.Settings{}, err
	}
	if err := ls.readKey(keyLanguage, &settings.Language); err != nil {
		return auth.Settings{}, err
	}
	return settings, nil
}

func (ls *LocalStore) SaveSettings(settings auth.Settings) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if err := ls.writeKey(keyUserName, settings.UserName); err != nil {
		return err
	}
	if err := ls.writeKey(keyHasCompletedSetup, settings.HasCompletedSetup); err != nil {
		return err
	}
	return ls.writeKey(keyLanguage, settings.Language)
}
