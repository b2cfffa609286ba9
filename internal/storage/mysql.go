package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/auth"
	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	"github.com/fatali-fataliyev/finance_ledger/internal/category"
	"github.com/fatali-fataliyev/finance_ledger/internal/goal"
	"github.com/fatali-fataliyev/finance_ledger/internal/ledger"
	"github.com/fatali-fataliyev/finance_ledger/logging"
	_ "github.com/go-sql-driver/mysql"
)

// --- INIT START --- //

func Init() (*sql.DB, error) {
	username := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASS")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	dbname := os.Getenv("DB_NAME")
	fullDsn := os.Getenv("FULL_DSN")

	if dbname == "" {
		dbname = "finance_ledger"
	}

	var adminDsn string
	if fullDsn != "" {
		parts := strings.Split(fullDsn, "/")
		adminDsn = strings.Join(parts[:len(parts)-1], "/") + "/"
	} else {
		if username == "" || password == "" || host == "" || port == "" {
			return nil, fmt.Errorf("missing required DB environment variables")
		}
		adminDsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/?parseTime=true", username, password, host, port)
	}

	logging.Logger.Info("Connecting to MySQL server for initialization...")
	adminDb, err := sql.Open("mysql", adminDsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open admin mysql handle: %v", err)
	}
	connected := false
	for i := 0; i < 15; i++ {
		if err := adminDb.Ping(); err == nil {
			connected = true
			break
		}
		logging.Logger.Warnf("Database not ready, retrying... (%d/15)", i+1)
		time.Sleep(3 * time.Second)
	}
	if !connected {
		adminDb.Close()
		return nil, fmt.Errorf("database unreachable after multiple attempts")
	}

	var dbnameExistence string
	checkDbnameExistQuery := "SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?"
	err = adminDb.QueryRow(checkDbnameExistQuery, dbname).Scan(&dbnameExistence)

	if err == sql.ErrNoRows {
		logging.Logger.Infof("Database '%s' does not exist, creating...", dbname)
		createDbSql := fmt.Sprintf("CREATE DATABASE `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;", dbname)
		if _, err := adminDb.Exec(createDbSql); err != nil {
			adminDb.Close()
			return nil, fmt.Errorf("failed to create database: %v", err)
		}
	} else if err != nil {
		adminDb.Close()
		return nil, fmt.Errorf("failed to check database existence: %v", err)
	}
	adminDb.Close()

	var dsn string
	if fullDsn != "" {
		dsn = fullDsn
	} else {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", username, password, host, port, dbname)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql handle: %v", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	if err := createTables(db); err != nil {
		return nil, err
	}
	if err := seedCategories(db); err != nil {
		return nil, err
	}
	if err := seedBudgets(db); err != nil {
		return nil, err
	}

	logging.Logger.Info("Database initialized.")
	return db, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			username VARCHAR(30) NOT NULL UNIQUE,
			full_name VARCHAR(255) NOT NULL,
			password_hashed VARCHAR(255) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id VARCHAR(36) PRIMARY KEY,
			token VARCHAR(64) NOT NULL UNIQUE,
			created_at DATETIME NOT NULL,
			expire_at DATETIME NOT NULL,
			user_id VARCHAR(36) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			name VARCHAR(64) PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id VARCHAR(36) PRIMARY KEY,
			date DATETIME NOT NULL,
			description VARCHAR(1000) NOT NULL,
			amount BIGINT NOT NULL,
			category VARCHAR(255) NOT NULL,
			type VARCHAR(16) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			icon VARCHAR(64) NOT NULL,
			color VARCHAR(64) NOT NULL,
			type VARCHAR(16) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS budgets (
			id VARCHAR(36) PRIMARY KEY,
			category_name VARCHAR(255) NOT NULL UNIQUE,
			amount BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS goals (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			target_amount BIGINT NOT NULL,
			current_amount BIGINT NOT NULL,
			status VARCHAR(16) NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %v", err)
		}
	}
	return nil
}

func seedCategories(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("failed to count categories: %v", err)
	}
	if count > 0 {
		return nil
	}
	for _, c := range category.Defaults() {
		_, err := db.Exec(
			"INSERT INTO categories (id, name, icon, color, type) VALUES (?, ?, ?, ?, ?)",
			c.ID, c.Name, c.Icon, c.Color, string(c.Type),
		)
		if err != nil {
			return fmt.Errorf("failed to seed categories: %v", err)
		}
	}
	return nil
}

func seedBudgets(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM budgets").Scan(&count); err != nil {
		return fmt.Errorf("failed to count budgets: %v", err)
	}
	if count > 0 {
		return nil
	}
	for _, b := range budget.Defaults() {
		_, err := db.Exec(
			"INSERT INTO budgets (id, category_name, amount) VALUES (?, ?, ?)",
			b.ID, b.CategoryName, b.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to seed budgets: %v", err)
		}
	}
	return nil
}

// --- INIT END --- //

type MySQLStorage struct {
	db *sql.DB
}

func NewMySQLStorage(db *sql.DB) *MySQLStorage {
	return &MySQLStorage{db: db}
}

func (s *MySQLStorage) GetStorageType() string {
	return "mysql"
}

// --- LEDGER --- //

func (s *MySQLStorage) GetTransactions() ([]ledger.Transaction, error) {
	rows, err := s.db.Query("SELECT id, date, description, amount, category, type FROM transactions ORDER BY date DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []ledger.Transaction
	for rows.Next() {
		var t ledger.Transaction
		var tType string
		if err := rows.Scan(&t.ID, &t.Date, &t.Description, &t.Amount, &t.Category, &tType); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Type = ledger.TransactionType(tType)
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func replaceTransactions(tx *sql.Tx, transactions []ledger.Transaction) error {
	if _, err := tx.Exec("DELETE FROM transactions"); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	for _, t := range transactions {
		_, err := tx.Exec(
			"INSERT INTO transactions (id, date, description, amount, category, type) VALUES (?, ?, ?, ?, ?, ?)",
			t.ID, t.Date, t.Description, t.Amount, t.Category, string(t.Type),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}
	return nil
}

// SaveTransactions replaces the stored snapshot with the given collection.
func (s *MySQLStorage) SaveTransactions(transactions []ledger.Transaction) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := replaceTransactions(tx, transactions); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// --- CATEGORIES --- //

func (s *MySQLStorage) GetCategories() ([]category.Category, error) {
	rows, err := s.db.Query("SELECT id, name, icon, color, type FROM categories")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []category.Category
	for rows.Next() {
		var c category.Category
		var cType string
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &cType); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Type = category.CategoryType(cType)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *MySQLStorage) SaveCategories(categories []category.Category) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM categories"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear categories: %w", err)
	}
	for _, c := range categories {
		_, err := tx.Exec(
			"INSERT INTO categories (id, name, icon, color, type) VALUES (?, ?, ?, ?, ?)",
			c.ID, c.Name, c.Icon, c.Color, string(c.Type),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert category: %w", err)
		}
	}
	return tx.Commit()
}

// --- BUDGETS --- //

func (s *MySQLStorage) GetBudgets() ([]budget.Budget, error) {
	rows, err := s.db.Query("SELECT id, category_name, amount FROM budgets")
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []budget.Budget
	for rows.Next() {
		var b budget.Budget
		if err := rows.Scan(&b.ID, &b.CategoryName, &b.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (s *MySQLStorage) SaveBudgets(budgets []budget.Budget) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM budgets"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear budgets: %w", err)
	}
	for _, b := range budgets {
		_, err := tx.Exec(
			"INSERT INTO budgets (id, category_name, amount) VALUES (?, ?, ?)",
			b.ID, b.CategoryName, b.Amount,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert budget: %w", err)
		}
	}
	return tx.Commit()
}

// --- GOALS --- //

func (s *MySQLStorage) GetGoals() ([]goal.Goal, error) {
	rows, err := s.db.Query("SELECT id, name, target_amount, current_amount, status FROM goals")
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []goal.Goal
	for rows.Next() {
		var g goal.Goal
		var status string
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &status); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		g.Status = goal.GoalStatus(status)
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func replaceGoals(tx *sql.Tx, goals []goal.Goal) error {
	if _, err := tx.Exec("DELETE FROM goals"); err != nil {
		return fmt.Errorf("failed to clear goals: %w", err)
	}
	for _, g := range goals {
		_, err := tx.Exec(
			"INSERT INTO goals (id, name, target_amount, current_amount, status) VALUES (?, ?, ?, ?, ?)",
			g.ID, g.Name, g.TargetAmount, g.CurrentAmount, string(g.Status),
		)
		if err != nil {
			return fmt.Errorf("failed to insert goal: %w", err)
		}
	}
	return nil
}

func (s *MySQLStorage) SaveGoals(goals []goal.Goal) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := replaceGoals(tx, goals); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// SaveGoalFunding commits the goal update and the linked ledger entry in one
// database transaction.
func (s *MySQLStorage) SaveGoalFunding(goals []goal.Goal, txn ledger.Transaction) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := replaceGoals(tx, goals); err != nil {
		tx.Rollback()
		return err
	}
	_, err = tx.Exec(
		"INSERT INTO transactions (id, date, description, amount, category, type) VALUES (?, ?, ?, ?, ?, ?)",
		txn.ID, txn.Date, txn.Description, txn.Amount, txn.Category, string(txn.Type),
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert funding transaction: %w", err)
	}
	return tx.Commit()
}

// --- USERS & SESSIONS --- //

func (s *MySQLStorage) SaveUser(user auth.User) error {
	_, err := s.db.Exec(
		"INSERT INTO users (id, username, full_name, password_hashed) VALUES (?, ?, ?, ?)",
		user.ID, user.UserName, user.FullName, user.PasswordHashed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *MySQLStorage) GetUserByName(username string) (auth.User, error) {
	var user auth.User
	err := s.db.QueryRow(
		"SELECT id, username, full_name, password_hashed FROM users WHERE username = ?", username,
	).Scan(&user.ID, &user.UserName, &user.FullName, &user.PasswordHashed)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.User{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: fmt.Sprintf("User not found: %s", username),
		}
	}
	if err != nil {
		return auth.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (s *MySQLStorage) SaveSession(session auth.Session) error {
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, token, created_at, expire_at, user_id) VALUES (?, ?, ?, ?, ?)",
		session.ID, session.Token, session.CreatedAt, session.ExpireAt, session.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (s *MySQLStorage) GetSessionByToken(token string) (auth.Session, error) {
	var session auth.Session
	err := s.db.QueryRow(
		"SELECT id, token, created_at, expire_at, user_id FROM sessions WHERE token = ?", token,
	).Scan(&session.ID, &session.Token, &session.CreatedAt, &session.ExpireAt, &session.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Session{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: "Session not found.",
		}
	}
	if err != nil {
		return auth.Session{}, fmt.Errorf("failed to query session: %w", err)
	}
	return session, nil
}

func (s *MySQLStorage) UpdateSession(token string, expireAt time.Time) error {
	_, err := s.db.Exec("UPDATE sessions SET expire_at = ? WHERE token = ?", expireAt, token)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

func (s *MySQLStorage) DeleteSession(token string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE token = ?", token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// --- SETTINGS --- //

func (s *MySQLStorage) getSetting(name string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE name = ?", name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query setting %q: %w", name, err)
	}
	return value, nil
}

func (s *MySQLStorage) setSetting(name string, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO settings (name, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)",
		name, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save setting %q: %w", name, err)
	}
	return nil
}

func (s *MySQLStorage) GetSettings() (auth.Settings, error) {
	userName, err := s.getSetting(keyUserName)
	if err != nil {
		return auth.Settings{}, err
	}
	completed, err := s.getSetting(keyHasCompletedSetup)
	if err != nil {
		return auth.Settings{}, err
	}
	language, err := s.getSetting(keyLanguage)
	if err != nil {
		return auth.Settings{}, err
	}
	return auth.Settings{
		UserName:          userName,
		HasCompletedSetup: completed == "true",
		Language:          language,
	}, nil
}

func (s *MySQLStorage) SaveSettings(settings auth.Settings) error {
	if err := s.setSetting(keyUserName, settings.UserName); err != nil {
		return err
	}
	completed := "false"
	if settings.HasCompletedSetup {
		completed = "true"
	}
	if err := s.setSetting(keyHasCompletedSetup, completed); err != nil {
		return err
	}
	return s.setSetting(keyLanguage, settings.Language)
}
