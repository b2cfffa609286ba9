package storage

import (
	"time"

	"github.com/fatali-fataliyev/finance_ledger/internal/auth"
	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	"github.com/fatali-fataliyev/finance_ledger/internal/category"
	"github.com/fatali-fataliyev/finance_ledger/internal/goal"
	"github.com/fatali-fataliyev/finance_ledger/internal/ledger"
)

// Persisted key layout, one JSON value per key.
const (
	keyTransactions      = "transactions"
	keyBudgets           = "budgets"
	keyGoals             = "goals"
	keyCategories        = "categories"
	keyUsers             = "users"
	keySessions          = "sessions"
	keyUserName          = "userName"
	keyHasCompletedSetup = "hasCompletedSetup"
	keyLanguage          = "language"
)

type storedTransaction struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
}

type storedCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

type storedBudget struct {
	ID           string `json:"id"`
	CategoryName string `json:"categoryName"`
	Amount       int64  `json:"amount"`
}

type storedGoal struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TargetAmount  int64  `json:"targetAmount"`
	CurrentAmount int64  `json:"currentAmount"`
	Status        string `json:"status"`
}

type storedUser struct {
	ID             string `json:"id"`
	UserName       string `json:"userName"`
	FullName       string `json:"fullName"`
	PasswordHashed string `json:"passwordHashed"`
}

type storedSession struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
	ExpireAt  time.Time `json:"expireAt"`
	UserID    string    `json:"userId"`
}

func toStoredTransactions(ts []ledger.Transaction) []storedTransaction {
	out := make([]storedTransaction, 0, len(ts))
	for _, t := range ts {
		out = append(out, storedTransaction{
			ID:          t.ID,
			Date:        t.Date,
			Description: t.Description,
			Amount:      t.Amount,
			Category:    t.Category,
			Type:        string(t.Type),
		})
	}
	return out
}

func fromStoredTransactions(rows []storedTransaction) []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, ledger.Transaction{
			ID:          r.ID,
			Date:        r.Date,
			Description: r.Description,
			Amount:      r.Amount,
			Category:    r.Category,
			Type:        ledger.TransactionType(r.Type),
		})
	}
	return out
}

func toStoredCategories(cs []category.Category) []storedCategory {
	out := make([]storedCategory, 0, len(cs))
	for _, c := range cs {
		out = append(out, storedCategory{
			ID:    c.ID,
			Name:  c.Name,
			Icon:  c.Icon,
			Color: c.Color,
			Type:  string(c.Type),
		})
	}
	return out
}

func fromStoredCategories(rows []storedCategory) []category.Category {
	out := make([]category.Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, category.Category{
			ID:    r.ID,
			Name:  r.Name,
			Icon:  r.Icon,
			Color: r.Color,
			Type:  category.CategoryType(r.Type),
		})
	}
	return out
}

func toStoredBudgets(bs []budget.Budget) []storedBudget {
	out := make([]storedBudget, 0, len(bs))
	for _, b := range bs {
		out = append(out, storedBudget{ID: b.ID, CategoryName: b.CategoryName, Amount: b.Amount})
	}
	return out
}

func fromStoredBudgets(rows []storedBudget) []budget.Budget {
	out := make([]budget.Budget, 0, len(rows))
	for _, r := range rows {
		out = append(out, budget.Budget{ID: r.ID, CategoryName: r.CategoryName, Amount: r.Amount})
	}
	return out
}

func toStoredGoals(gs []goal.Goal) []storedGoal {
	out := make([]storedGoal, 0, len(gs))
	for _, g := range gs {
		out = append(out, storedGoal{
			ID:            g.ID,
			Name:          g.Name,
			TargetAmount:  g.TargetAmount,
			CurrentAmount: g.CurrentAmount,
			Status:        string(g.Status),
		})
	}
	return out
}

func fromStoredGoals(rows []storedGoal) []goal.Goal {
	out := make([]goal.Goal, 0, len(rows))
	for _, r := range rows {
		out = append(out, goal.Goal{
			ID:            r.ID,
			Name:          r.Name,
			TargetAmount:  r.TargetAmount,
			CurrentAmount: r.CurrentAmount,
			Status:        goal.GoalStatus(r.Status),
		})
	}
	return out
}

func toStoredUser(u auth.User) storedUser {
	return storedUser{ID: u.ID, UserName: u.UserName, FullName: u.FullName, PasswordHashed: u.PasswordHashed}
}

func fromStoredUser(r storedUser) auth.User {
	return auth.User{ID: r.ID, UserName: r.UserName, FullName: r.FullName, PasswordHashed: r.PasswordHashed}
}

func toStoredSession(s auth.Session) storedSession {
	return storedSession{ID: s.ID, Token: s.Token, CreatedAt: s.CreatedAt, ExpireAt: s.ExpireAt, UserID: s.UserID}
}

func fromStoredSession(r storedSession) auth.Session {
	return auth.Session{ID: r.ID, Token: r.Token, CreatedAt: r.CreatedAt, ExpireAt: r.ExpireAt, UserID: r.UserID}
}
