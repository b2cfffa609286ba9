package ledger

import (
	"time"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
	TypeSaving  TransactionType = "saving"
)

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense || t == TypeSaving
}

// Transaction amounts are always integer minor units (cents). Major-unit
// conversion happens only at the API boundary, see money.go.
type Transaction struct {
	ID          string
	Date        time.Time
	Description string
	Amount      int64
	Category    string
	Type        TransactionType
}

// TransactionRequest is a transaction before an ID is assigned.
type TransactionRequest struct {
	Date        time.Time
	Description string
	Amount      int64
	Category    string
	Type        TransactionType
}

type Totals struct {
	Income  int64
	Expense int64
	Saving  int64
	Net     int64
}

type CategorySpend struct {
	Name  string
	Total int64
}
