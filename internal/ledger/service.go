package ledger

import (
	"fmt"
	"sort"
	"strings"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/google/uuid"
)

const (
	MAX_TRANSACTION_AMOUNT_LIMIT         = int64(999999999999999)
	MAX_TRANSACTION_DESCRIPTION_LENGTH   = 1000
	MAX_TRANSACTION_CATEGORY_NAME_LENGTH = 255
)

// Storage reads and writes the full transaction collection. Every mutation
// persists the whole updated snapshot, readers always see the last committed
// write.
type Storage interface {
	GetTransactions() ([]Transaction, error)
	SaveTransactions(transactions []Transaction) error
}

type Ledger struct {
	storage Storage
}

func NewLedger(s Storage) Ledger {
	return Ledger{storage: s}
}

func validateRequest(req TransactionRequest) error {
	if req.Amount < 0 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Transaction amount cannot be negative!",
		}
	}
	if req.Amount > MAX_TRANSACTION_AMOUNT_LIMIT {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Maximum allowed amount per transaction is: %d", MAX_TRANSACTION_AMOUNT_LIMIT),
		}
	}
	if len(req.Description) > MAX_TRANSACTION_DESCRIPTION_LENGTH {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Description so long, maximum allowed length is: %d", MAX_TRANSACTION_DESCRIPTION_LENGTH),
		}
	}
	if len(req.Category) > MAX_TRANSACTION_CATEGORY_NAME_LENGTH {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Category name so long.",
		}
	}
	if !req.Type.Valid() {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Invalid transaction type: %s", req.Type),
		}
	}
	return nil
}

// Add assigns a unique id, inserts and persists the re-sorted collection.
func (l *Ledger) Add(req TransactionRequest) (Transaction, error) {
	if err := validateRequest(req); err != nil {
		return Transaction{}, err
	}

	transactions, err := l.storage.GetTransactions()
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	txn := Transaction{
		ID:          uuid.New().String(),
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Type:        req.Type,
	}

	transactions = append(transactions, txn)
	SortByDateDesc(transactions)

	if err := l.storage.SaveTransactions(transactions); err != nil {
		return Transaction{}, fmt.Errorf("failed to save transaction: %w", err)
	}
	return txn, nil
}

// Update replaces the entry matching txn.ID by full replacement, then re-sorts.
func (l *Ledger) Update(txn Transaction) error {
	if err := validateRequest(TransactionRequest{
		Date:        txn.Date,
		Description: txn.Description,
		Amount:      txn.Amount,
		Category:    txn.Category,
		Type:        txn.Type,
	}); err != nil {
		return err
	}

	transactions, err := l.storage.GetTransactions()
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	found := false
	for i, t := range transactions {
		if t.ID == txn.ID {
			transactions[i] = txn
			found = true
			break
		}
	}
	if !found {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: fmt.Sprintf("Transaction not found: %s", txn.ID),
		}
	}

	SortByDateDesc(transactions)
	if err := l.storage.SaveTransactions(transactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	return nil
}

// Remove deletes the entry matching id. Removing an unknown id is a no-op.
func (l *Ledger) Remove(id string) error {
	transactions, err := l.storage.GetTransactions()
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	for i, t := range transactions {
		if t.ID == id {
			transactions = append(transactions[:i], transactions[i+1:]...)
			if err := l.storage.SaveTransactions(transactions); err != nil {
				return fmt.Errorf("failed to save transactions: %w", err)
			}
			return nil
		}
	}
	return nil
}

func (l *Ledger) List() ([]Transaction, error) {
	transactions, err := l.storage.GetTransactions()
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	SortByDateDesc(transactions)
	return transactions, nil
}

func (l *Ledger) Get(id string) (Transaction, error) {
	transactions, err := l.storage.GetTransactions()
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	for _, t := range transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return Transaction{}, appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: fmt.Sprintf("Transaction not found: %s", id),
	}
}

// SortByDateDesc orders transactions most recent first.
func SortByDateDesc(transactions []Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
}

// CalcTotals sums the given transactions per type. Net is income minus
// expenses minus savings.
func CalcTotals(transactions []Transaction) Totals {
	var totals Totals
	for _, t := range transactions {
		switch t.Type {
		case TypeIncome:
			totals.Income += t.Amount
		case TypeExpense:
			totals.Expense += t.Amount
		case TypeSaving:
			totals.Saving += t.Amount
		}
	}
	totals.Net = totals.Income - totals.Expense - totals.Saving
	return totals
}

// SpendByCategory aggregates expense transactions per category name, skipping
// the given saving category names, sorted by total descending.
func SpendByCategory(transactions []Transaction, savingCategories []string) []CategorySpend {
	excluded := make(map[string]bool, len(savingCategories))
	for _, name := range savingCategories {
		excluded[strings.ToLower(name)] = true
	}

	byName := make(map[string]int64)
	for _, t := range transactions {
		if t.Type != TypeExpense {
			continue
		}
		if excluded[strings.ToLower(t.Category)] {
			continue
		}
		byName[t.Category] += t.Amount
	}

	result := make([]CategorySpend, 0, len(byName))
	for name, total := range byName {
		result = append(result, CategorySpend{Name: name, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total == result[j].Total {
			return result[i].Name < result[j].Name
		}
		return result[i].Total > result[j].Total
	})
	return result
}
