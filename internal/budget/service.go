package budget

import (
	"fmt"
	"strings"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/ledger"
	"github.com/google/uuid"
)

const MAX_BUDGET_AMOUNT_LIMIT = int64(999999999999999)

type Storage interface {
	GetBudgets() ([]Budget, error)
	SaveBudgets(budgets []Budget) error
	GetTransactions() ([]ledger.Transaction, error)
}

type Tracker struct {
	storage Storage
}

func NewTracker(s Storage) Tracker {
	return Tracker{storage: s}
}

// WithSpending joins budgets with their expense spend-to-date. Pure function
// of its inputs. A zero budget amount yields progress 0.
func WithSpending(budgets []Budget, transactions []ledger.Transaction) []BudgetView {
	spentByCategory := make(map[string]int64)
	for _, t := range transactions {
		if t.Type == ledger.TypeExpense {
			spentByCategory[strings.ToLower(t.Category)] += t.Amount
		}
	}

	views := make([]BudgetView, 0, len(budgets))
	for _, b := range budgets {
		spent := spentByCategory[strings.ToLower(b.CategoryName)]
		var progress int
		if b.Amount > 0 {
			progress = int(spent * 100 / b.Amount)
		}
		views = append(views, BudgetView{
			ID:           b.ID,
			CategoryName: b.CategoryName,
			Amount:       b.Amount,
			Spent:        spent,
			Progress:     progress,
		})
	}
	return views
}

// ApplyRecommendations overlays free-text recommendation strings onto the
// matching budget rows. Stored amounts are never altered.
func ApplyRecommendations(views []BudgetView, recommendations map[string]string) []BudgetView {
	for i, v := range views {
		for name, text := range recommendations {
			if strings.EqualFold(v.CategoryName, name) {
				views[i].Recommendation = text
				break
			}
		}
	}
	return views
}

// SetAmount updates the budget of the given category, creating it when
// missing. One budget per category is enforced.
func (tr *Tracker) SetAmount(categoryName string, amount int64) (Budget, error) {
	categoryName = strings.TrimSpace(categoryName)
	if categoryName == "" {
		return Budget{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Category name cannot be empty!",
		}
	}
	if amount < 0 {
		return Budget{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Budget amount cannot be negative!",
		}
	}
	if amount > MAX_BUDGET_AMOUNT_LIMIT {
		return Budget{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Maximum allowed budget amount is: %d", MAX_BUDGET_AMOUNT_LIMIT),
		}
	}

	budgets, err := tr.storage.GetBudgets()
	if err != nil {
		return Budget{}, fmt.Errorf("failed to load budgets: %w", err)
	}

	for i, b := range budgets {
		if strings.EqualFold(b.CategoryName, categoryName) {
			budgets[i].Amount = amount
			if err := tr.storage.SaveBudgets(budgets); err != nil {
				return Budget{}, fmt.Errorf("failed to save budgets: %w", err)
			}
			return budgets[i], nil
		}
	}

	budget := Budget{
		ID:           uuid.New().String(),
		CategoryName: categoryName,
		Amount:       amount,
	}
	budgets = append(budgets, budget)
	if err := tr.storage.SaveBudgets(budgets); err != nil {
		return Budget{}, fmt.Errorf("failed to save budgets: %w", err)
	}
	return budget, nil
}

// Overview loads budgets and transactions and joins them.
func (tr *Tracker) Overview() ([]BudgetView, error) {
	budgets, err := tr.storage.GetBudgets()
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	transactions, err := tr.storage.GetTransactions()
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return WithSpending(budgets, transactions), nil
}

// SpendingByCategory returns the expense totals keyed by budget category name,
// the shape the advisor expects.
func (tr *Tracker) SpendingByCategory() (map[string]int64, map[string]int64, error) {
	views, err := tr.Overview()
	if err != nil {
		return nil, nil, err
	}
	spending := make(map[string]int64, len(views))
	amounts := make(map[string]int64, len(views))
	for _, v := range views {
		spending[v.CategoryName] = v.Spent
		amounts[v.CategoryName] = v.Amount
	}
	return spending, amounts, nil
}

// ApplySuggestedBudget replaces all budgets with a suggested allocation.
// The allocation is rejected when it sums above the stated income.
func (tr *Tracker) ApplySuggestedBudget(income int64, suggested map[string]int64) ([]Budget, error) {
	if income <= 0 {
		return nil, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Income must be greater than zero!",
		}
	}

	var total int64
	for name, amount := range suggested {
		if strings.TrimSpace(name) == "" || amount < 0 {
			return nil, appErrors.ErrorResponse{
				Code:    appErrors.ErrExternalService,
				Message: "Suggested budget contains an invalid entry.",
			}
		}
		total += amount
	}
	if total > income {
		return nil, appErrors.ErrorResponse{
			Code:    appErrors.ErrExternalService,
			Message: fmt.Sprintf("Suggested budget (%d) exceeds income (%d).", total, income),
		}
	}

	budgets := make([]Budget, 0, len(suggested))
	for name, amount := range suggested {
		budgets = append(budgets, Budget{
			ID:           uuid.New().String(),
			CategoryName: name,
			Amount:       amount,
		})
	}

	if err := tr.storage.SaveBudgets(budgets); err != nil {
		return nil, fmt.Errorf("failed to save budgets: %w", err)
	}
	return budgets, nil
}
