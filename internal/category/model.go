package category

import (
	"github.com/fatali-fataliyev/finance_ledger/internal/ledger"
)

type CategoryType string

const (
	TypeIncome  CategoryType = "income"
	TypeExpense CategoryType = "expense"
	TypeSaving  CategoryType = "saving"
)

func (t CategoryType) Valid() bool {
	return t == TypeIncome || t == TypeExpense || t == TypeSaving
}

// Category carries the icon as a plain identifier string, resolving it to a
// renderable asset is a presentation concern.
type Category struct {
	ID    string
	Name  string
	Icon  string
	Color string
	Type  CategoryType
}

type CategoryRequest struct {
	Name  string
	Icon  string
	Color string
	Type  CategoryType
}

// FallbackCategoryName is used when a scanned bill suggests a category that
// does not exist in the registry.
const FallbackCategoryName = "Other"

// Defaults is the built-in category set used when no categories are persisted
// yet or the persisted value cannot be parsed.
func Defaults() []Category {
	return []Category{
		{ID: "cat-1", Name: "Housing", Icon: "home", Color: "chart-1", Type: TypeExpense},
		{ID: "cat-2", Name: "Groceries", Icon: "shopping-cart", Color: "chart-2", Type: TypeExpense},
		{ID: "cat-3", Name: "Transportation", Icon: "car", Color: "chart-3", Type: TypeExpense},
		{ID: "cat-4", Name: "Healthcare", Icon: "heart", Color: "chart-4", Type: TypeExpense},
		{ID: "cat-5", Name: "Entertainment", Icon: "film", Color: "chart-5", Type: TypeExpense},
		{ID: "cat-6", Name: "Food", Icon: "utensils", Color: "chart-1", Type: TypeExpense},
		{ID: "cat-7", Name: "Utilities", Icon: "landmark", Color: "chart-2", Type: TypeExpense},
		{ID: "cat-8", Name: "Savings", Icon: "piggy-bank", Color: "chart-3", Type: TypeSaving},
		{ID: "cat-9", Name: "Salary", Icon: "briefcase", Color: "chart-4", Type: TypeIncome},
		{ID: "cat-10", Name: "Other", Icon: "graduation-cap", Color: "chart-5", Type: TypeExpense},
	}
}

// TypeForTransaction maps a transaction type to the category type offered
// while recording a transaction of that kind.
func TypeForTransaction(t ledger.TransactionType) CategoryType {
	switch t {
	case ledger.TypeIncome:
		return TypeIncome
	case ledger.TypeSaving:
		return TypeSaving
	default:
		return TypeExpense
	}
}
