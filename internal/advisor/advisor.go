package advisor

import (
	"context"
	"time"
)

// BillFields is the structured result of reading a bill or receipt. Category
// is a free-text best-effort guess, the caller matches it against the live
// category registry.
type BillFields struct {
	Description string
	Amount      int64
	Date        time.Time
	Category    string
}

// Advisor is the external AI collaborator. Every call is a fallible network
// request, callers degrade to manual entry on failure.
type Advisor interface {
	// SuggestInitialBudget recommends per-category amounts in cents for a new
	// user. Amounts must not sum above income, savings weighted lowest.
	SuggestInitialBudget(ctx context.Context, income int64, region string) (map[string]int64, error)

	// RecommendBudgetAdjustments returns a free-text recommendation per
	// category, keyed by category name.
	RecommendBudgetAdjustments(ctx context.Context, spending map[string]int64, budgets map[string]int64) (map[string]string, error)

	// ExtractBillFields structures the raw OCR text of a bill.
	ExtractBillFields(ctx context.Context, billText string) (BillFields, error)

	// SuggestCategories proposes category names for a transaction description.
	SuggestCategories(ctx context.Context, description string) ([]string, error)
}
