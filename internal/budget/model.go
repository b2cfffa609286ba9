package budget

type Budget struct {
	ID           string
	CategoryName string
	Amount       int64
}

// BudgetView is a budget joined with its spend-to-date. Spent and Progress are
// derived from the ledger, never stored.
type BudgetView struct {
	ID             string
	CategoryName   string
	Amount         int64
	Spent          int64
	Progress       int
	Recommendation string
}

// Defaults is the built-in budget set for the seeded expense categories,
// amounts in cents.
func Defaults() []Budget {
	return []Budget{
		{ID: "bud-1", CategoryName: "Housing", Amount: 150000},
		{ID: "bud-2", CategoryName: "Groceries", Amount: 40000},
		{ID: "bud-3", CategoryName: "Transportation", Amount: 15000},
		{ID: "bud-4", CategoryName: "Healthcare", Amount: 10000},
		{ID: "bud-5", CategoryName: "Entertainment", Amount: 10000},
		{ID: "bud-6", CategoryName: "Food", Amount: 20000},
		{ID: "bud-7", CategoryName: "Utilities", Amount: 10000},
		{ID: "bud-8", CategoryName: "Savings", Amount: 100000},
		{ID: "bud-9", CategoryName: "Other", Amount: 5000},
	}
}
