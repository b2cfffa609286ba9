package api

import (
	"time"

	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	"github.com/fatali-fataliyev/finance_ledger/internal/category"
	"github.com/fatali-fataliyev/finance_ledger/internal/goal"
	"github.com/fatali-fataliyev/finance_ledger/internal/ledger"
	"github.com/fatali-fataliyev/finance_ledger/internal/scan"
)

// All amounts cross this boundary as major-unit decimal strings ("12.34"),
// the services only ever see integer cents.

// REQUESTS START:

type SaveUserRequest struct {
	UserName string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type UserLoginRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

type CreateTransactionRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Type        string `json:"type"`
}

type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

type SetBudgetRequest struct {
	CategoryName string `json:"category_name"`
	Amount       string `json:"amount"`
}

type CreateGoalRequest struct {
	Name         string `json:"name"`
	TargetAmount string `json:"target_amount"`
}

type GoalFundsRequest struct {
	Amount string `json:"amount"`
}

type ScanBillRequest struct {
	ImageBase64 string `json:"image_base64"`
}

type SuggestBudgetRequest struct {
	Income string `json:"income"`
	Region string `json:"region"`
}

type ApplyBudgetRequest struct {
	Income string            `json:"income"`
	Budget map[string]string `json:"budget"`
}

type SuggestCategoriesRequest struct {
	Description string `json:"description"`
}

type SetLanguageRequest struct {
	Language string `json:"language"`
}

// REQUESTS END:

// RESPONSES:

type UserCreatedResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

type GateStateResponse struct {
	State string `json:"state"`
	Route string `json:"route"`
}

type TransactionItem struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Type        string `json:"type"`
}

type ListTransactionsResponse struct {
	Transactions []TransactionItem `json:"transactions"`
}

type TotalsResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Saving  string `json:"saving"`
	Net     string `json:"net"`
}

type CategorySpendItem struct {
	Name  string `json:"name"`
	Total string `json:"total"`
}

type SpendingReportResponse struct {
	Spending []CategorySpendItem `json:"spending"`
}

type CategoryItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

type ListCategoriesResponse struct {
	Categories []CategoryItem `json:"categories"`
}

type BudgetItem struct {
	ID             string `json:"id"`
	CategoryName   string `json:"category_name"`
	Amount         string `json:"amount"`
	Spent          string `json:"spent"`
	Progress       int    `json:"progress"`
	Recommendation string `json:"recommendation,omitempty"`
}

type ListBudgetsResponse struct {
	Budgets []BudgetItem `json:"budgets"`
}

type GoalItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
	Progress      int    `json:"progress"`
	Status        string `json:"status"`
}

type ListGoalsResponse struct {
	Goals []GoalItem `json:"goals"`
}

type ScanBillResponse struct {
	Description string       `json:"description"`
	Amount      string       `json:"amount"`
	Date        string       `json:"date"`
	Category    CategoryItem `json:"category"`
}

type SuggestBudgetResponse struct {
	RecommendedBudget map[string]string `json:"recommended_budget"`
}

type SuggestCategoriesResponse struct {
	SuggestedCategories []string `json:"suggested_categories"`
}

// CONVERTERS:

func TransactionToHttp(t ledger.Transaction) TransactionItem {
	return TransactionItem{
		ID:          t.ID,
		Date:        t.Date.Format(time.RFC3339),
		Description: t.Description,
		Amount:      ledger.FormatCents(t.Amount),
		Category:    t.Category,
		Type:        string(t.Type),
	}
}

func TotalsToHttp(t ledger.Totals) TotalsResponse {
	return TotalsResponse{
		Income:  ledger.FormatCents(t.Income),
		Expense: ledger.FormatCents(t.Expense),
		Saving:  ledger.FormatCents(t.Saving),
		Net:     ledger.FormatCents(t.Net),
	}
}

func CategoryToHttp(c category.Category) CategoryItem {
	return CategoryItem{
		ID:    c.ID,
		Name:  c.Name,
		Icon:  c.Icon,
		Color: c.Color,
		Type:  string(c.Type),
	}
}

func BudgetViewToHttp(v budget.BudgetView) BudgetItem {
	return BudgetItem{
		ID:             v.ID,
		CategoryName:   v.CategoryName,
		Amount:         ledger.FormatCents(v.Amount),
		Spent:          ledger.FormatCents(v.Spent),
		Progress:       v.Progress,
		Recommendation: v.Recommendation,
	}
}

func GoalToHttp(g goal.Goal) GoalItem {
	return GoalItem{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  ledger.FormatCents(g.TargetAmount),
		CurrentAmount: ledger.FormatCents(g.CurrentAmount),
		Progress:      goal.Progress(g),
		Status:        string(g.Status),
	}
}

func ScanResultToHttp(r scan.ScanResult) ScanBillResponse {
	return ScanBillResponse{
		Description: r.Description,
		Amount:      ledger.FormatCents(r.Amount),
		Date:        r.Date.Format("2006-01-02"),
		Category:    CategoryToHttp(r.Category),
	}
}

// parseDate accepts RFC3339 timestamps and plain dates, defaulting to now.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Now().UTC()
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d
	}
	return time.Now().UTC()
}
