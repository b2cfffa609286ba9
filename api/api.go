package api

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/0xcafe-io/iz"
	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/advisor"
	"github.com/fatali-fataliyev/finance_ledger/internal/auth"
	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	"github.com/fatali-fataliyev/finance_ledger/internal/category"
	"github.com/fatali-fataliyev/finance_ledger/internal/goal"
	"github.com/fatali-fataliyev/finance_ledger/internal/ledger"
	"github.com/fatali-fataliyev/finance_ledger/internal/scan"
	"github.com/fatali-fataliyev/finance_ledger/logging"
)

type Api struct {
	Auth       *auth.Service
	Ledger     *ledger.Ledger
	Categories *category.Registry
	Budgets    *budget.Tracker
	Goals      *goal.Tracker
	Advisor    advisor.Advisor
	Scanner    *scan.Scanner
}

func NewApi(authService *auth.Service, ledgerService *ledger.Ledger, categories *category.Registry, budgets *budget.Tracker, goals *goal.Tracker, adv advisor.Advisor, scanner *scan.Scanner) *Api {
	return &Api{
		Auth:       authService,
		Ledger:     ledgerService,
		Categories: categories,
		Budgets:    budgets,
		Goals:      goals,
		Advisor:    adv,
		Scanner:    scanner,
	}
}

func httpStatusFromError(err error) int {
	switch appErrors.CodeOf(err) {
	case appErrors.ErrInvalidInput:
		return 400
	case appErrors.ErrAuth:
		return 401
	case appErrors.ErrNotFound:
		return 404
	case appErrors.ErrConflict, appErrors.ErrCategoryInUse:
		return 409
	case appErrors.ErrInsufficientFunds, appErrors.ErrInsufficientHeadroom:
		return 422
	case appErrors.ErrExternalService:
		return 502
	default:
		return 500
	}
}

// authorize resolves the Authorization header to a user id.
func (api *Api) authorize(r *iz.Request) (string, error) {
	token := r.Header.Get("Authorization")
	if token == "" {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Authorization header is required.",
		}
	}
	return api.Auth.CheckSession(token)
}

// USER & SESSION GATE HANDLERS.

func (api *Api) SaveUserHandler(r *iz.Request) iz.Responder {
	var newUserReq SaveUserRequest
	if err := json.NewDecoder(r.Body).Decode(&newUserReq); err != nil {
		msg := fmt.Sprintf("invalid request body: %s", err.Error())
		return iz.Respond().Status(400).Text(msg)
	}

	newUser := auth.NewUser{
		UserName:      newUserReq.UserName,
		FullName:      newUserReq.FullName,
		PasswordPlain: newUserReq.Password,
	}

	token, err := api.Auth.Register(newUser)
	if err != nil {
		msg := fmt.Sprintf("registration failed: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}

	resp := UserCreatedResponse{
		Message: "Registration Completed",
		Token:   token,
	}
	return iz.Respond().Status(201).JSON(resp)
}

func (api *Api) LoginUserHandler(r *iz.Request) iz.Responder {
	var loginRequest UserLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginRequest); err != nil {
		return iz.Respond().Status(400).Text("invalid request body")
	}

	credentials := auth.UserCredentialsPure{
		UserName:      loginRequest.UserName,
		PasswordPlain: loginRequest.Password,
	}

	response := LoginResponse{}
	token, err := api.Auth.Login(credentials)
	if err != nil {
		response.Message = err.Error()
		return iz.Respond().Status(httpStatusFromError(err)).JSON(response)
	}
	response.Message = "You've logged in successfully!"
	response.Token = token
	return iz.Respond().Status(200).JSON(response)
}

func (api *Api) LogoutUserHandler(r *iz.Request) iz.Responder {
	token := r.Header.Get("Authorization")
	if token == "" {
		return iz.Respond().Status(401).Text("authorization failed: Authorization header is required.")
	}
	if err := api.Auth.Logout(token); err != nil {
		msg := fmt.Sprintf("logout failed: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).Text("Logout successful.")
}

func (api *Api) CheckToken(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		msg := fmt.Sprintf("authorization failed: %s", err.Error())
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).Text("token is valid")
}

// GateStateHandler reports the onboarding state and where the client should
// navigate next. The current route comes from the "route" query parameter.
func (api *Api) GateStateHandler(r *iz.Request) iz.Responder {
	state, err := api.Auth.GateState()
	if err != nil {
		logging.Logger.Errorf("failed to resolve gate state: %v", err)
		return iz.Respond().Status(500).Text("failed to resolve session state")
	}

	resp := GateStateResponse{
		State: string(state),
		Route: auth.NextRoute(state, r.URL.Query().Get("route")),
	}
	return iz.Respond().Status(200).JSON(resp)
}

func (api *Api) CompleteSetupHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	if err := api.Auth.CompleteSetup(); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	return iz.Respond().Status(200).Text("setup completed")
}

func (api *Api) SetLanguageHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	var req SetLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return iz.Respond().Status(400).Text("invalid request body")
	}
	if err := api.Auth.SetLanguage(req.Language); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	return iz.Respond().Status(200).Text("language updated")
}

// TRANSACTION HANDLERS.

func (api *Api) SaveTransactionHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logging.Logger.Errorf("Failed to parse save transaction request: %v", err)
		return iz.Respond().Status(400).Text("invalid request body")
	}

	amount, err := ledger.ParseDecimalToCents(req.Amount)
	if err != nil {
		msg := fmt.Sprintf("invalid transaction amount: %q", req.Amount)
		return iz.Respond().Status(400).Text(msg)
	}

	txn, err := api.Ledger.Add(ledger.TransactionRequest{
		Date:        parseDate(req.Date),
		Description: req.Description,
		Amount:      amount,
		Category:    req.Category,
		Type:        ledger.TransactionType(req.Type),
	})
	if err != nil {
		msg := fmt.Sprintf("failed to create transaction: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(201).JSON(TransactionToHttp(txn))
}

func (api *Api) GetTransactionsHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	transactions, err := api.Ledger.List()
	if err != nil {
		logging.Logger.Errorf("Failed to get transactions: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text("failed to get transactions")
	}

	var resp ListTransactionsResponse
	resp.Transactions = make([]TransactionItem, 0, len(transactions))
	for _, t := range transactions {
		resp.Transactions = append(resp.Transactions, TransactionToHttp(t))
	}
	return iz.Respond().Status(200).JSON(resp)
}

func (api *Api) GetTransactionByIdHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	txn, err := api.Ledger.Get(r.PathValue("id"))
	if err != nil {
		msg := fmt.Sprintf("failed to get transaction by ID: %s", err.Error())
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).JSON(TransactionToHttp(txn))
}

func (api *Api) UpdateTransactionHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return iz.Respond().Status(400).Text("invalid request body")
	}

	amount, err := ledger.ParseDecimalToCents(req.Amount)
	if err != nil {
		msg := fmt.Sprintf("invalid transaction amount: %q", req.Amount)
		return iz.Respond().Status(400).Text(msg)
	}

	err = api.Ledger.Update(ledger.Transaction{
		ID:          r.PathValue("id"),
		Date:        parseDate(req.Date),
		Description: req.Description,
		Amount:      amount,
		Category:    req.Category,
		Type:        ledger.TransactionType(req.Type),
	})
	if err != nil {
		msg := fmt.Sprintf("failed to update transaction: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).Text("transaction updated")
}

func (api *Api) DeleteTransactionHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	if err := api.Ledger.Remove(r.PathValue("id")); err != nil {
		logging.Logger.Errorf("Failed to delete transaction: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text("failed to delete transaction")
	}
	return iz.Respond().Status(200).Text("transaction deleted successfully")
}

func (api *Api) GetTotalsHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	transactions, err := api.Ledger.List()
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text("failed to get transactions")
	}
	return iz.Respond().Status(200).JSON(TotalsToHttp(ledger.CalcTotals(transactions)))
}

func (api *Api) GetSpendingReportHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	transactions, err := api.Ledger.List()
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text("failed to get transactions")
	}
	savingNames, err := api.Categories.SavingCategoryNames()
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text("failed to get categories")
	}

	var resp SpendingReportResponse
	for _, item := range ledger.SpendByCategory(transactions, savingNames) {
		resp.Spending = append(resp.Spending, CategorySpendItem{
			Name:  item.Name,
			Total: ledger.FormatCents(item.Total),
		})
	}
	return iz.Respond().Status(200).JSON(resp)
}

// CATEGORY HANDLERS.

func (api *Api) SaveCategoryHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return iz.Respond().Status(400).Text("invalid request body")
	}

	created, err := api.Categories.Add(category.CategoryRequest{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
		Type:  category.CategoryType(req.Type),
	})
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	return iz.Respond().Status(201).JSON(CategoryToHttp(created))
}

// GetCategoriesHandler lists all categories, or only those offered for a
// transaction type when "transaction_type" is given.
func (api *Api) GetCategoriesHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	var categories []category.Category
	var err error
	if transactionType := r.URL.Query().Get("transaction_type"); transactionType != "" {
		if !ledger.TransactionType(transactionType).Valid() {
			msg := fmt.Sprintf("invalid transaction type: %s", transactionType)
			return iz.Respond().Status(400).Text(msg)
		}
		categories, err = api.Categories.ListByType(ledger.TransactionType(transactionType))
	} else {
		categories, err = api.Categories.List()
	}
	if err != nil {
		logging.Logger.Errorf("Failed to get categories: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text("failed to get categories")
	}

	var resp ListCategoriesResponse
	resp.Categories = make([]CategoryItem, 0, len(categories))
	for _, c := range categories {
		resp.Categories = append(resp.Categories, CategoryToHttp(c))
	}
	return iz.Respond().Status(200).JSON(resp)
}

func (api *Api) DeleteCategoryHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	if err := api.Categories.Remove(r.PathValue("id")); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	return iz.Respond().Status(200).Text("category deleted successfully")
}

// BUDGET HANDLERS.

func (api *Api) GetBudgetsHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	views, err := api.Budgets.Overview()
	if err != nil {
		logging.Logger.Errorf("Failed to get budgets: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text("failed to get budgets")
	}

	var resp ListBudgetsResponse
	resp.Budgets = make([]BudgetItem, 0, len(views))
	for _, v := range views {
		resp.Budgets = append(resp.Budgets, BudgetViewToHttp(v))
	}
	return iz.Respond().Status(200).JSON(resp)
}

func (api *Api) SetBudgetHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	var req SetBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return iz.Respond().Status(400).Text("invalid request body")
	}

	amount, err := ledger.ParseDecimalToCents(req.Amount)
	if err != nil {
		msg := fmt.Sprintf("invalid budget amount: %q", req.Amount)
		return iz.Respond().Status(400).Text(msg)
	}

	if _, err := api.Budgets.SetAmount(req.CategoryName, amount); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	return iz.Respond().Status(200).Text("budget updated")
}

// GetBudgetRecommendationsHandler joins budgets with AI recommendation texts.
// When the advisor is unavailable the budgets are returned without overlays.
func (api *Api) GetBudgetRecommendationsHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	views, err := api.Budgets.Overview()
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text("failed to get budgets")
	}

	spending, amounts, err := api.Budgets.SpendingByCategory()
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text("failed to get spending")
	}

	recommendations, err := api.Advisor.RecommendBudgetAdjustments(r.Context(), spending, amounts)
	if err != nil {
		logging.Logger.Warnf("advisor recommendations unavailable: %v", err)
	} else {
		views = budget.ApplyRecommendations(views, recommendations)
	}

	var resp ListBudgetsResponse
	resp.Budgets = make([]BudgetItem, 0, len(views))
	for _, v := range views {
		resp.Budgets = append(resp.Budgets, BudgetViewToHttp(v))
	}
	return iz.Respond().Status(200).JSON(resp)
}

func (api *Api) SuggestInitialBudgetHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	var req SuggestBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return iz.Respond().Status(400).Text("invalid request body")
	}

	income, err := ledger.ParseDecimalToCents(req.Income)
	if err != nil || income <= 0 {
		msg := fmt.Sprintf("invalid income: %q", req.Income)
		return iz.Respond().Status(400).Text(msg)
	}

	suggested, err := api.Advisor.SuggestInitialBudget(r.Context(), income, req.Region)
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	resp := SuggestBudgetResponse{RecommendedBudget: make(map[string]string, len(suggested))}
	for name, amount := range suggested {
		resp.RecommendedBudget[name] = ledger.FormatCents(amount)
	}
	return iz.Respond().Status(200).JSON(resp)
}

func (api *Api) ApplySuggestedBudgetHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	var req ApplyBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return iz.Respond().Status(400).Text("invalid request body")
	}

	income, err := ledger.ParseDecimalToCents(req.Income)
	if err != nil {
		msg := fmt.Sprintf("invalid income: %q", req.Income)
		return iz.Respond().Status(400).Text(msg)
	}

	suggested := make(map[string]int64, len(req.Budget))
	for name, amountStr := range req.Budget {
		amount, err := ledger.ParseDecimalToCents(amountStr)
		if err != nil {
			msg := fmt.Sprintf("invalid amount for %q: %q", name, amountStr)
			return iz.Respond().Status(400).Text(msg)
		}
		suggested[name] = amount
	}

	if _, err := api.Budgets.ApplySuggestedBudget(income, suggested); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	return iz.Respond().Status(200).Text("budget applied")
}

// GOAL HANDLERS.

func (api *Api) GetGoalsHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	goals, err := api.Goals.List()
	if err != nil {
		logging.Logger.Errorf("Failed to get goals: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text("failed to get goals")
	}

	var resp ListGoalsResponse
	resp.Goals = make([]GoalItem, 0, len(goals))
	for _, g := range goals {
		resp.Goals = append(resp.Goals, GoalToHttp(g))
	}
	return iz.Respond().Status(200).JSON(resp)
}

func (api *Api) SaveGoalHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	var req CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return iz.Respond().Status(400).Text("invalid request body")
	}

	target, err := ledger.ParseDecimalToCents(req.TargetAmount)
	if err != nil {
		msg := fmt.Sprintf("invalid target amount: %q", req.TargetAmount)
		return iz.Respond().Status(400).Text(msg)
	}

	created, err := api.Goals.AddGoal(req.Name, target)
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	return iz.Respond().Status(201).JSON(GoalToHttp(created))
}

func (api *Api) goalFundsAmount(r *iz.Request) (int64, error) {
	var req GoalFundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return 0, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Invalid request body.",
		}
	}
	return ledger.ParseDecimalToCents(req.Amount)
}

func (api *Api) AddGoalFundsHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	amount, err := api.goalFundsAmount(r)
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	updated, err := api.Goals.AddFunds(r.PathValue("id"), amount)
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	return iz.Respond().Status(200).JSON(GoalToHttp(updated))
}

func (api *Api) RemoveGoalFundsHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	amount, err := api.goalFundsAmount(r)
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	updated, err := api.Goals.RemoveFunds(r.PathValue("id"), amount)
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	return iz.Respond().Status(200).JSON(GoalToHttp(updated))
}

func (api *Api) MarkGoalAchievedHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	updated, err := api.Goals.MarkAchieved(r.PathValue("id"))
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	return iz.Respond().Status(200).JSON(GoalToHttp(updated))
}

// AI HANDLERS.

func (api *Api) ScanBillHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	var req ScanBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return iz.Respond().Status(400).Text("invalid request body")
	}

	// Tolerate full data URIs from camera captures.
	imagePart := req.ImageBase64
	if idx := strings.Index(imagePart, ","); idx >= 0 {
		imagePart = imagePart[idx+1:]
	}
	imageData, err := base64.StdEncoding.DecodeString(imagePart)
	if err != nil {
		return iz.Respond().Status(400).Text("image is not valid base64")
	}

	result, err := api.Scanner.ScanBill(r.Context(), imageData)
	if err != nil {
		msg := fmt.Sprintf("failed to process image: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).JSON(ScanResultToHttp(result))
}

func (api *Api) SuggestCategoriesHandler(r *iz.Request) iz.Responder {
	if _, err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	var req SuggestCategoriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return iz.Respond().Status(400).Text("invalid request body")
	}
	if strings.TrimSpace(req.Description) == "" {
		return iz.Respond().Status(400).Text("description is required")
	}

	suggestions, err := api.Advisor.SuggestCategories(r.Context(), req.Description)
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	return iz.Respond().Status(200).JSON(SuggestCategoriesResponse{SuggestedCategories: suggestions})
}
