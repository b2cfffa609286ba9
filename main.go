package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/0xcafe-io/iz"
	"github.com/fatali-fataliyev/finance_ledger/api"
	"github.com/fatali-fataliyev/finance_ledger/internal/advisor"
	"github.com/fatali-fataliyev/finance_ledger/internal/auth"
	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	"github.com/fatali-fataliyev/finance_ledger/internal/category"
	"github.com/fatali-fataliyev/finance_ledger/internal/goal"
	"github.com/fatali-fataliyev/finance_ledger/internal/ledger"
	"github.com/fatali-fataliyev/finance_ledger/internal/scan"
	"github.com/fatali-fataliyev/finance_ledger/internal/storage"
	"github.com/fatali-fataliyev/finance_ledger/logging"
	"github.com/rs/cors"
)

var corsConf = cors.New(cors.Options{
	AllowedOrigins:   []string{"*"},
	AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	AllowedHeaders:   []string{"Authorization", "Content-Type"},
	AllowCredentials: true,
})

// Storage is the union of what every service needs from a backend.
type Storage interface {
	ledger.Storage
	category.Storage
	budget.Storage
	goal.Storage
	auth.Storage
	GetStorageType() string
}

func openStorage() (Storage, error) {
	backend := os.Getenv("STORAGE_BACKEND")
	if backend == "" && (os.Getenv("FULL_DSN") != "" || os.Getenv("DB_HOST") != "") {
		backend = "mysql"
	}

	if backend == "mysql" {
		db, err := storage.Init()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return storage.NewMySQLStorage(db), nil
	}
	return storage.NewLocalStore(os.Getenv("DATA_DIR"))
}

func main() {
	if err := logging.Init("debug"); err != nil {
		fmt.Println("failed to initialize logger: %w", err)
		return
	}

	logging.Logger.Info("application starting...")

	storageInstance, err := openStorage()
	if err != nil {
		logging.Logger.Errorf("failed to initialize storage: %v", err)
		return
	}
	logging.Logger.Infof("storage backend: %s", storageInstance.GetStorageType())

	ledgerService := ledger.NewLedger(storageInstance)
	categoryRegistry := category.NewRegistry(storageInstance)
	budgetTracker := budget.NewTracker(storageInstance)
	goalTracker := goal.NewTracker(storageInstance)
	authService := auth.NewService(storageInstance)

	geminiAdvisor := advisor.NewGeminiAdvisor(os.Getenv("GEMINI_API_KEY"))
	ocrClient := scan.NewOCRSpaceClient(os.Getenv("OCR_API_KEY"))
	scanner := scan.NewScanner(ocrClient, geminiAdvisor, &categoryRegistry)

	server := http.NewServeMux()
	api := api.NewApi(&authService, &ledgerService, &categoryRegistry, &budgetTracker, &goalTracker, geminiAdvisor, &scanner)

	// USER & GATE ENDPOINTS.
	server.HandleFunc("POST /api/register", iz.Bind(api.SaveUserHandler))            // Create User
	server.HandleFunc("POST /api/login", iz.Bind(api.LoginUserHandler))              // Login User
	server.HandleFunc("GET /api/logout", iz.Bind(api.LogoutUserHandler))             // Logout User
	server.HandleFunc("GET /api/check-token", iz.Bind(api.CheckToken))               // Check User Token
	server.HandleFunc("GET /api/gate-state", iz.Bind(api.GateStateHandler))          // Onboarding state + next route
	server.HandleFunc("POST /api/complete-setup", iz.Bind(api.CompleteSetupHandler)) // Mark budget setup done
	server.HandleFunc("POST /api/language", iz.Bind(api.SetLanguageHandler))         // Change UI language

	// TRANSACTION ENDPOINTS.
	server.HandleFunc("POST /api/transaction", iz.Bind(api.SaveTransactionHandler))          // Create Transaction
	server.HandleFunc("GET /api/transaction", iz.Bind(api.GetTransactionsHandler))           // Get Transactions
	server.HandleFunc("GET /api/transaction/{id}", iz.Bind(api.GetTransactionByIdHandler))   // Get Transaction by ID
	server.HandleFunc("PUT /api/transaction/{id}", iz.Bind(api.UpdateTransactionHandler))    // Update Transaction
	server.HandleFunc("DELETE /api/transaction/{id}", iz.Bind(api.DeleteTransactionHandler)) // Delete Transaction
	server.HandleFunc("GET /api/totals", iz.Bind(api.GetTotalsHandler))                      // Income/expense/saving totals
	server.HandleFunc("GET /api/spending-report", iz.Bind(api.GetSpendingReportHandler))     // Expense spend per category

	// CATEGORY ENDPOINTS.
	server.HandleFunc("POST /api/category", iz.Bind(api.SaveCategoryHandler))          // Create Category
	server.HandleFunc("GET /api/category", iz.Bind(api.GetCategoriesHandler))          // Get Categories
	server.HandleFunc("DELETE /api/category/{id}", iz.Bind(api.DeleteCategoryHandler)) // Delete Category

	// BUDGET ENDPOINTS.
	server.HandleFunc("GET /api/budget", iz.Bind(api.GetBudgetsHandler))                               // Get Budgets with spending
	server.HandleFunc("POST /api/budget", iz.Bind(api.SetBudgetHandler))                               // Set Budget for category
	server.HandleFunc("GET /api/budget/recommendations", iz.Bind(api.GetBudgetRecommendationsHandler)) // Budgets with AI notes
	server.HandleFunc("POST /api/budget/suggest", iz.Bind(api.SuggestInitialBudgetHandler))            // AI initial budget
	server.HandleFunc("POST /api/budget/apply", iz.Bind(api.ApplySuggestedBudgetHandler))              // Apply suggested budget

	// GOAL ENDPOINTS.
	server.HandleFunc("GET /api/goal", iz.Bind(api.GetGoalsHandler))                        // Get Goals
	server.HandleFunc("POST /api/goal", iz.Bind(api.SaveGoalHandler))                       // Create Goal
	server.HandleFunc("POST /api/goal/{id}/funds", iz.Bind(api.AddGoalFundsHandler))        // Move money into goal
	server.HandleFunc("DELETE /api/goal/{id}/funds", iz.Bind(api.RemoveGoalFundsHandler))   // Move money out of goal
	server.HandleFunc("POST /api/goal/{id}/achieved", iz.Bind(api.MarkGoalAchievedHandler)) // Mark Goal achieved

	// AI ENDPOINTS.
	server.Handle("POST /api/scan-bill", iz.Bind(api.ScanBillHandler))                       // Take bill image, return transaction fields
	server.HandleFunc("POST /api/suggest-categories", iz.Bind(api.SuggestCategoriesHandler)) // AI category suggestions

	port := os.Getenv("APP_PORT")
	if port == "" {
		logging.Logger.Info("APP_PORT environment variable not set, using default port 8080")
		port = "8080"
	}
	fmt.Println("Starting server on port: ", port)
	handlerwithCors := corsConf.Handler(server)
	err = http.ListenAndServe(":"+port, handlerwithCors) // Start the server
	if err != nil {
		logging.Logger.Errorf("failed to start server: %v", err)
		return
	}
}
