package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/ledger"
	"github.com/fatali-fataliyev/finance_ledger/logging"
)

const defaultGeminiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash-latest:generateContent"

type geminiRequestPart struct {
	Text string `json:"text"`
}

type geminiRequestContent struct {
	Parts []geminiRequestPart `json:"parts"`
	Role  string              `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiRequestContent  `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponsePart struct {
	Text string `json:"text"`
}

type geminiResponseContent struct {
	Parts []geminiResponsePart `json:"parts"`
	Role  string               `json:"role"`
}

type geminiCandidate struct {
	Content      geminiResponseContent `json:"content"`
	FinishReason string                `json:"finishReason"`
}

type geminiAPIResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// GeminiAdvisor talks to the Gemini generateContent endpoint with JSON-only
// responses.
type GeminiAdvisor struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGeminiAdvisor(apiKey string) *GeminiAdvisor {
	return &GeminiAdvisor{
		apiKey:  apiKey,
		baseURL: defaultGeminiURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// NewGeminiAdvisorWithURL is used by tests to point the client at a fake
// endpoint.
func NewGeminiAdvisorWithURL(apiKey string, baseURL string, client *http.Client) *GeminiAdvisor {
	return &GeminiAdvisor{apiKey: apiKey, baseURL: baseURL, client: client}
}

func externalError(format string, args ...any) error {
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrExternalService,
		Message: fmt.Sprintf(format, args...),
	}
}

// generate sends one prompt and returns the text of the first candidate.
func (g *GeminiAdvisor) generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", externalError("AI advisor is not configured, GEMINI_API_KEY is missing.")
	}

	payload := geminiRequest{
		Contents: []geminiRequestContent{
			{Parts: []geminiRequestPart{{Text: prompt}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMIMEType: "application/json",
		},
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal advisor payload: %w", err)
	}

	url := g.baseURL + "?key=" + g.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create advisor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", externalError("AI advisor request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		logging.Logger.Warnf("advisor returned status %s: %s", resp.Status, string(bodyBytes))
		return "", externalError("AI advisor returned status: %s", resp.Status)
	}

	var apiResp geminiAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", externalError("failed to decode AI advisor response: %v", err)
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", externalError("AI advisor response is empty or malformed.")
	}
	return apiResp.Candidates[0].Content.Parts[0].Text, nil
}

func (g *GeminiAdvisor) SuggestInitialBudget(ctx context.Context, income int64, region string) (map[string]int64, error) {
	prompt := fmt.Sprintf(`You are a personal finance advisor helping a new user set up their initial monthly budget.

Based on the user's monthly income of %s and region %q, suggest amounts for the following categories:
Housing, Food, Transportation, Utilities, Healthcare, Entertainment, Savings.

Respond ONLY with a JSON object mapping category names to integer amounts in cents.
Ensure the total does not exceed the user's income and put savings as the lowest priority.`,
		ledger.FormatCents(income), region)

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var suggested map[string]int64
	if err := json.Unmarshal([]byte(text), &suggested); err != nil {
		return nil, externalError("failed to parse suggested budget: %v", err)
	}
	return suggested, nil
}

func (g *GeminiAdvisor) RecommendBudgetAdjustments(ctx context.Context, spending map[string]int64, budgets map[string]int64) (map[string]string, error) {
	spendingJSON, _ := json.Marshal(spending)
	budgetsJSON, _ := json.Marshal(budgets)

	prompt := fmt.Sprintf(`You are a personal finance advisor. Analyze the spending data and current budgets (amounts are integer cents) and recommend budget adjustments per category to avoid overspending.

Spending data: %s
Current budgets: %s

Respond ONLY with a JSON object mapping each category name to a short recommendation text. Be direct and concise.`,
		spendingJSON, budgetsJSON)

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var recommendations map[string]string
	if err := json.Unmarshal([]byte(text), &recommendations); err != nil {
		return nil, externalError("failed to parse recommendations: %v", err)
	}
	return recommendations, nil
}

type billFieldsJSON struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Category    string `json:"category"`
}

func (g *GeminiAdvisor) ExtractBillFields(ctx context.Context, billText string) (BillFields, error) {
	prompt := fmt.Sprintf(`You are an expert at extracting structured data from OCR text of receipts and bills.
Extract the vendor name (for the description), the total amount, the transaction date and a suggested category.

Today's date is %s for reference if the year is not present on the receipt.

OCR text:
%s

Respond ONLY with a JSON object: {"description": string, "amount": decimal string like "12.34", "date": "YYYY-MM-DD", "category": string}.`,
		time.Now().Format("2006-01-02"), billText)

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return BillFields{}, err
	}

	var raw billFieldsJSON
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return BillFields{}, externalError("failed to parse bill fields: %v", err)
	}

	amount, err := ledger.ParseDecimalToCents(raw.Amount)
	if err != nil {
		return BillFields{}, externalError("bill amount is not a valid decimal: %q", raw.Amount)
	}
	date, err := time.Parse("2006-01-02", raw.Date)
	if err != nil {
		date = time.Now().UTC()
	}

	return BillFields{
		Description: strings.TrimSpace(raw.Description),
		Amount:      amount,
		Date:        date,
		Category:    strings.TrimSpace(raw.Category),
	}, nil
}

type suggestedCategoriesJSON struct {
	SuggestedCategories []string `json:"suggestedCategories"`
}

func (g *GeminiAdvisor) SuggestCategories(ctx context.Context, description string) ([]string, error) {
	prompt := fmt.Sprintf(`Suggest categories for the following transaction description:

Transaction description: %q

Respond ONLY with a JSON object: {"suggestedCategories": [string, ...]} listing the categories that best fit.`,
		description)

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var raw suggestedCategoriesJSON
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, externalError("failed to parse category suggestions: %v", err)
	}
	return raw.SuggestedCategories, nil
}
