package scan

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/advisor"
	"github.com/fatali-fataliyev/finance_ledger/internal/category"
	"github.com/fatali-fataliyev/finance_ledger/internal/ledger"
)

// Mocks

type mockOCR struct {
	text string
	err  error
}

func (m *mockOCR) ParseImage(dataURI string) (string, error) {
	return m.text, m.err
}

type mockAdvisor struct {
	fields advisor.BillFields
	err    error
}

func (m *mockAdvisor) SuggestInitialBudget(ctx context.Context, income int64, region string) (map[string]int64, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAdvisor) RecommendBudgetAdjustments(ctx context.Context, spending map[string]int64, budgets map[string]int64) (map[string]string, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAdvisor) ExtractBillFields(ctx context.Context, billText string) (advisor.BillFields, error) {
	return m.fields, m.err
}

func (m *mockAdvisor) SuggestCategories(ctx context.Context, description string) ([]string, error) {
	return nil, errors.New("not implemented")
}

type mockCategoryStorage struct {
	categories []category.Category
}

func (m *mockCategoryStorage) GetCategories() ([]category.Category, error) {
	return m.categories, nil
}

func (m *mockCategoryStorage) SaveCategories(categories []category.Category) error {
	m.categories = categories
	return nil
}

func (m *mockCategoryStorage) GetTransactions() ([]ledger.Transaction, error) {
	return nil, nil
}

func testRegistry() *category.Registry {
	r := category.NewRegistry(&mockCategoryStorage{categories: category.Defaults()})
	return &r
}

// testImage renders a small but decodable PNG.
func testImage(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

// Tests

func TestScanBill(t *testing.T) {
	billDate := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	mockOcr := &mockOCR{text: "SuperMart\nTOTAL 42.50"}
	mockAdv := &mockAdvisor{fields: advisor.BillFields{
		Description: "SuperMart",
		Amount:      4250,
		Date:        billDate,
		Category:    "groceries",
	}}

	s := NewScanner(mockOcr, mockAdv, testRegistry())
	result, err := s.ScanBill(context.Background(), testImage(t))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Description != "SuperMart" {
		t.Errorf("Description = %q, want SuperMart", result.Description)
	}
	if result.Amount != 4250 {
		t.Errorf("Amount = %d, want 4250", result.Amount)
	}
	if !result.Date.Equal(billDate) {
		t.Errorf("Date = %v, want %v", result.Date, billDate)
	}
	// The advisor's lowercase guess resolves to the registry entry.
	if result.Category.Name != "Groceries" {
		t.Errorf("Category = %q, want Groceries", result.Category.Name)
	}
}

func TestScanBillFallsBackToRawText(t *testing.T) {
	mockOcr := &mockOCR{text: "SuperMart\nItem 3.20\nItem 5.00\nTOTAL 42.50"}
	mockAdv := &mockAdvisor{err: errors.New("advisor down")}

	s := NewScanner(mockOcr, mockAdv, testRegistry())
	result, err := s.ScanBill(context.Background(), testImage(t))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// The largest decimal on the receipt wins.
	if result.Amount != 4250 {
		t.Errorf("Amount = %d, want 4250", result.Amount)
	}
	if result.Description != "SuperMart" {
		t.Errorf("Description = %q, want first non-empty line", result.Description)
	}
	if result.Category.Name != category.FallbackCategoryName {
		t.Errorf("Category = %q, want %q", result.Category.Name, category.FallbackCategoryName)
	}
}

func TestScanBillErrors(t *testing.T) {
	tests := []struct {
		name     string
		image    []byte
		ocr      *mockOCR
		adv      *mockAdvisor
		wantCode string
	}{
		{
			name:     "empty image",
			image:    nil,
			ocr:      &mockOCR{},
			adv:      &mockAdvisor{},
			wantCode: appErrors.ErrInvalidInput,
		},
		{
			name:     "corrupt image",
			image:    []byte("definitely not an image"),
			ocr:      &mockOCR{},
			adv:      &mockAdvisor{},
			wantCode: appErrors.ErrInvalidInput,
		},
		{
			name:     "ocr failure",
			ocr:      &mockOCR{err: appErrors.ErrorResponse{Code: appErrors.ErrExternalService, Message: "OCR request failed"}},
			adv:      &mockAdvisor{},
			wantCode: appErrors.ErrExternalService,
		},
		{
			name:     "blank ocr text",
			ocr:      &mockOCR{text: "   \n  "},
			adv:      &mockAdvisor{},
			wantCode: appErrors.ErrExternalService,
		},
		{
			name:     "no amount anywhere",
			ocr:      &mockOCR{text: "SuperMart thank you for shopping"},
			adv:      &mockAdvisor{err: errors.New("advisor down")},
			wantCode: appErrors.ErrExternalService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imageData := tt.image
			if tt.name != "empty image" && tt.name != "corrupt image" {
				imageData = testImage(t)
			}

			s := NewScanner(tt.ocr, tt.adv, testRegistry())
			_, err := s.ScanBill(context.Background(), imageData)
			if appErrors.CodeOf(err) != tt.wantCode {
				t.Errorf("Expected %s error, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestFieldsFromRawText(t *testing.T) {
	fields, err := fieldsFromRawText("\n\nCorner Cafe\nCoffee 4,80\nCake 3.20\n")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if fields.Amount != 480 {
		t.Errorf("Amount = %d, want 480", fields.Amount)
	}
	if fields.Description != "Corner Cafe" {
		t.Errorf("Description = %q, want Corner Cafe", fields.Description)
	}
}
