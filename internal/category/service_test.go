package category

import (
	"testing"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/ledger"
)

// Mocks

type MockStorage struct {
	categories   []Category
	transactions []ledger.Transaction
	saveCount    int
}

func (m *MockStorage) GetCategories() ([]Category, error) {
	out := make([]Category, len(m.categories))
	copy(out, m.categories)
	return out, nil
}

func (m *MockStorage) SaveCategories(categories []Category) error {
	m.categories = categories
	m.saveCount++
	return nil
}

func (m *MockStorage) GetTransactions() ([]ledger.Transaction, error) {
	return m.transactions, nil
}

func seededStorage() *MockStorage {
	return &MockStorage{categories: Defaults()}
}

// Tests

func TestAddCategory(t *testing.T) {
	tests := []struct {
		name        string
		input       CategoryRequest
		wantErr     string
		expectedMsg string
	}{
		{
			name:  "Success - New category",
			input: CategoryRequest{Name: "Pets", Icon: "paw", Color: "#8B5E3C", Type: TypeExpense},
		},
		{
			name:        "Fail - Empty name",
			input:       CategoryRequest{Name: "  ", Type: TypeExpense},
			wantErr:     appErrors.ErrInvalidInput,
			expectedMsg: "Category name cannot be empty!",
		},
		{
			name:    "Fail - Invalid type",
			input:   CategoryRequest{Name: "Pets", Type: "misc"},
			wantErr: appErrors.ErrInvalidInput,
		},
		{
			name:    "Fail - Duplicate name",
			input:   CategoryRequest{Name: "Food", Type: TypeExpense},
			wantErr: appErrors.ErrConflict,
		},
		{
			name:    "Fail - Duplicate name different case",
			input:   CategoryRequest{Name: "fOOd", Type: TypeExpense},
			wantErr: appErrors.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := seededStorage()
			r := NewRegistry(mockStore)

			c, err := r.Add(tt.input)
			if tt.wantErr != "" {
				if appErrors.CodeOf(err) != tt.wantErr {
					t.Errorf("Expected %s error, got %v", tt.wantErr, err)
				}
				if appErr, ok := err.(appErrors.ErrorResponse); ok && tt.expectedMsg != "" {
					if appErr.Message != tt.expectedMsg {
						t.Errorf("Got message %q, want %q", appErr.Message, tt.expectedMsg)
					}
				}
				if mockStore.saveCount != 0 {
					t.Errorf("Rejected category was persisted")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			if c.ID == "" {
				t.Errorf("Expected a generated id")
			}
		})
	}
}

func TestRemoveCategory(t *testing.T) {
	mockStore := seededStorage()
	r := NewRegistry(mockStore)

	var food Category
	for _, c := range mockStore.categories {
		if c.Name == "Food" {
			food = c
		}
	}

	// A category referenced by a transaction cannot be removed, regardless of
	// name casing.
	mockStore.transactions = []ledger.Transaction{
		{ID: "t1", Amount: 100, Category: "fOOD", Type: ledger.TypeExpense},
	}
	before := len(mockStore.categories)
	err := r.Remove(food.ID)
	if appErrors.CodeOf(err) != appErrors.ErrCategoryInUse {
		t.Fatalf("Expected CATEGORY_IN_USE, got %v", err)
	}
	if len(mockStore.categories) != before {
		t.Errorf("Failed removal still changed the registry")
	}

	// Once no transaction references it, removal succeeds.
	mockStore.transactions = nil
	if err := r.Remove(food.ID); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(mockStore.categories) != before-1 {
		t.Errorf("Category was not removed")
	}

	if err := r.Remove("missing"); appErrors.CodeOf(err) != appErrors.ErrNotFound {
		t.Errorf("Expected NOT_FOUND, got %v", err)
	}
}

func TestListByType(t *testing.T) {
	mockStore := seededStorage()
	r := NewRegistry(mockStore)

	tests := []struct {
		name            string
		transactionType ledger.TransactionType
		wantType        CategoryType
	}{
		{name: "expense categories", transactionType: ledger.TypeExpense, wantType: TypeExpense},
		{name: "income categories", transactionType: ledger.TypeIncome, wantType: TypeIncome},
		{name: "saving categories", transactionType: ledger.TypeSaving, wantType: TypeSaving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories, err := r.ListByType(tt.transactionType)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(categories) == 0 {
				t.Fatalf("Expected seeded categories for type %q", tt.wantType)
			}
			for _, c := range categories {
				if c.Type != tt.wantType {
					t.Errorf("Category %q has type %q, want %q", c.Name, c.Type, tt.wantType)
				}
			}
		})
	}
}

func TestSavingCategoryNames(t *testing.T) {
	mockStore := seededStorage()
	r := NewRegistry(mockStore)

	names, err := r.SavingCategoryNames()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	found := false
	for _, n := range names {
		if n == "Savings" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected the seeded Savings category in %v", names)
	}
}

func TestMatchOrFallback(t *testing.T) {
	mockStore := seededStorage()
	r := NewRegistry(mockStore)

	tests := []struct {
		name  string
		guess string
		want  string
	}{
		{name: "exact match", guess: "Food", want: "Food"},
		{name: "case insensitive match", guess: "fOOd", want: "Food"},
		{name: "trimmed match", guess: " Food ", want: "Food"},
		{name: "unknown falls back", guess: "Spaceships", want: FallbackCategoryName},
		{name: "empty falls back", guess: "", want: FallbackCategoryName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := r.MatchOrFallback(tt.guess)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if c.Name != tt.want {
				t.Errorf("MatchOrFallback(%q) = %q, want %q", tt.guess, c.Name, tt.want)
			}
		})
	}
}

func TestMatchOrFallbackWithoutFallback(t *testing.T) {
	mockStore := &MockStorage{categories: []Category{
		{ID: "c1", Name: "Food", Type: TypeExpense},
	}}
	r := NewRegistry(mockStore)

	_, err := r.MatchOrFallback("Spaceships")
	if appErrors.CodeOf(err) != appErrors.ErrNotFound {
		t.Errorf("Expected NOT_FOUND without a fallback category, got %v", err)
	}
}
