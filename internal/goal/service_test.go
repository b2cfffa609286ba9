package goal

import (
	"strings"
	"testing"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/ledger"
)

// Mocks

type MockStorage struct {
	goals        []Goal
	transactions []ledger.Transaction
	fundingCalls int
}

func (m *MockStorage) GetGoals() ([]Goal, error) {
	out := make([]Goal, len(m.goals))
	copy(out, m.goals)
	return out, nil
}

func (m *MockStorage) SaveGoals(goals []Goal) error {
	m.goals = goals
	return nil
}

func (m *MockStorage) SaveGoalFunding(goals []Goal, txn ledger.Transaction) error {
	m.goals = goals
	m.transactions = append(m.transactions, txn)
	m.fundingCalls++
	return nil
}

// Tests

func TestAddGoal(t *testing.T) {
	tests := []struct {
		name        string
		goalName    string
		target      int64
		wantErr     bool
		expectedMsg string
	}{
		{name: "Success - Valid goal", goalName: "Vacation", target: 100000},
		{name: "Fail - Empty name", goalName: "  ", target: 100, wantErr: true, expectedMsg: "Goal name cannot be empty!"},
		{name: "Fail - Zero target", goalName: "Vacation", target: 0, wantErr: true, expectedMsg: "Goal target amount must be greater than zero!"},
		{name: "Fail - Negative target", goalName: "Vacation", target: -100, wantErr: true},
		{name: "Fail - Name too long", goalName: strings.Repeat("x", MAX_GOAL_NAME_LENGTH+1), target: 100, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := &MockStorage{}
			tr := NewTracker(mockStore)

			g, err := tr.AddGoal(tt.goalName, tt.target)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got goal %+v", g)
				}
				if appErr, ok := err.(appErrors.ErrorResponse); ok && tt.expectedMsg != "" {
					if appErr.Message != tt.expectedMsg {
						t.Errorf("Got message %q, want %q", appErr.Message, tt.expectedMsg)
					}
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			if g.Status != StatusInProgress {
				t.Errorf("New goal status = %q, want %q", g.Status, StatusInProgress)
			}
			if g.CurrentAmount != 0 {
				t.Errorf("New goal must start at zero, got %d", g.CurrentAmount)
			}
		})
	}
}

func TestAddFunds(t *testing.T) {
	mockStore := &MockStorage{goals: []Goal{
		{ID: "g1", Name: "Vacation", TargetAmount: 100000, CurrentAmount: 60000, Status: StatusInProgress},
	}}
	tr := NewTracker(mockStore)

	g, err := tr.AddFunds("g1", 30000)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if g.CurrentAmount != 90000 {
		t.Errorf("CurrentAmount = %d, want 90000", g.CurrentAmount)
	}
	if len(mockStore.transactions) != 1 {
		t.Fatalf("Expected 1 linked transaction, got %d", len(mockStore.transactions))
	}

	txn := mockStore.transactions[0]
	if txn.Type != ledger.TypeSaving {
		t.Errorf("Linked transaction type = %q, want %q", txn.Type, ledger.TypeSaving)
	}
	if txn.Amount != 30000 {
		t.Errorf("Linked transaction amount = %d, want 30000", txn.Amount)
	}
	if txn.Category != FundingCategoryName {
		t.Errorf("Linked transaction category = %q, want %q", txn.Category, FundingCategoryName)
	}
	if txn.Description != "Funds added to goal: Vacation" {
		t.Errorf("Linked transaction description = %q", txn.Description)
	}
}

func TestAddFundsRejectsOverfunding(t *testing.T) {
	mockStore := &MockStorage{goals: []Goal{
		{ID: "g1", Name: "Vacation", TargetAmount: 100000, CurrentAmount: 60000, Status: StatusInProgress},
	}}
	tr := NewTracker(mockStore)

	_, err := tr.AddFunds("g1", 50000)
	if appErrors.CodeOf(err) != appErrors.ErrInsufficientHeadroom {
		t.Fatalf("Expected INSUFFICIENT_HEADROOM, got %v", err)
	}

	// The rejection must leave both the goal and the ledger untouched.
	if mockStore.goals[0].CurrentAmount != 60000 {
		t.Errorf("Goal was modified by a rejected funding: %d", mockStore.goals[0].CurrentAmount)
	}
	if mockStore.fundingCalls != 0 {
		t.Errorf("Storage was written for a rejected funding")
	}

	// Filling exactly to the target is allowed.
	g, err := tr.AddFunds("g1", 40000)
	if err != nil {
		t.Fatalf("Unexpected error funding to the exact target: %v", err)
	}
	if g.CurrentAmount != g.TargetAmount {
		t.Errorf("CurrentAmount = %d, want %d", g.CurrentAmount, g.TargetAmount)
	}
}

func TestRemoveFunds(t *testing.T) {
	mockStore := &MockStorage{goals: []Goal{
		{ID: "g1", Name: "Vacation", TargetAmount: 100000, CurrentAmount: 60000, Status: StatusInProgress},
	}}
	tr := NewTracker(mockStore)

	_, err := tr.RemoveFunds("g1", 70000)
	if appErrors.CodeOf(err) != appErrors.ErrInsufficientFunds {
		t.Fatalf("Expected INSUFFICIENT_FUNDS, got %v", err)
	}
	if mockStore.goals[0].CurrentAmount != 60000 {
		t.Errorf("Goal was modified by a rejected withdrawal")
	}

	g, err := tr.RemoveFunds("g1", 20000)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if g.CurrentAmount != 40000 {
		t.Errorf("CurrentAmount = %d, want 40000", g.CurrentAmount)
	}

	txn := mockStore.transactions[len(mockStore.transactions)-1]
	if txn.Type != ledger.TypeIncome {
		t.Errorf("Withdrawal transaction type = %q, want %q", txn.Type, ledger.TypeIncome)
	}
	if txn.Description != "Funds returned from goal: Vacation" {
		t.Errorf("Withdrawal transaction description = %q", txn.Description)
	}
}

func TestMarkAchieved(t *testing.T) {
	tests := []struct {
		name       string
		goal       Goal
		wantErr    bool
		wantStatus GoalStatus
	}{
		{
			name:       "Success - Target reached",
			goal:       Goal{ID: "g1", Name: "Vacation", TargetAmount: 100000, CurrentAmount: 100000, Status: StatusInProgress},
			wantStatus: StatusAchieved,
		},
		{
			name:    "Fail - Target not reached",
			goal:    Goal{ID: "g1", Name: "Vacation", TargetAmount: 100000, CurrentAmount: 60000, Status: StatusInProgress},
			wantErr: true,
		},
		{
			name:       "No-op - Already achieved",
			goal:       Goal{ID: "g1", Name: "Vacation", TargetAmount: 100000, CurrentAmount: 100000, Status: StatusAchieved},
			wantStatus: StatusAchieved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := &MockStorage{goals: []Goal{tt.goal}}
			tr := NewTracker(mockStore)

			g, err := tr.MarkAchieved("g1")
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got %+v", g)
				}
				if mockStore.goals[0].Status != StatusInProgress {
					t.Errorf("Rejected achievement still changed the status")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			if g.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", g.Status, tt.wantStatus)
			}
		})
	}
}

func TestFundsUnknownGoal(t *testing.T) {
	mockStore := &MockStorage{}
	tr := NewTracker(mockStore)

	if _, err := tr.AddFunds("missing", 100); appErrors.CodeOf(err) != appErrors.ErrNotFound {
		t.Errorf("Expected NOT_FOUND, got %v", err)
	}
	if _, err := tr.AddFunds("missing", 0); appErrors.CodeOf(err) != appErrors.ErrInvalidInput {
		t.Errorf("Expected INVALID_INPUT for zero amount, got %v", err)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name string
		goal Goal
		want int
	}{
		{name: "halfway", goal: Goal{TargetAmount: 100000, CurrentAmount: 50000}, want: 50},
		{name: "complete", goal: Goal{TargetAmount: 100000, CurrentAmount: 100000}, want: 100},
		{name: "empty", goal: Goal{TargetAmount: 100000, CurrentAmount: 0}, want: 0},
		{name: "zero target", goal: Goal{TargetAmount: 0, CurrentAmount: 0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.goal); got != tt.want {
				t.Errorf("Progress = %d, want %d", got, tt.want)
			}
		})
	}
}
