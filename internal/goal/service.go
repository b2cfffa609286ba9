package goal

import (
	"fmt"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/ledger"
	"github.com/google/uuid"
)

const (
	MAX_GOAL_NAME_LENGTH   = 255
	MAX_GOAL_TARGET_AMOUNT = int64(999999999999999)
	FundingCategoryName    = "Savings"
)

type Storage interface {
	GetGoals() ([]Goal, error)
	SaveGoals(goals []Goal) error
	// SaveGoalFunding persists the updated goal collection together with the
	// linked ledger transaction. Both are committed or neither is.
	SaveGoalFunding(goals []Goal, txn ledger.Transaction) error
}

type Tracker struct {
	storage Storage
}

func NewTracker(s Storage) Tracker {
	return Tracker{storage: s}
}

func (tr *Tracker) AddGoal(name string, targetAmount int64) (Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Goal{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Goal name cannot be empty!",
		}
	}
	if len(name) > MAX_GOAL_NAME_LENGTH {
		return Goal{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Goal name so long, maximum allowed length is: %d", MAX_GOAL_NAME_LENGTH),
		}
	}
	if targetAmount <= 0 {
		return Goal{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Goal target amount must be greater than zero!",
		}
	}
	if targetAmount > MAX_GOAL_TARGET_AMOUNT {
		return Goal{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Maximum allowed goal target is: %d", MAX_GOAL_TARGET_AMOUNT),
		}
	}

	goals, err := tr.storage.GetGoals()
	if err != nil {
		return Goal{}, fmt.Errorf("failed to load goals: %w", err)
	}

	g := Goal{
		ID:            uuid.New().String(),
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: 0,
		Status:        StatusInProgress,
	}
	goals = append(goals, g)

	if err := tr.storage.SaveGoals(goals); err != nil {
		return Goal{}, fmt.Errorf("failed to save goals: %w", err)
	}
	return g, nil
}

// AddFunds moves amount into the goal and appends the linked saving
// transaction. The goal and the ledger entry commit together.
func (tr *Tracker) AddFunds(goalID string, amount int64) (Goal, error) {
	if amount <= 0 {
		return Goal{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Amount must be greater than zero!",
		}
	}

	goals, idx, err := tr.findGoal(goalID)
	if err != nil {
		return Goal{}, err
	}
	g := goals[idx]

	if g.CurrentAmount+amount > g.TargetAmount {
		return Goal{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInsufficientHeadroom,
			Message: fmt.Sprintf("Adding %d exceeds the goal target, remaining headroom is %d.", amount, Headroom(g)),
		}
	}

	goals[idx].CurrentAmount += amount
	txn := ledger.Transaction{
		ID:          uuid.New().String(),
		Date:        time.Now().UTC(),
		Description: fmt.Sprintf("Funds added to goal: %s", g.Name),
		Amount:      amount,
		Category:    FundingCategoryName,
		Type:        ledger.TypeSaving,
	}

	if err := tr.storage.SaveGoalFunding(goals, txn); err != nil {
		return Goal{}, fmt.Errorf("failed to save goal funding: %w", err)
	}
	return goals[idx], nil
}

// RemoveFunds moves amount back to general funds as an income transaction.
func (tr *Tracker) RemoveFunds(goalID string, amount int64) (Goal, error) {
	if amount <= 0 {
		return Goal{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Amount must be greater than zero!",
		}
	}

	goals, idx, err := tr.findGoal(goalID)
	if err != nil {
		return Goal{}, err
	}
	g := goals[idx]

	if amount > g.CurrentAmount {
		return Goal{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInsufficientFunds,
			Message: fmt.Sprintf("Cannot withdraw %d, the goal holds %d.", amount, g.CurrentAmount),
		}
	}

	goals[idx].CurrentAmount -= amount
	txn := ledger.Transaction{
		ID:          uuid.New().String(),
		Date:        time.Now().UTC(),
		Description: fmt.Sprintf("Funds returned from goal: %s", g.Name),
		Amount:      amount,
		Category:    FundingCategoryName,
		Type:        ledger.TypeIncome,
	}

	if err := tr.storage.SaveGoalFunding(goals, txn); err != nil {
		return Goal{}, fmt.Errorf("failed to save goal funding: %w", err)
	}
	return goals[idx], nil
}

// MarkAchieved sets the goal status to achieved once the target is reached.
// Achievement never fires automatically, the user confirms it. Calling it on
// an already achieved goal is a no-op.
func (tr *Tracker) MarkAchieved(goalID string) (Goal, error) {
	goals, idx, err := tr.findGoal(goalID)
	if err != nil {
		return Goal{}, err
	}
	g := goals[idx]

	if g.Status == StatusAchieved {
		return g, nil
	}
	if g.CurrentAmount < g.TargetAmount {
		return Goal{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Goal '%s' has not reached its target yet.", g.Name),
		}
	}

	goals[idx].Status = StatusAchieved
	if err := tr.storage.SaveGoals(goals); err != nil {
		return Goal{}, fmt.Errorf("failed to save goals: %w", err)
	}
	return goals[idx], nil
}

func (tr *Tracker) List() ([]Goal, error) {
	goals, err := tr.storage.GetGoals()
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	return goals, nil
}

func (tr *Tracker) findGoal(goalID string) ([]Goal, int, error) {
	goals, err := tr.storage.GetGoals()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load goals: %w", err)
	}
	for i, g := range goals {
		if g.ID == goalID {
			return goals, i, nil
		}
	}
	return nil, 0, appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: fmt.Sprintf("Goal not found: %s", goalID),
	}
}
