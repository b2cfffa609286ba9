package category

import (
	"fmt"
	"strings"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/ledger"
	"github.com/google/uuid"
)

const MAX_CATEGORY_NAME_LENGTH = 255

type Storage interface {
	GetCategories() ([]Category, error)
	SaveCategories(categories []Category) error
	// GetTransactions must return the live transaction list, deletion checks
	// never run against a cached copy.
	GetTransactions() ([]ledger.Transaction, error)
}

type Registry struct {
	storage Storage
}

func NewRegistry(s Storage) Registry {
	return Registry{storage: s}
}

func (r *Registry) Add(req CategoryRequest) (Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Category{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Category name cannot be empty!",
		}
	}
	if len(name) > MAX_CATEGORY_NAME_LENGTH {
		return Category{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Category name so long, maximum allowed length is: %d", MAX_CATEGORY_NAME_LENGTH),
		}
	}
	if !req.Type.Valid() {
		return Category{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Invalid category type: %s", req.Type),
		}
	}

	categories, err := r.storage.GetCategories()
	if err != nil {
		return Category{}, fmt.Errorf("failed to load categories: %w", err)
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return Category{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrConflict,
				Message: fmt.Sprintf("Category '%s' already exists.", c.Name),
			}
		}
	}

	category := Category{
		ID:    uuid.New().String(),
		Name:  name,
		Icon:  req.Icon,
		Color: req.Color,
		Type:  req.Type,
	}
	categories = append(categories, category)

	if err := r.storage.SaveCategories(categories); err != nil {
		return Category{}, fmt.Errorf("failed to save categories: %w", err)
	}
	return category, nil
}

// Remove deletes the category by id. It fails while any transaction still
// references the category by name.
func (r *Registry) Remove(id string) error {
	categories, err := r.storage.GetCategories()
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	idx := -1
	for i, c := range categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: fmt.Sprintf("Category not found: %s", id),
		}
	}

	transactions, err := r.storage.GetTransactions()
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	for _, t := range transactions {
		if strings.EqualFold(t.Category, categories[idx].Name) {
			return appErrors.ErrorResponse{
				Code:    appErrors.ErrCategoryInUse,
				Message: fmt.Sprintf("Category '%s' is referenced by existing transactions.", categories[idx].Name),
			}
		}
	}

	categories = append(categories[:idx], categories[idx+1:]...)
	if err := r.storage.SaveCategories(categories); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}
	return nil
}

func (r *Registry) List() ([]Category, error) {
	categories, err := r.storage.GetCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return categories, nil
}

// ListByType returns the categories offered when recording a transaction of
// the given type.
func (r *Registry) ListByType(transactionType ledger.TransactionType) ([]Category, error) {
	categories, err := r.storage.GetCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	wanted := TypeForTransaction(transactionType)
	var result []Category
	for _, c := range categories {
		if c.Type == wanted {
			result = append(result, c)
		}
	}
	return result, nil
}

// SavingCategoryNames lists the names of saving-type categories, used to
// exclude them from spending reports.
func (r *Registry) SavingCategoryNames() ([]string, error) {
	categories, err := r.storage.GetCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	var names []string
	for _, c := range categories {
		if c.Type == TypeSaving {
			names = append(names, c.Name)
		}
	}
	return names, nil
}

// MatchOrFallback resolves a free-text category guess to a registry entry by
// exact case-insensitive name, falling back to the "Other" category.
func (r *Registry) MatchOrFallback(name string) (Category, error) {
	categories, err := r.storage.GetCategories()
	if err != nil {
		return Category{}, fmt.Errorf("failed to load categories: %w", err)
	}

	var fallback *Category
	for i, c := range categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, nil
		}
		if strings.EqualFold(c.Name, FallbackCategoryName) {
			fallback = &categories[i]
		}
	}
	if fallback != nil {
		return *fallback, nil
	}
	return Category{}, appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: fmt.Sprintf("No category matches '%s' and no fallback category exists.", name),
	}
}
