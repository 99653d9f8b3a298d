package store

import (
	"context"
	"errors"

	"expense-api/models"
)

// ErrNotFound is returned when an expense id does not exist or belongs to
// another user.
var ErrNotFound = errors.New("expense not found")

// ExpenseStore is the persistence boundary for expense records. All reads
// and aggregates are scoped to a single owning user.
type ExpenseStore interface {
	List(ctx context.Context, userID string) ([]models.Expense, error)
	Get(ctx context.Context, id int64, userID string) (*models.Expense, error)
	Create(ctx context.Context, expense *models.Expense) error
	Update(ctx context.Context, id int64, userID string, updates models.UpdateExpenseRequest) (*models.Expense, error)
	// Delete succeeds even when the id does not exist.
	Delete(ctx context.Context, id int64, userID string) error

	TotalSpend(ctx context.Context, userID string) (int64, error)
	CategoryTotals(ctx context.Context, userID string) ([]models.CategoryTotal, error)
}
