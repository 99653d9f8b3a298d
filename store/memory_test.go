package store

import (
	"context"
	"testing"
	"time"

	"expense-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedExpense(t *testing.T, s *MemoryStore, userID, category string, amount int64) *models.Expense {
	t.Helper()
	e := &models.Expense{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: "test expense",
		Date:        time.Now(),
		Source:      models.SourceManual,
	}
	require.NoError(t, s.Create(context.Background(), e))
	return e
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	created := seedExpense(t, s, "user-1", "Food", 1050)
	assert.NotZero(t, created.ID)

	got, err := s.Get(ctx, created.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1050), got.Amount)
	assert.Equal(t, "Food", got.Category)

	newAmount := int64(2000)
	updated, err := s.Update(ctx, created.ID, "user-1", models.UpdateExpenseRequest{Amount: &newAmount})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), updated.Amount)
	assert.Equal(t, "Food", updated.Category, "unset fields stay untouched")

	require.NoError(t, s.Delete(ctx, created.ID, "user-1"))
	_, err = s.Get(ctx, created.ID, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreOwnership(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	e := seedExpense(t, s, "user-1", "Food", 500)

	_, err := s.Get(ctx, e.ID, "user-2")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting someone else's expense is a silent no-op
	require.NoError(t, s.Delete(ctx, e.ID, "user-2"))
	_, err = s.Get(ctx, e.ID, "user-1")
	assert.NoError(t, err)

	list, err := s.List(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryStoreDeleteMissing(t *testing.T) {
	s := NewMemoryStore()
	assert.NoError(t, s.Delete(context.Background(), 9999, "user-1"))
}

func TestMemoryStoreAggregates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	seedExpense(t, s, "user-1", "Food", 5000)
	seedExpense(t, s, "user-1", "Food", 2500)
	seedExpense(t, s, "user-1", "Transport", 1500)
	seedExpense(t, s, "user-1", "Refunds", -1000)
	seedExpense(t, s, "user-2", "Food", 99999)

	total, err := s.TotalSpend(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(8000), total)

	totals, err := s.CategoryTotals(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, totals, 3)

	var sum int64
	byCat := map[string]int64{}
	for _, ct := range totals {
		sum += ct.Total
		byCat[ct.Category] = ct.Total
	}
	assert.Equal(t, total, sum, "category totals must sum to the grand total")
	assert.Equal(t, int64(7500), byCat["Food"])
	assert.Equal(t, int64(1500), byCat["Transport"])
	assert.Equal(t, int64(-1000), byCat["Refunds"])
}

func TestMemoryStoreEmptyUser(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	total, err := s.TotalSpend(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	totals, err := s.CategoryTotals(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, totals)
}
