package store

import (
	"context"
	"sort"
	"sync"

	"expense-api/models"
)

// MemoryStore is an in-memory ExpenseStore used in tests and local
// development without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	expenses map[int64]models.Expense
	nextID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		expenses: make(map[int64]models.Expense),
		nextID:   1,
	}
}

func (s *MemoryStore) List(ctx context.Context, userID string) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Expense{}
	for _, e := range s.expenses {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *MemoryStore) Get(ctx context.Context, id int64, userID string) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.expenses[id]
	if !ok || e.UserID != userID {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (s *MemoryStore) Create(ctx context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expense.ID = s.nextID
	s.nextID++
	s.expenses[expense.ID] = *expense
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, id int64, userID string, updates models.UpdateExpenseRequest) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if !ok || e.UserID != userID {
		return nil, ErrNotFound
	}

	if updates.Amount != nil {
		e.Amount = *updates.Amount
	}
	if updates.Category != nil {
		e.Category = *updates.Category
	}
	if updates.Description != nil {
		e.Description = *updates.Description
	}
	if updates.Date != nil {
		e.Date = *updates.Date
	}
	if updates.Source != nil {
		e.Source = *updates.Source
	}

	s.expenses[id] = e
	return &e, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if ok && e.UserID == userID {
		delete(s.expenses, id)
	}
	return nil
}

func (s *MemoryStore) TotalSpend(ctx context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, e := range s.expenses {
		if e.UserID == userID {
			total += e.Amount
		}
	}
	return total, nil
}

func (s *MemoryStore) CategoryTotals(ctx context.Context, userID string) ([]models.CategoryTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sums := map[string]int64{}
	order := []string{}
	for _, e := range s.expenses {
		if e.UserID != userID {
			continue
		}
		if _, seen := sums[e.Category]; !seen {
			order = append(order, e.Category)
		}
		sums[e.Category] += e.Amount
	}
	sort.Strings(order)

	totals := []models.CategoryTotal{}
	for _, category := range order {
		totals = append(totals, models.CategoryTotal{Category: category, Total: sums[category]})
	}
	return totals, nil
}
