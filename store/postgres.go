package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"expense-api/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) List(ctx context.Context, userID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, amount, category, description, date, source
		FROM expenses
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &e.Date, &e.Source); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id int64, userID string) (*models.Expense, error) {
	var e models.Expense
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, amount, category, description, date, source
		FROM expenses
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &e.Date, &e.Source)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *PostgresStore) Create(ctx context.Context, expense *models.Expense) error {
	return s.db.QueryRowContext(ctx, `
		INSERT INTO expenses (user_id, amount, category, description, date, source)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, expense.UserID, expense.Amount, expense.Category, expense.Description, expense.Date, expense.Source).Scan(&expense.ID)
}

func (s *PostgresStore) Update(ctx context.Context, id int64, userID string, updates models.UpdateExpenseRequest) (*models.Expense, error) {
	set := []string{}
	args := []interface{}{}
	arg := 1

	appendSet := func(column string, value interface{}) {
		set = append(set, fmt.Sprintf("%s = $%d", column, arg))
		args = append(args, value)
		arg++
	}

	if updates.Amount != nil {
		appendSet("amount", *updates.Amount)
	}
	if updates.Category != nil {
		appendSet("category", *updates.Category)
	}
	if updates.Description != nil {
		appendSet("description", *updates.Description)
	}
	if updates.Date != nil {
		appendSet("date", *updates.Date)
	}
	if updates.Source != nil {
		appendSet("source", *updates.Source)
	}

	if len(set) == 0 {
		return s.Get(ctx, id, userID)
	}

	query := fmt.Sprintf(`
		UPDATE expenses SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING id, user_id, amount, category, description, date, source
	`, strings.Join(set, ", "), arg, arg+1)
	args = append(args, id, userID)

	var e models.Expense
	err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &e.Date, &e.Source)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete is deliberately permissive: deleting an id that does not exist is
// still a success.
func (s *PostgresStore) Delete(ctx context.Context, id int64, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM expenses WHERE id = $1 AND user_id = $2
	`, id, userID)
	return err
}

func (s *PostgresStore) TotalSpend(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1
	`, userID).Scan(&total)
	return total, err
}

func (s *PostgresStore) CategoryTotals(ctx context.Context, userID string) ([]models.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, SUM(amount)
		FROM expenses
		WHERE user_id = $1
		GROUP BY category
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := []models.CategoryTotal{}
	for rows.Next() {
		var t models.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
