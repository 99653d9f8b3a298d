package models

import "time"

// Expense sources
const (
	SourceManual   = "manual"
	SourceAIParsed = "ai_parsed"
)

// Expense is a single expense record. Amount is always integer cents;
// a negative amount is a refund.
type Expense struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      int64     `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Source      string    `json:"source"`
}

type CreateExpenseRequest struct {
	Amount      *int64     `json:"amount" binding:"required"`
	Category    string     `json:"category" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Date        *time.Time `json:"date"`
	Source      string     `json:"source" binding:"omitempty,oneof=manual ai_parsed"`
}

// UpdateExpenseRequest carries a partial update; nil fields are left untouched.
type UpdateExpenseRequest struct {
	Amount      *int64     `json:"amount"`
	Category    *string    `json:"category"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Source      *string    `json:"source" binding:"omitempty,oneof=manual ai_parsed"`
}

type ParseExpenseRequest struct {
	Text string `json:"text" binding:"required,min=1"`
}

// ParsedExpense is an AI suggestion returned to the client. It is never
// persisted here; saving it goes through the regular create endpoint.
type ParsedExpense struct {
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Date        time.Time `json:"date"`
	Source      string    `json:"source"`
}

// CategoryTotal is a raw per-category sum straight from the store.
type CategoryTotal struct {
	Category string
	Total    int64
}

type CategoryAnalysis struct {
	Category   string  `json:"category"`
	Total      int64   `json:"total"`
	Percentage float64 `json:"percentage"`
}

type AnalysisResponse struct {
	TotalSpend int64              `json:"totalSpend"`
	ByCategory []CategoryAnalysis `json:"byCategory"`
	AIInsights []string           `json:"aiInsights"`
}
