package services

import (
	"context"
	"errors"
	"testing"

	"expense-api/models"

	"github.com/stretchr/testify/assert"
)

type fakeAI struct {
	insights     []string
	err          error
	calls        int
	lastSummary  string
	extractCalls int
}

func (f *fakeAI) ExtractFields(ctx context.Context, text string) (*models.ParsedExpense, error) {
	f.extractCalls++
	return nil, errors.New("not used")
}

func (f *fakeAI) SummarizeInsights(ctx context.Context, summary string) ([]string, error) {
	f.calls++
	f.lastSummary = summary
	return f.insights, f.err
}

func TestGenerateInsights(t *testing.T) {
	ai := &fakeAI{insights: []string{"Tip one.", "Tip two.", "Tip three."}}
	g := NewInsightGenerator(ai)

	byCategory := []models.CategoryAnalysis{
		{Category: "Food", Total: 10050, Percentage: 67.0},
		{Category: "Transport", Total: 4950, Percentage: 33.0},
	}

	got := g.Generate(context.Background(), 15000, byCategory)

	assert.Equal(t, []string{"Tip one.", "Tip two.", "Tip three."}, got)
	assert.Equal(t, 1, ai.calls)
	assert.Equal(t, "Total spend: $150.00. Categories: Food: $100.50, Transport: $49.50.", ai.lastSummary)
}

func TestGenerateInsightsZeroSpend(t *testing.T) {
	ai := &fakeAI{insights: []string{"should not appear"}}
	g := NewInsightGenerator(ai)

	got := g.Generate(context.Background(), 0, nil)

	assert.Empty(t, got)
	assert.Equal(t, 0, ai.calls, "model must not be called for a zero grand total")
}

func TestGenerateInsightsFallback(t *testing.T) {
	ai := &fakeAI{err: errors.New("api unreachable")}
	g := NewInsightGenerator(ai)

	got := g.Generate(context.Background(), 5000, []models.CategoryAnalysis{
		{Category: "Food", Total: 5000, Percentage: 100},
	})

	assert.Equal(t, []string{FallbackInsight}, got)
}

func TestCentsToDollars(t *testing.T) {
	assert.Equal(t, "10.50", centsToDollars(1050))
	assert.Equal(t, "0.05", centsToDollars(5))
	assert.Equal(t, "-3.25", centsToDollars(-325))
	assert.Equal(t, "0.00", centsToDollars(0))
}
