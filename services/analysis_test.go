package services

import (
	"testing"

	"expense-api/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildCategoryAnalysis(t *testing.T) {
	totals := []models.CategoryTotal{
		{Category: "Food", Total: 5000},
		{Category: "Transport", Total: 3000},
		{Category: "Utilities", Total: 2000},
	}

	analysis := BuildCategoryAnalysis(10000, totals)

	assert.Len(t, analysis, 3)
	assert.Equal(t, "Food", analysis[0].Category)
	assert.Equal(t, int64(5000), analysis[0].Total)
	assert.InDelta(t, 50.0, analysis[0].Percentage, 0.001)
	assert.InDelta(t, 30.0, analysis[1].Percentage, 0.001)
	assert.InDelta(t, 20.0, analysis[2].Percentage, 0.001)

	// Category totals sum exactly to the grand total
	var sum int64
	var pctSum float64
	for _, a := range analysis {
		sum += a.Total
		pctSum += a.Percentage
	}
	assert.Equal(t, int64(10000), sum)
	assert.InDelta(t, 100.0, pctSum, 0.001)
}

func TestBuildCategoryAnalysisEmpty(t *testing.T) {
	analysis := BuildCategoryAnalysis(0, nil)
	assert.Empty(t, analysis)
}

func TestBuildCategoryAnalysisZeroTotal(t *testing.T) {
	// Offsetting amounts: grand total is zero, every percentage is zero
	totals := []models.CategoryTotal{
		{Category: "Food", Total: 2500},
		{Category: "Refunds", Total: -2500},
	}

	analysis := BuildCategoryAnalysis(0, totals)

	assert.Len(t, analysis, 2)
	for _, a := range analysis {
		assert.Equal(t, 0.0, a.Percentage)
	}
}

func TestBuildCategoryAnalysisNegativeAmounts(t *testing.T) {
	totals := []models.CategoryTotal{
		{Category: "Food", Total: 4000},
		{Category: "Refunds", Total: -1000},
	}

	analysis := BuildCategoryAnalysis(3000, totals)

	var sum int64
	for _, a := range analysis {
		sum += a.Total
	}
	assert.Equal(t, int64(3000), sum)
	assert.InDelta(t, float64(4000)/float64(3000)*100, analysis[0].Percentage, 0.001)
}

func TestBuildCategoryAnalysisOrdering(t *testing.T) {
	totals := []models.CategoryTotal{
		{Category: "Zoo", Total: 100},
		{Category: "Apples", Total: 100},
		{Category: "Rent", Total: 900},
	}

	analysis := BuildCategoryAnalysis(1100, totals)

	// Descending by total, ties broken by category name
	assert.Equal(t, "Rent", analysis[0].Category)
	assert.Equal(t, "Apples", analysis[1].Category)
	assert.Equal(t, "Zoo", analysis[2].Category)
}
