package services

import (
	"sort"

	"expense-api/models"
)

// BuildCategoryAnalysis converts raw per-category sums into a percentage
// breakdown. Summation stays in integer cents; only the percentage is a
// float. With a grand total of zero every percentage is zero.
//
// Rows are ordered by total descending, ties broken by category name, so
// the breakdown is stable across requests.
func BuildCategoryAnalysis(totalSpend int64, totals []models.CategoryTotal) []models.CategoryAnalysis {
	analysis := make([]models.CategoryAnalysis, 0, len(totals))
	for _, t := range totals {
		entry := models.CategoryAnalysis{
			Category: t.Category,
			Total:    t.Total,
		}
		if totalSpend > 0 {
			entry.Percentage = float64(t.Total) / float64(totalSpend) * 100
		}
		analysis = append(analysis, entry)
	}

	sort.Slice(analysis, func(i, j int) bool {
		if analysis[i].Total != analysis[j].Total {
			return analysis[i].Total > analysis[j].Total
		}
		return analysis[i].Category < analysis[j].Category
	})

	return analysis
}
