package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"expense-api/models"
)

// FallbackInsight is returned when the model is unavailable. The analysis
// endpoint must succeed regardless of the AI subsystem.
const FallbackInsight = "Spend analysis available."

type InsightGenerator struct {
	ai AIClient
}

func NewInsightGenerator(ai AIClient) *InsightGenerator {
	return &InsightGenerator{ai: ai}
}

// Generate produces up to 3 short insights for a spending breakdown. A user
// with no spend gets no insights and no model call.
func (g *InsightGenerator) Generate(ctx context.Context, totalSpend int64, byCategory []models.CategoryAnalysis) []string {
	if totalSpend == 0 {
		return []string{}
	}

	insights, err := g.ai.SummarizeInsights(ctx, formatSummary(totalSpend, byCategory))
	if err != nil {
		log.Printf("Failed to generate insights: %v", err)
		return []string{FallbackInsight}
	}

	return insights
}

func formatSummary(totalSpend int64, byCategory []models.CategoryAnalysis) string {
	parts := make([]string, 0, len(byCategory))
	for _, c := range byCategory {
		parts = append(parts, fmt.Sprintf("%s: $%s", c.Category, centsToDollars(c.Total)))
	}
	return fmt.Sprintf("Total spend: $%s. Categories: %s.", centsToDollars(totalSpend), strings.Join(parts, ", "))
}

func centsToDollars(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
