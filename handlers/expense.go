package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"expense-api/middleware"
	"expense-api/models"
	"expense-api/services"
	"expense-api/store"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	Store    store.ExpenseStore
	AI       services.AIClient
	Insights *services.InsightGenerator
	WS       *WSHandler
}

func NewExpenseHandler(s store.ExpenseStore, ai services.AIClient, ws *WSHandler) *ExpenseHandler {
	return &ExpenseHandler{
		Store:    s,
		AI:       ai,
		Insights: services.NewInsightGenerator(ai),
		WS:       ws,
	}
}

// List returns all expenses of the authenticated user, newest first.
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	expenses, err := h.Store.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch expenses"})
		return
	}

	c.JSON(http.StatusOK, expenses)
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Expense not found"})
		return
	}

	expense, err := h.Store.Get(c.Request.Context(), id, userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Expense not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch expense"})
		return
	}

	c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError(err))
		return
	}

	expense := models.Expense{
		UserID:      userID,
		Amount:      *req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        time.Now(),
		Source:      models.SourceManual,
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}
	if req.Source != "" {
		expense.Source = req.Source
	}

	if err := h.Store.Create(c.Request.Context(), &expense); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create expense"})
		return
	}

	h.WS.BroadcastUpdate(userID, "expense_created", expense.ID)
	c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Expense not found"})
		return
	}

	var req models.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError(err))
		return
	}

	expense, err := h.Store.Update(c.Request.Context(), id, userID, req)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Expense not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update expense"})
		return
	}

	h.WS.BroadcastUpdate(userID, "expense_updated", expense.ID)
	c.JSON(http.StatusOK, expense)
}

// Delete always returns 204, even for an id that does not exist.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	if err := h.Store.Delete(c.Request.Context(), id, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete expense"})
		return
	}

	h.WS.BroadcastUpdate(userID, "expense_deleted", id)
	c.Status(http.StatusNoContent)
}

// Parse extracts expense fields from free text via the model. The result is
// a suggestion only; nothing is persisted here.
func (h *ExpenseHandler) Parse(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req models.ParseExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError(err))
		return
	}

	suggestion, err := h.AI.ExtractFields(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to parse expense"})
		return
	}

	c.JSON(http.StatusOK, suggestion)
}

// Analysis returns the user's grand total, category breakdown and AI
// insights. Insight failures degrade to a fallback message; the endpoint
// itself never depends on model availability.
func (h *ExpenseHandler) Analysis(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	ctx := c.Request.Context()

	totalSpend, err := h.Store.TotalSpend(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to compute analysis"})
		return
	}

	totals, err := h.Store.CategoryTotals(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to compute analysis"})
		return
	}

	byCategory := services.BuildCategoryAnalysis(totalSpend, totals)
	aiInsights := h.Insights.Generate(ctx, totalSpend, byCategory)

	c.JSON(http.StatusOK, models.AnalysisResponse{
		TotalSpend: totalSpend,
		ByCategory: byCategory,
		AIInsights: aiInsights,
	})
}
