package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/response"
)

type budgetRequest struct {
	Category     string          `json:"category"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit"`
}

// CreateBudget adds a spending limit. An empty category means overall.
func (s *Server) CreateBudget(c *gin.Context) {
	var req budgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	budget := &models.Budget{Category: req.Category, MonthlyLimit: req.MonthlyLimit}
	if err := s.budgets.Create(c.Request.Context(), budget); err != nil {
		fail(c, err)
		return
	}
	response.Created(c, budget)
}

// ListBudgets returns all spending limits.
func (s *Server) ListBudgets(c *gin.Context) {
	budgets, err := s.budgets.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, budgets)
}

// UpdateBudget changes a budget's category or limit.
func (s *Server) UpdateBudget(c *gin.Context) {
	var req budgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	budget := &models.Budget{
		ID:           c.Param("id"),
		Category:     req.Category,
		MonthlyLimit: req.MonthlyLimit,
	}
	if err := s.budgets.Update(c.Request.Context(), budget); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, budget)
}

// DeleteBudget removes a spending limit.
func (s *Server) DeleteBudget(c *gin.Context) {
	if err := s.budgets.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, nil)
}

// GetBudgetStatus returns every budget with current spend and remaining room.
func (s *Server) GetBudgetStatus(c *gin.Context) {
	statuses, err := s.reports.BudgetStatus(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, statuses)
}
