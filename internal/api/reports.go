package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fluxyapp/fluxy/internal/response"
	"github.com/fluxyapp/fluxy/internal/service"
)

// GetBalances returns each member's paid versus owed position. The optional
// "months" query param bounds the lookback window.
func (s *Server) GetBalances(c *gin.Context) {
	window := service.DefaultBalanceWindowMonths
	if v := c.Query("months"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			window = n
		}
	}

	balances, err := s.reports.Balances(c.Request.Context(), window)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, balances)
}

// GetSpend returns monthly and annual totals plus a per-category breakdown.
func (s *Server) GetSpend(c *gin.Context) {
	summary, err := s.reports.Spend(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, summary)
}

// GetUpcoming lists subscriptions charging within the next N days
// (query param "days", default 30), soonest first.
func (s *Server) GetUpcoming(c *gin.Context) {
	days := 0
	if v := c.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	subs, err := s.reports.Upcoming(c.Request.Context(), days)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, subs)
}

// ListProviders returns the provider catalog.
func (s *Server) ListProviders(c *gin.Context) {
	response.OK(c, s.catalog.All())
}
