package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/response"
)

type subscriptionRequest struct {
	Name         string             `json:"name" binding:"required"`
	ProviderID   string             `json:"provider_id"`
	Price        decimal.Decimal    `json:"price"`
	Currency     string             `json:"currency"`
	Billing      models.Cadence     `json:"billing" binding:"required"`
	NextCharge   int64              `json:"next_charge"`
	Category     string             `json:"category"`
	Notes        string             `json:"notes"`
	Familial     bool               `json:"familial"`
	Participants []string           `json:"participants"`
	PaymentMode  models.PaymentMode `json:"payment_mode"`
	Shares       map[string]int     `json:"shares"`
}

func (r *subscriptionRequest) toModel() *models.Subscription {
	return &models.Subscription{
		Name:         r.Name,
		ProviderID:   r.ProviderID,
		Price:        r.Price,
		Currency:     r.Currency,
		Billing:      r.Billing,
		NextCharge:   r.NextCharge,
		Category:     r.Category,
		Notes:        r.Notes,
		Familial:     r.Familial,
		Participants: r.Participants,
		PaymentMode:  r.PaymentMode,
		Shares:       r.Shares,
	}
}

// CreateSubscription adds a new subscription.
func (s *Server) CreateSubscription(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	sub := req.toModel()
	if err := s.subscriptions.Create(c.Request.Context(), sub); err != nil {
		fail(c, err)
		return
	}
	response.Created(c, sub)
}

// GetSubscription returns one subscription by ID.
func (s *Server) GetSubscription(c *gin.Context) {
	sub, err := s.subscriptions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, sub)
}

// ListSubscriptions returns all subscriptions.
func (s *Server) ListSubscriptions(c *gin.Context) {
	subs, err := s.subscriptions.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, subs)
}

// UpdateSubscription replaces the editable fields of a subscription.
// Rotation state and history are managed through the rotation endpoints.
func (s *Server) UpdateSubscription(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := s.subscriptions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	sub := req.toModel()
	sub.ID = existing.ID
	sub.CreatedAt = existing.CreatedAt
	sub.Paused = existing.Paused
	sub.Rotation = existing.Rotation
	sub.History = existing.History
	if err := s.subscriptions.Update(c.Request.Context(), sub); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, sub)
}

// DeleteSubscription removes a subscription and its history.
func (s *Server) DeleteSubscription(c *gin.Context) {
	if err := s.subscriptions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, nil)
}

// DuplicateSubscription copies a subscription with fresh rotation state.
func (s *Server) DuplicateSubscription(c *gin.Context) {
	dup, err := s.subscriptions.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, dup)
}

// TogglePause flips the paused flag.
func (s *Server) TogglePause(c *gin.Context) {
	sub, err := s.subscriptions.TogglePause(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, sub)
}
