package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fluxyapp/fluxy/internal/response"
)

type recordPaymentRequest struct {
	Month  string `json:"month"`
	PaidBy string `json:"paid_by"`
}

type forcePayerRequest struct {
	Month    string `json:"month"`
	MemberID string `json:"member_id" binding:"required"`
}

type reorderRequest struct {
	Order []string `json:"order" binding:"required"`
}

type participantRequest struct {
	MemberID string `json:"member_id" binding:"required"`
}

// RecordPayment settles a month. Month defaults to the current one and
// PaidBy to whoever the rotation says is due.
func (s *Server) RecordPayment(c *gin.Context) {
	var req recordPaymentRequest
	// The body is optional: month and payer both have sensible defaults.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := s.subscriptions.RecordPayment(c.Request.Context(), c.Param("id"), req.Month, req.PaidBy)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, sub)
}

// SkipPayment advances the rotation without settling a month.
func (s *Server) SkipPayment(c *gin.Context) {
	sub, err := s.subscriptions.SkipPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, sub)
}

// ForcePayer pins responsibility for one month to a specific member.
func (s *Server) ForcePayer(c *gin.Context) {
	var req forcePayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := s.subscriptions.ForcePayer(c.Request.Context(), c.Param("id"), req.Month, req.MemberID)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, sub)
}

// ReorderParticipants replaces the rotation order, keeping the current
// payer current where possible.
func (s *Server) ReorderParticipants(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := s.subscriptions.Reorder(c.Request.Context(), c.Param("id"), req.Order)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, sub)
}

// AddParticipant appends a member to the cost split.
func (s *Server) AddParticipant(c *gin.Context) {
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := s.subscriptions.AddParticipant(c.Request.Context(), c.Param("id"), req.MemberID)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, sub)
}

// RemoveParticipant drops a member from the cost split.
func (s *Server) RemoveParticipant(c *gin.Context) {
	sub, err := s.subscriptions.RemoveParticipant(c.Request.Context(), c.Param("id"), c.Param("member_id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, sub)
}

// CurrentPayer reports who is responsible for the given month
// (query param "month", defaulting to the current one).
func (s *Server) CurrentPayer(c *gin.Context) {
	payer, err := s.subscriptions.CurrentPayer(c.Request.Context(), c.Param("id"), c.Query("month"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, gin.H{"member_id": payer})
}

// NextPayer reports who pays after the current payer.
func (s *Server) NextPayer(c *gin.Context) {
	payer, err := s.subscriptions.NextPayer(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, gin.H{"member_id": payer})
}
