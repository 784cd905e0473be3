package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fluxyapp/fluxy/internal/middleware"
	"github.com/fluxyapp/fluxy/internal/response"
)

type sendInvitationRequest struct {
	SubscriptionID string `json:"subscription_id" binding:"required"`
	InviteeID      string `json:"invitee_id" binding:"required"`
}

// SendInvitation invites another user to join a subscription.
func (s *Server) SendInvitation(c *gin.Context) {
	var req sendInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := s.invitations.Invite(c.Request.Context(),
		req.SubscriptionID, middleware.GetUserID(c), req.InviteeID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, inv)
}

// ListInvitations lists the invitations the authenticated user sent or
// received.
func (s *Server) ListInvitations(c *gin.Context) {
	invs, err := s.invitations.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, invs)
}

// AcceptInvitation accepts an invitation addressed to the authenticated user.
func (s *Server) AcceptInvitation(c *gin.Context) {
	inv, err := s.invitations.Respond(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), true)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, inv)
}

// DeclineInvitation declines an invitation addressed to the authenticated
// user.
func (s *Server) DeclineInvitation(c *gin.Context) {
	inv, err := s.invitations.Respond(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), false)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, inv)
}
