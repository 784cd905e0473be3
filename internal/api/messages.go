package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fluxyapp/fluxy/internal/middleware"
	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/response"
)

type sendMessageRequest struct {
	RecipientID    string `json:"recipient_id" binding:"required"`
	SubscriptionID string `json:"subscription_id"`
	Body           string `json:"body" binding:"required"`
}

// SendMessage delivers a note from the authenticated user to another user.
func (s *Server) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	msg := &models.Message{
		SenderID:       middleware.GetUserID(c),
		RecipientID:    req.RecipientID,
		SubscriptionID: req.SubscriptionID,
		Body:           req.Body,
	}
	if err := s.messages.Send(c.Request.Context(), msg); err != nil {
		fail(c, err)
		return
	}
	response.Created(c, msg)
}

// Inbox lists the authenticated user's messages, newest first.
func (s *Server) Inbox(c *gin.Context) {
	msgs, err := s.messages.Inbox(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, msgs)
}

// MarkMessageRead flags a message as read.
func (s *Server) MarkMessageRead(c *gin.Context) {
	if err := s.messages.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, nil)
}
