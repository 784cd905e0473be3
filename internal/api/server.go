package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fluxyapp/fluxy/internal/providers"
	"github.com/fluxyapp/fluxy/internal/response"
	"github.com/fluxyapp/fluxy/internal/service"
	"github.com/fluxyapp/fluxy/internal/storage"
)

// Server holds the services the API exposes.
type Server struct {
	auth          *service.AuthService
	subscriptions *service.SubscriptionService
	members       *service.MemberService
	budgets       *service.BudgetService
	reports       *service.ReportService
	messages      *service.MessageService
	friends       *service.FriendService
	invitations   *service.InvitationService
	catalog       *providers.Catalog
}

// NewServer creates an API server over the given services.
func NewServer(
	auth *service.AuthService,
	subscriptions *service.SubscriptionService,
	members *service.MemberService,
	budgets *service.BudgetService,
	reports *service.ReportService,
	messages *service.MessageService,
	friends *service.FriendService,
	invitations *service.InvitationService,
	catalog *providers.Catalog,
) *Server {
	return &Server{
		auth:          auth,
		subscriptions: subscriptions,
		members:       members,
		budgets:       budgets,
		reports:       reports,
		messages:      messages,
		friends:       friends,
		invitations:   invitations,
		catalog:       catalog,
	}
}

// fail maps service errors to HTTP status codes and writes the envelope.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPayerNotParticipant),
		errors.Is(err, service.ErrUnknownParticipant),
		errors.Is(err, service.ErrAlreadyParticipant),
		errors.Is(err, service.ErrInvalidMonth),
		errors.Is(err, service.ErrInvalidCadence),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrEmptyBody),
		errors.Is(err, service.ErrSelfFriend),
		errors.Is(err, service.ErrSelfInvite):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrFriendshipExists),
		errors.Is(err, service.ErrNotPending),
		errors.Is(err, service.ErrInvitationPending),
		errors.Is(err, service.ErrAlreadyResponded):
		response.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotAddressee),
		errors.Is(err, service.ErrNotFriendshipSide),
		errors.Is(err, service.ErrNotInvitee):
		response.Error(c, http.StatusForbidden, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, err.Error())
	}
}
