package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fluxyapp/fluxy/internal/auth"
	"github.com/fluxyapp/fluxy/internal/middleware"
)

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router(jwtManager *auth.JWTManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", s.Register)
		authGroup.POST("/login", s.Login)
	}

	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(jwtManager))
	{
		subs := protected.Group("/subscriptions")
		{
			subs.POST("", s.CreateSubscription)
			subs.GET("", s.ListSubscriptions)
			subs.GET("/:id", s.GetSubscription)
			subs.PUT("/:id", s.UpdateSubscription)
			subs.DELETE("/:id", s.DeleteSubscription)
			subs.POST("/:id/duplicate", s.DuplicateSubscription)
			subs.POST("/:id/pause", s.TogglePause)

			subs.POST("/:id/payments", s.RecordPayment)
			subs.POST("/:id/skip", s.SkipPayment)
			subs.POST("/:id/force-payer", s.ForcePayer)
			subs.PUT("/:id/order", s.ReorderParticipants)
			subs.POST("/:id/participants", s.AddParticipant)
			subs.DELETE("/:id/participants/:member_id", s.RemoveParticipant)
			subs.GET("/:id/payer", s.CurrentPayer)
			subs.GET("/:id/payer/next", s.NextPayer)
		}

		members := protected.Group("/members")
		{
			members.POST("", s.CreateMember)
			members.GET("", s.ListMembers)
			members.GET("/:id", s.GetMember)
			members.PUT("/:id", s.UpdateMember)
			members.DELETE("/:id", s.DeleteMember)
		}

		budgets := protected.Group("/budgets")
		{
			budgets.POST("", s.CreateBudget)
			budgets.GET("", s.ListBudgets)
			budgets.PUT("/:id", s.UpdateBudget)
			budgets.DELETE("/:id", s.DeleteBudget)
			budgets.GET("/status", s.GetBudgetStatus)
		}

		messages := protected.Group("/messages")
		{
			messages.POST("", s.SendMessage)
			messages.GET("", s.Inbox)
			messages.POST("/:id/read", s.MarkMessageRead)
		}

		friends := protected.Group("/friends")
		{
			friends.POST("", s.RequestFriend)
			friends.GET("", s.ListFriends)
			friends.POST("/:id/accept", s.AcceptFriend)
			friends.POST("/:id/block", s.BlockFriend)
			friends.DELETE("/:id", s.RemoveFriend)
		}

		invitations := protected.Group("/invitations")
		{
			invitations.POST("", s.SendInvitation)
			invitations.GET("", s.ListInvitations)
			invitations.POST("/:id/accept", s.AcceptInvitation)
			invitations.POST("/:id/decline", s.DeclineInvitation)
		}

		reports := protected.Group("/reports")
		{
			reports.GET("/balances", s.GetBalances)
			reports.GET("/spend", s.GetSpend)
			reports.GET("/upcoming", s.GetUpcoming)
		}

		protected.GET("/providers", s.ListProviders)
	}

	return r
}
