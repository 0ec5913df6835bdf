// Package api exposes the duty-tracking operations over HTTP. Routing and
// JSON shaping happen here; all aggregation rules live in the services
// package.
package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chupohan/brigade-duty/pkg/core/civiltime"
	"github.com/chupohan/brigade-duty/pkg/db"
)

// Server wires the HTTP layer to the store and clock.
type Server struct {
	store  db.Store
	clock  *civiltime.Clock
	logger *zap.Logger
}

// NewServer creates a Server.
func NewServer(store db.Store, clock *civiltime.Clock, logger *zap.Logger) *Server {
	return &Server{store: store, clock: clock, logger: logger}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), s.RequestLogger())

	authed := router.Group("/api", s.Authenticate())
	{
		authed.GET("/activities/daily", s.GetDailyActivity)
		authed.GET("/activities/recent", s.GetRecentActivities)
		authed.GET("/activities/monthly", s.GetMonthlyActivities)
		authed.POST("/activities", s.PostActivity)
		authed.GET("/stats", s.GetStats)
		authed.POST("/rescues", s.PostRescue)
		authed.GET("/rescues", s.GetRescues)

		admin := authed.Group("/admin", s.RequireAdmin())
		{
			admin.GET("/activities/monthly", s.GetAllMonthlyActivities)
			admin.GET("/stats", s.GetAllStats)
		}
	}

	return router
}
