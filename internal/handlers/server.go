package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront/internal/middleware"
	"storefront/internal/session"
)

const SessionCookie = "sf_session"

type Server struct {
	engine   *gin.Engine
	sessions *session.Store
	listing  *ListingHandler
	orders   *OrderHandler
	log      *logrus.Logger
}

func NewServer(sessions *session.Store, callTimeout, sessionTTL time.Duration, logger *logrus.Logger) *Server {
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(logger), middleware.Identity(logger))

	s := &Server{
		engine:   r,
		sessions: sessions,
		listing:  NewListingHandler(callTimeout, logger),
		orders:   NewOrderHandler(callTimeout, logger),
		log:      logger,
	}
	s.registerRoutes(sessionTTL)
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes(sessionTTL time.Duration) {
	s.engine.GET("/health", s.health)
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	scoped := s.engine.Group("/")
	scoped.Use(s.withSession(sessionTTL))
	{
		s.listing.RegisterRoutes(scoped)
		s.orders.RegisterRoutes(scoped)
		scoped.GET("/notifications", s.notifications)
	}
}

// withSession attaches the caller's session, starting one and setting the
// cookie when the request carries no live session.
func (s *Server) withSession(ttl time.Duration) gin.HandlerFunc {
	maxAge := int(ttl / time.Second)
	return func(c *gin.Context) {
		id, _ := c.Cookie(SessionCookie)
		sess, created := s.sessions.Acquire(id)
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sess.ID, maxAge, "/", "", false, true)
		}
		c.Set("session", sess)
		c.Set("sessionID", sess.ID)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *session.Session {
	return c.MustGet("session").(*session.Session)
}

// @Summary Liveness probe
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Drain pending notifications and navigation
// @Tags session
// @Produce json
// @Success 200 {object} Response{Data=notify.Snapshot}
// @Router /notifications [get]
func (s *Server) notifications(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Notifications", sessionFrom(c).Feed.Drain())
}
