// Package gin provides the inbound HTTP transport for the keepimport
// service using the Gin web framework.
package gin

import (
	"net/http"

	"github.com/fwojciec/keepimport"
	"github.com/gin-gonic/gin"
)

// UserIDHeader carries the external user identifier on import requests.
// It is used as the storage partition key; no identity validation happens
// beyond existence-or-create.
const UserIDHeader = "X-User-ID"

// Server holds the state for the REST API server.
type Server struct {
	importer keepimport.ImportService
	limiter  *UserLimiter
	router   *gin.Engine
}

// NewServer creates a new Server instance. A nil limiter disables rate
// limiting.
func NewServer(importer keepimport.ImportService, limiter *UserLimiter) *Server {
	r := gin.Default()
	r.MaxMultipartMemory = MaxArchiveSize
	s := &Server{
		importer: importer,
		limiter:  limiter,
		router:   r,
	}
	s.setupRoutes()
	return s
}

// Run starts the server on the specified address.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router for embedding in an http.Server or tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/api/health", s.handleHealth)
	s.router.POST("/api/keep-import", s.limitByUser, s.handleImport)
}

// limitByUser applies the per-user token bucket, falling back to the client
// IP when the request carries no user identifier.
func (s *Server) limitByUser(c *gin.Context) {
	if s.limiter == nil {
		return
	}
	key := c.GetHeader(UserIDHeader)
	if key == "" {
		key = c.ClientIP()
	}
	if !s.limiter.Allow(key) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
	}
}

// statusFromCode maps application error codes to HTTP status codes.
func statusFromCode(code string) int {
	switch code {
	case keepimport.EINVALID, keepimport.ETOOLARGE:
		return http.StatusBadRequest
	case keepimport.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case keepimport.ENOTFOUND:
		return http.StatusNotFound
	case keepimport.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortError writes an application error as a JSON response.
func abortError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFromCode(keepimport.ErrorCode(err)), gin.H{
		"error": keepimport.ErrorMessage(err),
	})
}
