// Package web serves the task API over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/taskring/internal/app"
)

const (
	logCategory     = "web"
	shutdownTimeout = 5 * time.Second
)

// Server is the HTTP front end over the application container.
type Server struct {
	c      *app.Container
	router *gin.Engine
	// mu serializes use cases that touch the shared ring or placement cache.
	mu sync.Mutex
}

// NewServer creates a server with every route registered.
func NewServer(c *app.Container) *Server {
	router := gin.New()
	s := &Server{c: c, router: router}

	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/categories", s.listCategories)
		api.GET("/days/:date/tasks", s.listTasks)
		api.GET("/slots", s.findSlot)
		api.POST("/tasks", s.addTask)
		api.PUT("/tasks/:id", s.editTask)
		api.DELETE("/tasks/:id", s.deleteTask)
		api.POST("/tasks/:id/complete", s.completeTask)
	}

	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.c.Logger.Info("", logCategory, "listening on "+addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.c.Logger.Info("", logCategory, "stopped")
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		s.c.Logger.Debug("", logCategory, fmt.Sprintf("%s %s %d %s",
			ctx.Request.Method, ctx.Request.URL.Path, ctx.Writer.Status(), time.Since(start)))
	}
}
