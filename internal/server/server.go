// Package server exposes the dictionary over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/example/sozluk/internal/dictionary"
	"github.com/example/sozluk/internal/library"
	"github.com/example/sozluk/internal/quiz"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

// Server wires the HTTP routes to the dictionary and the reader library.
type Server struct {
	dict         *dictionary.Service
	lib          *library.Library
	quiz         *quiz.Quiz
	auth         Authorizer
	popularLimit int
	engine       *gin.Engine
}

// Options configure a Server.
type Options struct {
	Dictionary   *dictionary.Service
	Library      *library.Library
	Quiz         *quiz.Quiz
	Authorizer   Authorizer
	PopularLimit int
}

// New creates the server and registers its routes.
func New(opts Options) *Server {
	s := &Server{
		dict:         opts.Dictionary,
		lib:          opts.Library,
		quiz:         opts.Quiz,
		auth:         opts.Authorizer,
		popularLimit: opts.PopularLimit,
	}
	if s.auth == nil {
		s.auth = NewSharedSecret("")
	}
	if s.quiz == nil {
		s.quiz = quiz.New(s.dict, 0)
	}
	if s.popularLimit <= 0 {
		s.popularLimit = 5
	}

	engine := gin.New()
	engine.Use(RequestID(), Logger(), gin.Recovery(), corsMiddleware())
	s.SetupRouter(&engine.RouterGroup)
	s.engine = engine
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logrus.Info("Shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}
