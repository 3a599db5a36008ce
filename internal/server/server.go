// Package server exposes the NoteNest persistence service as a REST API.
// Route shapes and payloads follow the wire contract the clients speak.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notenest/notenest/internal/repo"
)

// Server is the NoteNest REST server.
type Server struct {
	repo   *repo.Repo
	router *gin.Engine
	log    *slog.Logger
}

// New creates a server around a repository.
func New(r *repo.Repo, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	router := gin.Default()

	s := &Server{repo: r, router: router, log: log}

	router.GET("/notes/:ownerID", s.handleListNotes)
	router.POST("/smart-notes/", s.handleCreateSmartNote)
	router.PUT("/notes/:noteID", s.handleUpdateNote)
	router.PUT("/notes/:noteID/archive", s.handleArchiveNote)
	router.DELETE("/notes/:noteID", s.handleDeleteNote)

	router.GET("/categories/:ownerID", s.handleListCategories)
	router.POST("/categories/", s.handleCreateCategory)
	router.DELETE("/categories/:categoryID", s.handleDeleteCategory)

	router.GET("/analytics/:ownerID", s.handleAnalytics)

	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server on addr and blocks.
func (s *Server) Run(addr string) error {
	s.log.Info("notenest service listening", "addr", addr)
	return s.router.Run(addr)
}
