package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/notenest/notenest/internal/repo"
	"github.com/notenest/notenest/pkg/classify"
	"github.com/notenest/notenest/pkg/tags"
)

const maxContentSize = 1000
const maxTagsPerNote = 5

type smartNoteRequest struct {
	UserID  string `json:"user_id"`
	Content string `json:"content"`
	LLMRef  string `json:"llm_ref"`
}

type updateNoteRequest struct {
	Content    *string `json:"content"`
	CategoryID *string `json:"category_id"`
}

type createCategoryRequest struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ColorCode   string `json:"color_code"`
}

// ─── Notes ───────────────────────────────────────────────────────────────────

func (s *Server) handleListNotes(c *gin.Context) {
	owner := c.Param("ownerID")
	archived, _ := strconv.ParseBool(c.DefaultQuery("archived", "false"))

	notes, err := s.repo.ListNotes(owner, archived)
	if err != nil {
		s.fail(c, err)
		return
	}
	if notes == nil {
		notes = []repo.Note{}
	}
	c.JSON(http.StatusOK, notes)
}

// handleCreateSmartNote classifies the content against the owner's
// categories and persists the note with derived tags. A fresh owner gets
// the stock category set before classification.
func (s *Server) handleCreateSmartNote(c *gin.Context) {
	var req smartNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is empty"})
		return
	}
	if len(req.Content) > maxContentSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content exceeds maximum length"})
		return
	}

	if _, err := s.repo.SeedDefaults(req.UserID); err != nil {
		s.fail(c, err)
		return
	}
	categories, err := s.repo.ListCategories(req.UserID)
	if err != nil {
		s.fail(c, err)
		return
	}

	views := make([]classify.Category, len(categories))
	for i, cat := range categories {
		views[i] = classify.Category{ID: cat.ID, Name: cat.Name}
	}
	result := classify.Classify(req.Content, views)

	note, err := s.repo.CreateNote(req.UserID, result.CategoryID, req.Content,
		tags.Extract(req.Content, maxTagsPerNote))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (s *Server) handleUpdateNote(c *gin.Context) {
	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is empty"})
		return
	}

	note, err := s.repo.UpdateNote(c.Param("noteID"), req.Content, req.CategoryID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (s *Server) handleArchiveNote(c *gin.Context) {
	owner := c.Query("user_id")
	if owner == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	note, err := s.repo.ArchiveNote(c.Param("noteID"), owner)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (s *Server) handleDeleteNote(c *gin.Context) {
	if err := s.repo.DeleteNote(c.Param("noteID")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ─── Categories ──────────────────────────────────────────────────────────────

func (s *Server) handleListCategories(c *gin.Context) {
	categories, err := s.repo.ListCategories(c.Param("ownerID"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if categories == nil {
		categories = []repo.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	category, err := s.repo.CreateCategory(req.UserID, req.Name, req.Description, req.ColorCode)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (s *Server) handleDeleteCategory(c *gin.Context) {
	owner := c.Query("user_id")
	if owner == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	if err := s.repo.DeleteCategory(c.Param("categoryID"), owner); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ─── Analytics ───────────────────────────────────────────────────────────────

func (s *Server) handleAnalytics(c *gin.Context) {
	summary, err := s.repo.AnalyticsSummary(c.Param("ownerID"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if summary == nil {
		summary = []repo.CategorySummary{}
	}
	c.JSON(http.StatusOK, summary)
}

// fail maps repository errors onto HTTP statuses.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repo.ErrUnknownCategory):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repo.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repo.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.log.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
