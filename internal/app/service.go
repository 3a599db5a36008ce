// Package app coordinates the in-memory note store with the remote
// persistence service. Local state is a cache of the remote truth: every
// successful mutation is followed by a full refresh, and a failed remote
// call leaves the local view untouched.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/notenest/notenest/internal/gateway"
	"github.com/notenest/notenest/internal/store"
)

// Service is the application facade the CLI talks to.
type Service struct {
	store  *store.Store
	remote *gateway.Client
	log    *slog.Logger
	primed bool
}

// New creates a service over an empty local store.
func New(remote *gateway.Client, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:  store.New(),
		remote: remote,
		log:    log,
	}
}

// Store exposes the local cache for read paths (listing, analytics).
func (s *Service) Store() *store.Store {
	return s.store
}

// Refresh refetches everything from the remote service and swaps the
// local snapshot. On failure the previous snapshot stays in place.
func (s *Service) Refresh(ctx context.Context) error {
	remoteCategories, err := s.remote.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("refresh categories: %w", err)
	}
	remoteNotes, err := s.remote.ListNotes(ctx, false)
	if err != nil {
		return fmt.Errorf("refresh notes: %w", err)
	}

	categories := make([]store.Category, len(remoteCategories))
	for i, r := range remoteCategories {
		categories[i] = r.ToCategory()
	}
	notes := make([]store.Note, len(remoteNotes))
	for i, r := range remoteNotes {
		notes[i] = r.ToNote()
	}

	s.store.ReplaceAll(categories, notes)
	s.primed = true
	s.log.Debug("refreshed local snapshot",
		"categories", len(categories), "notes", len(notes))
	return nil
}

// ensurePrimed loads the initial snapshot once per process.
func (s *Service) ensurePrimed(ctx context.Context) error {
	if s.primed {
		return nil
	}
	return s.Refresh(ctx)
}

// AddNoteSmart creates a note remotely (the service classifies it) and
// refreshes the local view.
func (s *Service) AddNoteSmart(ctx context.Context, content string) (store.Note, error) {
	if err := s.ensurePrimed(ctx); err != nil {
		return store.Note{}, err
	}
	rec, err := s.remote.CreateSmartNote(ctx, content)
	if err != nil {
		s.log.Error("remote create failed", "error", err)
		return store.Note{}, err
	}
	if err := s.Refresh(ctx); err != nil {
		return store.Note{}, err
	}
	if n, err := s.store.GetNote(rec.ID); err == nil {
		return n, nil
	}
	return rec.ToNote(), nil
}

// UpdateNote replaces a note's content and category remotely and
// refreshes the local view.
func (s *Service) UpdateNote(ctx context.Context, noteID, content, categoryID string) error {
	if _, err := s.remote.UpdateNote(ctx, noteID, content, categoryID); err != nil {
		s.log.Error("remote update failed", "note", noteID, "error", err)
		return err
	}
	return s.Refresh(ctx)
}

// ArchiveNote archives a note remotely; archived notes drop out of the
// local snapshot on refresh.
func (s *Service) ArchiveNote(ctx context.Context, noteID string) error {
	if _, err := s.remote.ArchiveNote(ctx, noteID); err != nil {
		s.log.Error("remote archive failed", "note", noteID, "error", err)
		return err
	}
	return s.Refresh(ctx)
}

// DeleteNote removes a note locally first so the view updates even if
// the remote call lags, then deletes remotely and reconciles.
func (s *Service) DeleteNote(ctx context.Context, noteID string) error {
	s.store.DeleteNote(noteID)
	if err := s.remote.DeleteNote(ctx, noteID); err != nil {
		s.log.Error("remote delete failed", "note", noteID, "error", err)
		// Resync so the optimistic removal does not drift from the
		// remote truth.
		if rerr := s.Refresh(ctx); rerr != nil {
			s.log.Error("resync after failed delete", "error", rerr)
		}
		return err
	}
	return s.Refresh(ctx)
}

// AddCategory creates a category remotely and refreshes the local view.
func (s *Service) AddCategory(ctx context.Context, name, description, color string) (store.Category, error) {
	rec, err := s.remote.CreateCategory(ctx, name, description, color)
	if err != nil {
		s.log.Error("remote category create failed", "name", name, "error", err)
		return store.Category{}, err
	}
	if err := s.Refresh(ctx); err != nil {
		return store.Category{}, err
	}
	return rec.ToCategory(), nil
}

// DeleteCategory removes a category remotely. The remote service adopts
// the category's notes into its fallback, which the refresh picks up.
func (s *Service) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := s.remote.DeleteCategory(ctx, categoryID); err != nil {
		s.log.Error("remote category delete failed", "category", categoryID, "error", err)
		return err
	}
	return s.Refresh(ctx)
}
