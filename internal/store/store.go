package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/notenest/notenest/pkg/classify"
	"github.com/notenest/notenest/pkg/icons"
)

// Error taxonomy for store operations. Callers match with errors.Is.
var (
	// ErrValidation covers empty content, empty or duplicate category names.
	ErrValidation = errors.New("invalid input")
	// ErrReference covers a mutation naming a category id that does not exist.
	ErrReference = errors.New("unknown category")
	// ErrNotFound covers an update targeting a missing note.
	ErrNotFound = errors.New("note not found")
)

// Store holds the ordered category and note collections.
//
// Categories keep append order (display order). Notes keep
// most-recent-first order: new notes are inserted at the front.
// Every visible note's CategoryID resolves to a present category at all
// times; notes orphaned by a category deletion are reassigned to the
// Uncategorized sentinel.
type Store struct {
	mu         sync.RWMutex
	categories []Category
	notes      []Note
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// AddCategory appends a new category. The name must be non-empty and not
// already in use.
func (s *Store) AddCategory(name, description, color string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, fmt.Errorf("%w: category name is empty", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.Name == name {
			return Category{}, fmt.Errorf("%w: category %q already exists", ErrValidation, name)
		}
	}

	c := Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Color:       color,
	}
	s.categories = append(s.categories, c)
	return c, nil
}

// AddNoteSmart classifies content against the current categories and
// inserts the resulting note at the front of the collection.
func (s *Store) AddNoteSmart(content string) (Note, error) {
	if strings.TrimSpace(content) == "" {
		return Note{}, fmt.Errorf("%w: note content is empty", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]classify.Category, len(s.categories))
	for i, c := range s.categories {
		views[i] = classify.Category{ID: c.ID, Name: c.Name}
	}

	res := classify.Classify(content, views)
	categoryID := res.CategoryID
	if categoryID == classify.FallbackCategoryID {
		// No categories exist yet; materialize the sentinel so the note
		// still resolves.
		categoryID = s.ensureUncategorizedLocked().ID
	}

	n := Note{
		ID:         uuid.NewString(),
		Content:    content,
		CategoryID: categoryID,
		CreatedAt:  time.Now(),
		Icon:       res.Icon,
	}
	s.notes = append([]Note{n}, s.notes...)
	return n, nil
}

// AddNoteExplicit inserts a note into the given category, bypassing
// classification. The note carries the default icon.
func (s *Store) AddNoteExplicit(content, categoryID string) (Note, error) {
	if strings.TrimSpace(content) == "" {
		return Note{}, fmt.Errorf("%w: note content is empty", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.categoryExistsLocked(categoryID) {
		return Note{}, fmt.Errorf("%w: %s", ErrReference, categoryID)
	}

	n := Note{
		ID:         uuid.NewString(),
		Content:    content,
		CategoryID: categoryID,
		CreatedAt:  time.Now(),
		Icon:       icons.Default,
	}
	s.notes = append([]Note{n}, s.notes...)
	return n, nil
}

// UpdateNote replaces only the supplied fields of an existing note.
// ID, CreatedAt, and ordering position never change.
func (s *Store) UpdateNote(id string, content, categoryID *string) (Note, error) {
	if content != nil && strings.TrimSpace(*content) == "" {
		return Note{}, fmt.Errorf("%w: note content is empty", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.notes {
		if s.notes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if categoryID != nil && !s.categoryExistsLocked(*categoryID) {
		return Note{}, fmt.Errorf("%w: %s", ErrReference, *categoryID)
	}

	if content != nil {
		s.notes[idx].Content = *content
	}
	if categoryID != nil {
		s.notes[idx].CategoryID = *categoryID
	}
	return s.notes[idx], nil
}

// DeleteNote removes a note by id. Deleting an absent id is a no-op.
func (s *Store) DeleteNote(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return
		}
	}
}

// DeleteCategory removes a category. Its notes are reassigned to the
// Uncategorized sentinel, which is created on demand.
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.categories {
		if s.categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrReference, id)
	}
	s.categories = append(s.categories[:idx], s.categories[idx+1:]...)

	s.adoptOrphansLocked()
	return nil
}

// ListNotes returns notes in store order. An empty categoryID returns
// every note; otherwise only notes in that category, relative order
// preserved.
func (s *Store) ListNotes(categoryID string) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if categoryID == "" {
		out := make([]Note, len(s.notes))
		copy(out, s.notes)
		return out
	}

	var out []Note
	for _, n := range s.notes {
		if n.CategoryID == categoryID {
			out = append(out, n)
		}
	}
	return out
}

// GetNote returns a note by id.
func (s *Store) GetNote(id string) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Categories returns the categories in display order.
func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// ReplaceAll swaps in a full snapshot fetched from the remote service,
// then restores the referential invariant: notes whose category is not in
// the snapshot are adopted by the Uncategorized sentinel.
func (s *Store) ReplaceAll(categories []Category, notes []Note) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = make([]Category, len(categories))
	copy(s.categories, categories)
	s.notes = make([]Note, len(notes))
	copy(s.notes, notes)

	s.adoptOrphansLocked()
}

func (s *Store) categoryExistsLocked(id string) bool {
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) ensureUncategorizedLocked() Category {
	for _, c := range s.categories {
		if c.Name == UncategorizedName {
			return c
		}
	}
	c := Category{
		ID:          uuid.NewString(),
		Name:        UncategorizedName,
		Description: "Notes that lost their original category or need review.",
		Color:       "gray-500",
	}
	s.categories = append(s.categories, c)
	return c
}

func (s *Store) adoptOrphansLocked() {
	present := make(map[string]bool, len(s.categories))
	for _, c := range s.categories {
		present[c.ID] = true
	}

	for i := range s.notes {
		if !present[s.notes[i].CategoryID] {
			sentinel := s.ensureUncategorizedLocked()
			present[sentinel.ID] = true
			s.notes[i].CategoryID = sentinel.ID
		}
	}
}
