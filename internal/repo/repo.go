// Package repo provides SQLite-backed persistence for the NoteNest
// service. Uses ncruces/go-sqlite3/driver which provides a database/sql
// interface.
package repo

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Repo errors. Handlers map these onto HTTP statuses.
var (
	ErrInvalid         = errors.New("invalid request")
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateName   = errors.New("category name already exists")
	ErrUnknownCategory = errors.New("category does not exist")
)

// Note is a persisted note record. JSON tags follow the wire contract.
type Note struct {
	ID         string    `json:"_id"`
	OwnerID    string    `json:"user_id"`
	CategoryID string    `json:"category_id"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Archived   bool      `json:"archived"`
	IsReminder bool      `json:"is_reminder"`
}

// Category is a persisted category record.
type Category struct {
	ID          string `json:"_id"`
	OwnerID     string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ColorCode   string `json:"color_code,omitempty"`
}

// CategorySummary is one row of the per-owner analytics aggregation.
type CategorySummary struct {
	CategoryName string `json:"category_name"`
	NoteCount    int    `json:"note_count"`
	ColorCode    string `json:"color_code,omitempty"`
}

// UncategorizedName is the per-owner fallback category that adopts notes
// whose category is deleted.
const UncategorizedName = "Uncategorized"

const schema = `
CREATE TABLE IF NOT EXISTS categories (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT,
    color_code TEXT,
    created_at INTEGER NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_owner_name ON categories(owner_id, name);

CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    category_id TEXT NOT NULL,
    content TEXT NOT NULL,
    tags TEXT,
    archived INTEGER DEFAULT 0,
    is_reminder INTEGER DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_owner ON notes(owner_id);
CREATE INDEX IF NOT EXISTS idx_notes_category ON notes(category_id);
CREATE INDEX IF NOT EXISTS idx_notes_created ON notes(created_at DESC);
`

// Repo is the SQLite-backed data store. Safe for concurrent handlers.
type Repo struct {
	mu sync.RWMutex
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for tests.
func Open(path string) (*Repo, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Repo{db: db}, nil
}

// Close closes the database connection.
func (r *Repo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ─── Categories ──────────────────────────────────────────────────────────────

// CreateCategory inserts a category with a fresh id. The name must be
// unique per owner.
func (r *Repo) CreateCategory(ownerID, name, description, colorCode string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, fmt.Errorf("%w: category name is empty", ErrInvalid)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var exists int
	err := r.db.QueryRow(`SELECT 1 FROM categories WHERE owner_id = ? AND name = ?`, ownerID, name).Scan(&exists)
	if err == nil {
		return Category{}, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	if err != sql.ErrNoRows {
		return Category{}, err
	}

	c := Category{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		ColorCode:   colorCode,
	}
	_, err = r.db.Exec(`
		INSERT INTO categories (id, owner_id, name, description, color_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.OwnerID, c.Name, c.Description, c.ColorCode, time.Now().Unix())
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

// ListCategories returns an owner's categories in creation order.
func (r *Repo) ListCategories(ownerID string) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.Query(`
		SELECT id, owner_id, name, description, color_code
		FROM categories WHERE owner_id = ? ORDER BY created_at, rowid
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		var description, colorCode sql.NullString
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &description, &colorCode); err != nil {
			return nil, err
		}
		c.Description = description.String
		c.ColorCode = colorCode.String
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteCategory removes a category. Notes referencing it are adopted by
// the owner's Uncategorized category, which is created on demand.
func (r *Repo) DeleteCategory(categoryID, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var name string
	err := r.db.QueryRow(`SELECT name FROM categories WHERE id = ? AND owner_id = ?`, categoryID, ownerID).Scan(&name)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: category %s", ErrNotFound, categoryID)
	}
	if err != nil {
		return err
	}

	var orphans int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM notes WHERE category_id = ?`, categoryID).Scan(&orphans); err != nil {
		return err
	}
	if orphans > 0 {
		fallback, err := r.ensureUncategorizedLocked(ownerID, categoryID)
		if err != nil {
			return err
		}
		if _, err := r.db.Exec(`UPDATE notes SET category_id = ?, updated_at = ? WHERE category_id = ?`,
			fallback, time.Now().Unix(), categoryID); err != nil {
			return err
		}
	}

	_, err = r.db.Exec(`DELETE FROM categories WHERE id = ?`, categoryID)
	return err
}

// ensureUncategorizedLocked finds or creates the owner's fallback
// category. excludeID guards against resolving to the category currently
// being deleted.
func (r *Repo) ensureUncategorizedLocked(ownerID, excludeID string) (string, error) {
	var id string
	err := r.db.QueryRow(`
		SELECT id FROM categories WHERE owner_id = ? AND name = ? AND id != ?
	`, ownerID, UncategorizedName, excludeID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	id = uuid.NewString()
	_, err = r.db.Exec(`
		INSERT INTO categories (id, owner_id, name, description, color_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, ownerID, UncategorizedName,
		"Notes that lost their original category or need review.", "#808080", time.Now().Unix())
	if err != nil {
		return "", err
	}
	return id, nil
}

// ─── Notes ───────────────────────────────────────────────────────────────────

// CreateNote inserts a note with a fresh id and current timestamps.
// The referenced category must exist for the owner.
func (r *Repo) CreateNote(ownerID, categoryID, content string, tags []string) (Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.categoryExistsLocked(categoryID, ownerID); err != nil {
		return Note{}, err
	}

	now := time.Now()
	n := Note{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		CategoryID: categoryID,
		Content:    content,
		Tags:       tags,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	tagsJSON, _ := json.Marshal(n.Tags)
	_, err := r.db.Exec(`
		INSERT INTO notes (id, owner_id, category_id, content, tags, archived, is_reminder, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 0, 0, ?, ?)
	`, n.ID, n.OwnerID, n.CategoryID, n.Content, string(tagsJSON), now.Unix(), now.Unix())
	if err != nil {
		return Note{}, err
	}
	return n, nil
}

// ListNotes returns an owner's notes, newest first, filtered by archived
// state.
func (r *Repo) ListNotes(ownerID string, archived bool) ([]Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.Query(`
		SELECT id, owner_id, category_id, content, tags, archived, is_reminder, created_at, updated_at
		FROM notes WHERE owner_id = ? AND archived = ?
		ORDER BY created_at DESC, rowid DESC
	`, ownerID, boolToInt(archived))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// GetNote retrieves a note by id.
func (r *Repo) GetNote(id string) (Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getNoteLocked(id)
}

// UpdateNote replaces only the provided fields and bumps updated_at.
func (r *Repo) UpdateNote(id string, content, categoryID *string) (Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, err := r.getNoteLocked(id)
	if err != nil {
		return Note{}, err
	}

	if categoryID != nil {
		if err := r.categoryExistsLocked(*categoryID, n.OwnerID); err != nil {
			return Note{}, err
		}
		n.CategoryID = *categoryID
	}
	if content != nil {
		n.Content = *content
	}
	n.UpdatedAt = time.Now()

	_, err = r.db.Exec(`
		UPDATE notes SET content = ?, category_id = ?, updated_at = ? WHERE id = ?
	`, n.Content, n.CategoryID, n.UpdatedAt.Unix(), id)
	if err != nil {
		return Note{}, err
	}
	return n, nil
}

// ArchiveNote marks a note archived and bumps updated_at.
func (r *Repo) ArchiveNote(id, ownerID string) (Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, err := r.getNoteLocked(id)
	if err != nil {
		return Note{}, err
	}
	if n.OwnerID != ownerID {
		return Note{}, fmt.Errorf("%w: note %s", ErrNotFound, id)
	}

	n.Archived = true
	n.UpdatedAt = time.Now()
	_, err = r.db.Exec(`UPDATE notes SET archived = 1, updated_at = ? WHERE id = ?`, n.UpdatedAt.Unix(), id)
	if err != nil {
		return Note{}, err
	}
	return n, nil
}

// DeleteNote removes a note by id.
func (r *Repo) DeleteNote(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: note %s", ErrNotFound, id)
	}
	return nil
}

// ─── Analytics ───────────────────────────────────────────────────────────────

// AnalyticsSummary aggregates active note counts per category for an
// owner. Categories without notes do not appear.
func (r *Repo) AnalyticsSummary(ownerID string) ([]CategorySummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.Query(`
		SELECT c.name, COUNT(n.id), c.color_code
		FROM notes n JOIN categories c ON c.id = n.category_id
		WHERE n.owner_id = ? AND n.archived = 0
		GROUP BY c.id
		ORDER BY c.created_at, c.rowid
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategorySummary
	for rows.Next() {
		var s CategorySummary
		var colorCode sql.NullString
		if err := rows.Scan(&s.CategoryName, &s.NoteCount, &colorCode); err != nil {
			return nil, err
		}
		s.ColorCode = colorCode.String
		out = append(out, s)
	}
	return out, rows.Err()
}

// ─── Seeding ─────────────────────────────────────────────────────────────────

// defaultCategories is the stock set a fresh owner starts with.
var defaultCategories = []Category{
	{Name: "Work", Description: "Professional tasks and projects", ColorCode: "orange-500"},
	{Name: "Personal", Description: "Personal life and self-care", ColorCode: "teal-500"},
	{Name: "Ideas", Description: "Creative thoughts and brainstorms", ColorCode: "purple-500"},
	{Name: "To-Do", Description: "Action items and tasks", ColorCode: "rose-500"},
	{Name: "Learning", Description: "Study notes and knowledge", ColorCode: "amber-500"},
}

// SeedDefaults creates the stock categories for an owner that has none.
// Returns true if seeding happened.
func (r *Repo) SeedDefaults(ownerID string) (bool, error) {
	existing, err := r.ListCategories(ownerID)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	for _, c := range defaultCategories {
		if _, err := r.CreateCategory(ownerID, c.Name, c.Description, c.ColorCode); err != nil {
			return false, err
		}
	}
	return true, nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (r *Repo) categoryExistsLocked(categoryID, ownerID string) error {
	var exists int
	err := r.db.QueryRow(`SELECT 1 FROM categories WHERE id = ? AND owner_id = ?`, categoryID, ownerID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, categoryID)
	}
	return err
}

func (r *Repo) getNoteLocked(id string) (Note, error) {
	row := r.db.QueryRow(`
		SELECT id, owner_id, category_id, content, tags, archived, is_reminder, created_at, updated_at
		FROM notes WHERE id = ?
	`, id)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return Note{}, fmt.Errorf("%w: note %s", ErrNotFound, id)
	}
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (Note, error) {
	var n Note
	var tagsJSON sql.NullString
	var archived, isReminder int
	var createdAt, updatedAt int64

	err := row.Scan(&n.ID, &n.OwnerID, &n.CategoryID, &n.Content, &tagsJSON,
		&archived, &isReminder, &createdAt, &updatedAt)
	if err != nil {
		return Note{}, err
	}

	n.Archived = archived != 0
	n.IsReminder = isReminder != 0
	n.CreatedAt = time.Unix(createdAt, 0).UTC()
	n.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &n.Tags); err != nil {
			return Note{}, fmt.Errorf("decode tags for note %s: %w", n.ID, err)
		}
	}
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
