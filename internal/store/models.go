// Package store owns the in-memory note and category collections.
// It is the sole mutator of both and enforces referential integrity
// between notes and categories.
package store

import (
	"time"

	"github.com/notenest/notenest/pkg/icons"
)

// Category is a named, colored grouping that notes belong to.
// Names are unique within a store; the classifier looks categories up
// by name, so a duplicate would make rule resolution ambiguous.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Note is a user-authored text item belonging to exactly one category.
type Note struct {
	ID         string      `json:"id"`
	Content    string      `json:"content"`
	CategoryID string      `json:"categoryId"`
	CreatedAt  time.Time   `json:"createdAt"`
	Icon       icons.Token `json:"icon"`
	Tags       []string    `json:"tags,omitempty"`
}

// UncategorizedName is the sentinel category that adopts notes whose
// original category disappeared.
const UncategorizedName = "Uncategorized"
