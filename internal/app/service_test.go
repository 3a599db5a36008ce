package app

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/notenest/notenest/internal/gateway"
	"github.com/notenest/notenest/internal/repo"
	"github.com/notenest/notenest/internal/server"
	"github.com/notenest/notenest/pkg/icons"
)

func newService(t *testing.T) (*Service, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r, err := repo.Open(":memory:")
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	ts := httptest.NewServer(server.New(r, nil).Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = r.Close()
	})

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(gateway.New(ts.URL, "svc-owner"), quiet), ts
}

func TestServiceSmartNoteSync(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	note, err := svc.AddNoteSmart(ctx, "Buy groceries for the week")
	if err != nil {
		t.Fatalf("AddNoteSmart: %v", err)
	}
	if note.Content != "Buy groceries for the week" {
		t.Errorf("note = %+v", note)
	}
	// Remote records carry no icon, so the local view shows the default.
	if note.Icon != icons.Default {
		t.Errorf("icon = %s, want default", note.Icon)
	}

	// The refresh pulled the seeded categories into the local cache.
	categories := svc.Store().Categories()
	if len(categories) != 5 {
		t.Fatalf("cached categories = %d, want 5", len(categories))
	}

	notes := svc.Store().ListNotes("")
	if len(notes) != 1 || notes[0].ID != note.ID {
		t.Fatalf("cached notes = %+v", notes)
	}
}

func TestServiceUpdateAndArchive(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	note, err := svc.AddNoteSmart(ctx, "learn go generics")
	if err != nil {
		t.Fatal(err)
	}

	var workID string
	for _, c := range svc.Store().Categories() {
		if c.Name == "Work" {
			workID = c.ID
		}
	}
	if err := svc.UpdateNote(ctx, note.ID, "learn go generics at work", workID); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	got, err := svc.Store().GetNote(note.ID)
	if err != nil || got.CategoryID != workID {
		t.Errorf("after update: %+v (err=%v)", got, err)
	}

	if err := svc.ArchiveNote(ctx, note.ID); err != nil {
		t.Fatalf("ArchiveNote: %v", err)
	}
	if _, err := svc.Store().GetNote(note.ID); err == nil {
		t.Error("archived note still in local snapshot")
	}
}

func TestServiceDeleteNoteIsOptimistic(t *testing.T) {
	svc, ts := newService(t)
	ctx := context.Background()

	note, err := svc.AddNoteSmart(ctx, "call mom tonight")
	if err != nil {
		t.Fatal(err)
	}

	// Remote goes away: the local removal still happens, and the error
	// surfaces.
	ts.Close()
	if err := svc.DeleteNote(ctx, note.ID); err == nil {
		t.Fatal("expected error deleting with remote down")
	}
	if _, err := svc.Store().GetNote(note.ID); err == nil {
		t.Error("note not removed locally")
	}
}

func TestServiceCategoryLifecycle(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.AddNoteSmart(ctx, "seed the account"); err != nil {
		t.Fatal(err)
	}

	cat, err := svc.AddCategory(ctx, "Recipes", "Cooking notes", "emerald-500")
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if got := len(svc.Store().Categories()); got != 6 {
		t.Fatalf("categories after add = %d, want 6", got)
	}

	if err := svc.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	for _, c := range svc.Store().Categories() {
		if c.ID == cat.ID {
			t.Error("deleted category still cached")
		}
	}
}

func TestServiceMutationFailureLeavesCacheIntact(t *testing.T) {
	svc, ts := newService(t)
	ctx := context.Background()

	note, err := svc.AddNoteSmart(ctx, "finish the report")
	if err != nil {
		t.Fatal(err)
	}
	before := svc.Store().ListNotes("")

	ts.Close()
	if err := svc.UpdateNote(ctx, note.ID, "changed", ""); err == nil {
		t.Fatal("expected error with remote down")
	}

	after := svc.Store().ListNotes("")
	if len(after) != len(before) || after[0].Content != before[0].Content {
		t.Errorf("cache changed after failed mutation: %+v", after)
	}
}
