package classify

import (
	"testing"

	"github.com/notenest/notenest/pkg/icons"
)

// defaultCategories mirrors the stock category set a fresh owner gets.
func defaultCategories() []Category {
	return []Category{
		{ID: "c-work", Name: "Work"},
		{ID: "c-personal", Name: "Personal"},
		{ID: "c-ideas", Name: "Ideas"},
		{ID: "c-todo", Name: "To-Do"},
		{ID: "c-learning", Name: "Learning"},
	}
}

func TestClassifyCategoryRules(t *testing.T) {
	cases := []struct {
		name     string
		content  string
		wantID   string
		wantIcon icons.Token
	}{
		{"work keyword", "Prepare slides for work tomorrow", "c-work", icons.Briefcase},
		{"work beats calendar icon", "Schedule team meeting for kickoff", "c-work", icons.Briefcase},
		{"buy routes to todo", "Buy groceries: milk, eggs", "c-todo", icons.ShoppingCart},
		{"idea routes to ideas", "App idea: plant watering reminder", "c-ideas", icons.Lightbulb},
		{"learning", "Study the new course on databases", "c-learning", icons.BookOpen},
		{"personal", "Remember to call mom this weekend", "c-personal", icons.Heart},
		{"case insensitive", "URGENT WORK ITEM", "c-work", icons.Briefcase},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.content, defaultCategories())
			if got.CategoryID != tc.wantID {
				t.Errorf("category = %s, want %s", got.CategoryID, tc.wantID)
			}
			if got.Icon != tc.wantIcon {
				t.Errorf("icon = %s, want %s", got.Icon, tc.wantIcon)
			}
		})
	}
}

func TestClassifyGenericIconWhenNoCategoryRule(t *testing.T) {
	cats := []Category{{ID: "c0", Name: "Misc"}, {ID: "c1", Name: "Other"}}

	got := Classify("Purchase tickets for the concert", cats)
	if got.CategoryID != "c0" {
		t.Errorf("expected fallback to first category, got %s", got.CategoryID)
	}
	if got.Icon != icons.ShoppingCart {
		t.Errorf("icon = %s, want %s", got.Icon, icons.ShoppingCart)
	}
}

func TestClassifyFallbackDefaults(t *testing.T) {
	cats := []Category{{ID: "c0", Name: "Misc"}}

	got := Classify("nothing matches here at all", cats)
	if got.CategoryID != "c0" {
		t.Errorf("expected c0, got %s", got.CategoryID)
	}
	if got.Icon != icons.Default {
		t.Errorf("icon = %s, want default %s", got.Icon, icons.Default)
	}
}

func TestClassifyEmptyCategoryList(t *testing.T) {
	got := Classify("work on the report", nil)
	if got.CategoryID != FallbackCategoryID {
		t.Errorf("expected sentinel id, got %s", got.CategoryID)
	}
}

func TestClassifyMissingCategorySkipsRule(t *testing.T) {
	// "design" matches the Ideas rule, but Ideas is absent: the scan must
	// continue and land on To-Do via "finish".
	cats := []Category{
		{ID: "c-work", Name: "Work"},
		{ID: "c-todo", Name: "To-Do"},
	}

	got := Classify("finish the design", cats)
	if got.CategoryID != "c-todo" {
		t.Errorf("category = %s, want c-todo", got.CategoryID)
	}
	if got.Icon != icons.ShoppingCart {
		t.Errorf("icon = %s, want %s", got.Icon, icons.ShoppingCart)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	cats := defaultCategories()
	first := Classify("Schedule team meeting for kickoff", cats)
	for i := 0; i < 10; i++ {
		if got := Classify("Schedule team meeting for kickoff", cats); got != first {
			t.Fatalf("call %d returned %+v, first call returned %+v", i, got, first)
		}
	}
}
