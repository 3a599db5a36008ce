package classify

import "github.com/notenest/notenest/pkg/icons"

// iconRule maps trigger keywords to a baseline icon.
type iconRule struct {
	keywords []string
	icon     icons.Token
}

// categoryRule routes a note into a named category and fixes its icon.
type categoryRule struct {
	keywords []string
	category string
	icon     icons.Token
}

// Rule tables are static and priority-ordered: table order is priority
// order, and the first matching rule wins. Matching is case-insensitive
// substring containment against the note content.
var iconRules = []iconRule{
	{[]string{"buy", "get", "purchase"}, icons.ShoppingCart},
	{[]string{"call", "email", "message"}, icons.Phone},
	{[]string{"idea", "what if", "imagine"}, icons.Lightbulb},
	{[]string{"learn", "study", "read"}, icons.BookOpen},
	{[]string{"remember", "don't forget"}, icons.Bell},
	{[]string{"meeting", "schedule", "appointment"}, icons.Calendar},
	{[]string{"finish", "complete", "review"}, icons.CheckCircle},
}

// A category rule only fires when a category with that exact name exists
// in the caller's category list; otherwise the scan continues.
var categoryRules = []categoryRule{
	{[]string{"work", "project", "client", "meeting", "report", "team"}, "Work", icons.Briefcase},
	{[]string{"idea", "what if", "app", "design", "imagine"}, "Ideas", icons.Lightbulb},
	{[]string{"buy", "todo", "need to", "review", "finish"}, "To-Do", icons.ShoppingCart},
	{[]string{"learn", "study", "course", "read", "tutorial"}, "Learning", icons.BookOpen},
	{[]string{"mom", "dad", "family", "friend", "personal"}, "Personal", icons.Heart},
}
