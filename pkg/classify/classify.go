// Package classify maps raw note text to a category and a display icon
// using static, priority-ordered keyword rules.
//
// The rule tables are compiled once at init into Aho-Corasick automatons,
// so a single O(n) scan answers "which rules matched" regardless of how
// many keywords the tables hold. Classification is pure and deterministic:
// identical inputs always produce identical results, and the engine never
// fails — unmatched input degrades to the fallback category and icon.
package classify

import (
	"strings"

	"github.com/coregx/ahocorasick"

	"github.com/notenest/notenest/pkg/icons"
)

// Category is the minimal category view the engine needs from a caller.
type Category struct {
	ID   string
	Name string
}

// Result is a classification outcome.
type Result struct {
	CategoryID string
	Icon       icons.Token
}

// FallbackCategoryID is returned when no category rule matched and the
// caller supplied an empty category list. Callers that enforce referential
// integrity must resolve it to a real category before storing a note.
const FallbackCategoryID = "uncategorized"

// ruleMatcher is a compiled rule table: one automaton over every keyword,
// plus a pattern→rule mapping so matches resolve to table positions.
type ruleMatcher struct {
	ac    *ahocorasick.Automaton
	owner []int // pattern index -> rule index
	rules int
}

var (
	iconMatcher     ruleMatcher
	categoryMatcher ruleMatcher
)

func init() {
	var iconKeywords, categoryKeywords [][]string
	for _, r := range iconRules {
		iconKeywords = append(iconKeywords, r.keywords)
	}
	for _, r := range categoryRules {
		categoryKeywords = append(categoryKeywords, r.keywords)
	}
	iconMatcher = compile(iconKeywords)
	categoryMatcher = compile(categoryKeywords)
}

// compile builds an automaton over a rule table's keywords. The tables are
// static, so a build failure is a programming error and panics at init.
func compile(keywordSets [][]string) ruleMatcher {
	var patterns []string
	var owner []int
	for i, set := range keywordSets {
		for _, kw := range set {
			patterns = append(patterns, kw)
			owner = append(owner, i)
		}
	}

	ac, err := ahocorasick.NewBuilder().
		AddStrings(patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		panic("classify: compile rule table: " + err.Error())
	}

	return ruleMatcher{ac: ac, owner: owner, rules: len(keywordSets)}
}

// hits scans the haystack and reports, per rule, whether any of its
// keywords occurred. Which keyword hit is irrelevant; any hit fires the rule.
func (m ruleMatcher) hits(haystack []byte) []bool {
	matched := make([]bool, m.rules)
	for _, hit := range m.ac.FindAllOverlapping(haystack) {
		matched[m.owner[hit.PatternID]] = true
	}
	return matched
}

// Classify resolves note content to a category id and icon.
//
// Two passes run over the lowercased content. The generic pass picks a
// baseline icon from the first matching icon rule. The category pass then
// scans the category rules in priority order; the first rule whose keyword
// matched AND whose named category exists in the supplied list wins, and
// its fixed icon overrides the baseline. A matching rule whose category is
// absent is skipped without consuming the match. If no category rule
// fires, the note lands in the first supplied category (or the fallback
// sentinel when the list is empty) with the baseline icon.
func Classify(content string, categories []Category) Result {
	haystack := []byte(strings.ToLower(content))

	icon := icons.Default
	for i, hit := range iconMatcher.hits(haystack) {
		if hit {
			icon = iconRules[i].icon
			break
		}
	}

	// First occurrence wins on duplicate names; stores are expected to
	// reject duplicates anyway.
	byName := make(map[string]string, len(categories))
	for _, c := range categories {
		if _, ok := byName[c.Name]; !ok {
			byName[c.Name] = c.ID
		}
	}

	for i, hit := range categoryMatcher.hits(haystack) {
		if !hit {
			continue
		}
		if id, ok := byName[categoryRules[i].category]; ok {
			return Result{CategoryID: id, Icon: categoryRules[i].icon}
		}
	}

	if len(categories) == 0 {
		return Result{CategoryID: FallbackCategoryID, Icon: icon}
	}
	return Result{CategoryID: categories[0].ID, Icon: icon}
}
