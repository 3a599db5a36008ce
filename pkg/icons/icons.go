// Package icons defines the closed vocabulary of display icon tokens.
// The core only ever deals in tokens; mapping a token to a glyph is the
// rendering layer's problem.
package icons

// Token identifies a display icon.
type Token string

const (
	Briefcase    Token = "briefcase"
	Heart        Token = "heart"
	Lightbulb    Token = "lightbulb"
	CheckCircle  Token = "check-circle"
	BookOpen     Token = "book-open"
	FileText     Token = "file-text"
	ShoppingCart Token = "shopping-cart"
	Phone        Token = "phone"
	Bell         Token = "bell"
	Calendar     Token = "calendar"
)

// Default is the baseline icon when no rule matches, and the substitute
// for notes ingested from the remote service (the wire contract carries
// no icon field).
const Default = FileText

var all = map[Token]bool{
	Briefcase: true, Heart: true, Lightbulb: true, CheckCircle: true,
	BookOpen: true, FileText: true, ShoppingCart: true, Phone: true,
	Bell: true, Calendar: true,
}

// Valid reports whether t belongs to the icon vocabulary.
func Valid(t Token) bool {
	return all[t]
}
