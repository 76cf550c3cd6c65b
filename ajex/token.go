package ajex

import "fmt"

type TokenKind int

const (
	TokenInvalid TokenKind = iota
	TokenOpen
	TokenClose
	TokenMeta
	TokenEntry
	TokenComment
)

var tokenKindNames = map[TokenKind]string{
	TokenInvalid: "INVALID",
	TokenOpen:    "OPEN",
	TokenClose:   "CLOSE",
	TokenMeta:    "META",
	TokenEntry:   "ENTRY",
	TokenComment: "COMMENT",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is one directive line. IDs are assigned in emission order starting
// at zero. Line is the 1-based source line the token was read from.
type Token struct {
	ID   int
	Kind TokenKind
	Text string
	Line int
}

func (t Token) String() string {
	return fmt.Sprintf("%d %s %q", t.ID, t.Kind, t.Text)
}
