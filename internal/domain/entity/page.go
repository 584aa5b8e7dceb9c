package entity

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// Readiness is a declarative "page is loaded" contract: every check must
// hold, and Title/URL, when set, must match the current document.
type Readiness struct {
	Name   string
	Checks []Check
	Title  string
	URL    string
}

// ScrollEdge is a window scroll target.
type ScrollEdge string

const (
	ScrollTop    ScrollEdge = "top"
	ScrollBottom ScrollEdge = "bottom"
)
