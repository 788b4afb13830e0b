package layout

import "github.com/samber/lo"

// Side is the print side a page label marks
type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

// IsPageStart reports whether the record at index opens a new page
func IsPageStart(index, perPage int) bool {
	return index%perPage == 0
}

// IsPageEnd reports whether the record at index fills the last cell of its page
func IsPageEnd(index, perPage int) bool {
	return (index+1)%perPage == 0
}

// PageCount is the number of pages n records occupy. An empty catalog still
// gets one finalized page.
func PageCount(n, perPage int) int {
	if n <= 0 {
		return 1
	}
	return (n + perPage - 1) / perPage
}

// LabelSide is right on odd pages and left on even pages
func LabelSide(page int) Side {
	return lo.Ternary(page%2 == 0, Left, Right)
}

// Label is the side label rectangle of a page, vertically centered against
// the inner edge of the bleed guide.
func Label(page int, cfg PageGridConfig) Rect {
	trim := cfg.Trim()
	y := trim.Y + (trim.Height-LabelHeight)/2
	if LabelSide(page) == Left {
		return Rect{X: trim.X, Y: y, Width: LabelWidth, Height: LabelHeight}
	}
	return Rect{X: trim.X + trim.Width - LabelWidth, Y: y, Width: LabelWidth, Height: LabelHeight}
}

// PageState tracks the page being filled. Between records ItemsOnPage is
// always in [0, perPage).
type PageState struct {
	PageNumber  int `json:"page_number"`
	ItemsOnPage int `json:"items_on_page"`
	perPage     int
	open        bool
}

// NewPageState returns the state before the first page is started
func NewPageState(perPage int) *PageState {
	return &PageState{perPage: perPage}
}

// Open reports whether a page has been started and not yet finalized
func (s *PageState) Open() bool {
	return s.open
}

// StartPage moves to the next page
func (s *PageState) StartPage() {
	s.PageNumber++
	s.ItemsOnPage = 0
	s.open = true
}

// Place records one item on the current page and reports whether the page is
// now full and must be finalized.
func (s *PageState) Place() (full bool) {
	s.ItemsOnPage++
	if s.ItemsOnPage == s.perPage {
		s.ItemsOnPage = 0
		return true
	}
	return false
}

// EndPage closes the current page
func (s *PageState) EndPage() {
	s.open = false
}
