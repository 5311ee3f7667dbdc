package metrics

import (
	"time"

	"github.com/minsukang/investlog-backend/internal/domain"
)

// Window selects how much trailing history the chart shows.
type Window string

const (
	WindowAll Window = "all"
	Window1Y  Window = "1y"
	Window3Y  Window = "3y"
)

// ParseWindow maps a raw selector string to a Window.
// Unrecognized values fall back to WindowAll, the most permissive default,
// rather than erroring.
func ParseWindow(s string) Window {
	switch Window(s) {
	case Window1Y:
		return Window1Y
	case Window3Y:
		return Window3Y
	default:
		return WindowAll
	}
}

// Start returns the inclusive lower-bound date of the window relative to now.
// ok is false for WindowAll, which has no lower bound. The boundary is
// computed fresh on every call, so a window evaluated across a day boundary
// shifts with it; that is expected behavior.
func (w Window) Start(now time.Time) (string, bool) {
	switch w {
	case Window1Y:
		return now.AddDate(-1, 0, 0).Format(domain.DateLayout), true
	case Window3Y:
		return now.AddDate(-3, 0, 0).Format(domain.DateLayout), true
	default:
		return "", false
	}
}
