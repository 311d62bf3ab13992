// Package listview implements the shared submission list state used by the
// employee and manager screens: one store of records, derived counts, a
// filtered paginated view and the lifecycle actions permitted per record.
package listview

// Scope selects which variant of the list a controller drives. The two
// screens share one state machine and differ only by configuration.
type Scope string

const (
	ScopeEmployee Scope = "employee"
	ScopeManager  Scope = "manager"
)

// Viewport width breakpoints for the responsive page size.
const (
	widthSmall  = 576
	widthMedium = 768
)

const (
	pageSizeSmall   = 2
	pageSizeMedium  = 3
	pageSizeDefault = 5
)

// Config carries the per-scope presentation policy. Ordering and page size
// are caller policy, never store behavior.
type Config struct {
	Scope Scope
	// ViewerID is the employee or manager identity the list is keyed by.
	ViewerID string
}

// ReverseOnLoad reports whether a freshly loaded list is displayed
// most-recent-first. Only the employee screen does this.
func (c Config) ReverseOnLoad() bool {
	return c.Scope == ScopeEmployee
}

// PageSizeForWidth maps a viewport width to a page size. The employee list
// is fixed at the default size regardless of width.
func (c Config) PageSizeForWidth(width int) int {
	if c.Scope == ScopeEmployee {
		return pageSizeDefault
	}
	switch {
	case width < widthSmall:
		return pageSizeSmall
	case width < widthMedium:
		return pageSizeMedium
	default:
		return pageSizeDefault
	}
}
