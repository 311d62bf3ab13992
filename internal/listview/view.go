package listview

import (
	"github.com/mtl-hr/timesheet-hub/internal/timesheets"
)

// StatusFilter narrows the visible records by lifecycle status.
type StatusFilter string

const (
	FilterAll      StatusFilter = "ALL"
	FilterPending  StatusFilter = StatusFilter(timesheets.StatusPending)
	FilterApproved StatusFilter = StatusFilter(timesheets.StatusApproved)
	FilterRejected StatusFilter = StatusFilter(timesheets.StatusRejected)
)

// Matches reports whether a record passes the filter.
func (f StatusFilter) Matches(ts timesheets.Timesheet) bool {
	return f == FilterAll || f == "" || timesheets.Status(f) == ts.Status
}

// Page is one visible slice of the filtered collection. From and To are
// 1-based positions within the filtered set; both are 0 for an empty page.
type Page struct {
	Records      []timesheets.Timesheet
	TotalPages   int
	From         int
	To           int
	ShowControls bool
}

// View derives the visible page. Filtering always applies to the full
// collection before slicing. A page beyond TotalPages yields an empty page,
// and an empty filtered set yields TotalPages 0 with controls suppressed.
func View(records []timesheets.Timesheet, filter StatusFilter, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = pageSizeDefault
	}

	var filtered []timesheets.Timesheet
	for _, r := range records {
		if filter.Matches(r) {
			filtered = append(filtered, r)
		}
	}

	total := len(filtered)
	if total == 0 {
		return Page{}
	}

	totalPages := (total + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}

	from := (page - 1) * pageSize
	if from >= total {
		return Page{TotalPages: totalPages, ShowControls: true}
	}
	to := from + pageSize
	if to > total {
		to = total
	}

	return Page{
		Records:      filtered[from:to],
		TotalPages:   totalPages,
		From:         from + 1,
		To:           to,
		ShowControls: true,
	}
}
