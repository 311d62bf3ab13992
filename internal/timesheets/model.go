package timesheets

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle stage of a timesheet.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Terminal reports whether no further transition exists out of s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// Date is a calendar date serialized as "2006-01-02".
type Date struct {
	time.Time
}

// NewDate builds a Date truncated to the day.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a wire-format calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateFormat) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Timesheet is one employee's submission for a date range.
type Timesheet struct {
	ID                 uuid.UUID  `json:"id"`
	StartDate          Date       `json:"startDate"`
	EndDate            Date       `json:"endDate"`
	NumberOfHours      float64    `json:"numberOfHours"`
	ExtraHours         float64    `json:"extraHours"`
	TotalNumberOfHours float64    `json:"totalNumberOfHours"`
	ClientName         string     `json:"clientName"`
	ProjectName        string     `json:"projectName"`
	TaskType           string     `json:"taskType"`
	WorkLocation       string     `json:"workLocation"`
	ReportingManager   string     `json:"reportingManager"`
	OnCallSupport      bool       `json:"onCallSupport"`
	TaskDescription    string     `json:"taskDescription,omitempty"`
	EmployeeID         string     `json:"employeeId"`
	EmployeeName       string     `json:"employeeName"`
	EmailID            string     `json:"emailId,omitempty"`
	ManagerID          string     `json:"managerId"`
	Status             Status     `json:"status"`
	Comments           *string    `json:"comments,omitempty"`
	SubmissionDate     time.Time  `json:"submissionDate"`
	ApprovedAt         *time.Time `json:"approvedAt,omitempty"`
	RejectedAt         *time.Time `json:"rejectedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// TotalHours derives the displayed weekly total. Never stored independently
// of its inputs.
func (t *Timesheet) TotalHours() float64 {
	return t.NumberOfHours + t.ExtraHours
}

// Counts are the derived per-status totals for a collection.
type Counts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// CountByStatus folds the collection into per-status totals.
func CountByStatus(records []Timesheet) Counts {
	c := Counts{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case StatusPending:
			c.Pending++
		case StatusApproved:
			c.Approved++
		case StatusRejected:
			c.Rejected++
		}
	}
	return c
}

// TaskTypes is the fixed option set offered by the submission form.
var TaskTypes = []string{
	"development", "design", "testing", "documentation", "research",
	"administration", "training", "support", "consulting", "maintenance",
	"meeting", "other",
}

// WorkLocations is the fixed option set offered by the submission form.
var WorkLocations = []string{
	"office", "home", "client", "co-working space", "field", "hybrid",
	"on-site", "temporary location", "mobile",
}

// ValidTaskType reports whether v is a member of the task type option set.
func ValidTaskType(v string) bool {
	return contains(TaskTypes, v)
}

// ValidWorkLocation reports whether v is a member of the work location option set.
func ValidWorkLocation(v string) bool {
	return contains(WorkLocations, v)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
