package timesheets

import (
	"strconv"
	"strings"
)

// Messages shown to the submitter. The aggregate message is intentionally a
// single sentence rather than a per-field enumeration; the form clears it on
// the next keystroke.
const (
	msgInvalidDraft = "Please fill all required fields correctly."
	msgDateOrder    = " Ensure that the start date is before the end date."
)

// ValidationError is a recoverable draft failure. Its message is shown to the
// user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidDraft is a draft whose fields have been parsed and checked.
type ValidDraft struct {
	StartDate        Date
	EndDate          Date
	NumberOfHours    float64
	ExtraHours       float64
	ClientName       string
	ProjectName      string
	TaskType         string
	WorkLocation     string
	ReportingManager string
	OnCallSupport    bool
	TaskDescription  string
}

// ParseDraft checks a draft and converts it into its typed form. It is pure:
// the caller owns all state. On failure it returns a *ValidationError with a
// single aggregate message; the date-order sentence is appended to the
// generic one when the range is inverted or unparseable.
func ParseDraft(d Draft) (*ValidDraft, error) {
	ok := true

	required := []string{
		d.StartDate, d.EndDate, d.ClientName, d.ProjectName,
		d.TaskType, d.WorkLocation, d.ReportingManager, d.OnCallSupport,
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			ok = false
		}
	}

	hours, err := parseNonNegative(d.NumberOfHours)
	if err != nil {
		ok = false
	}

	var extra float64
	if strings.TrimSpace(d.ExtraHours) != "" {
		extra, err = parseNonNegative(d.ExtraHours)
		if err != nil {
			ok = false
		}
	}

	onCall, err := strconv.ParseBool(strings.TrimSpace(d.OnCallSupport))
	if err != nil && strings.TrimSpace(d.OnCallSupport) != "" {
		ok = false
	}

	if d.TaskType != "" && !ValidTaskType(d.TaskType) {
		ok = false
	}
	if d.WorkLocation != "" && !ValidWorkLocation(d.WorkLocation) {
		ok = false
	}

	datesOK := true
	start, startErr := ParseDate(strings.TrimSpace(d.StartDate))
	end, endErr := ParseDate(strings.TrimSpace(d.EndDate))
	if startErr != nil || endErr != nil || start.After(end.Time) {
		datesOK = false
	}

	if !ok || !datesOK {
		msg := msgInvalidDraft
		if !datesOK {
			msg += msgDateOrder
		}
		return nil, &ValidationError{Message: msg}
	}

	return &ValidDraft{
		StartDate:        start,
		EndDate:          end,
		NumberOfHours:    hours,
		ExtraHours:       extra,
		ClientName:       strings.TrimSpace(d.ClientName),
		ProjectName:      strings.TrimSpace(d.ProjectName),
		TaskType:         d.TaskType,
		WorkLocation:     d.WorkLocation,
		ReportingManager: strings.TrimSpace(d.ReportingManager),
		OnCallSupport:    onCall,
		TaskDescription:  strings.TrimSpace(d.TaskDescription),
	}, nil
}

// parseNonNegative rejects empty, non-numeric and negative values.
func parseNonNegative(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, strconv.ErrRange
	}
	return v, nil
}
