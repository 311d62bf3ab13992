package timesheets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	return Draft{
		StartDate:        "2026-08-24",
		EndDate:          "2026-08-28",
		NumberOfHours:    "40",
		ExtraHours:       "2",
		ClientName:       "Northwind",
		ProjectName:      "Billing Portal",
		TaskType:         "development",
		WorkLocation:     "office",
		ReportingManager: "Dana Whitfield",
		OnCallSupport:    "false",
		TaskDescription:  "Sprint work",
	}
}

func TestParseDraftValid(t *testing.T) {
	parsed, err := ParseDraft(validDraft())
	require.NoError(t, err)
	assert.Equal(t, 40.0, parsed.NumberOfHours)
	assert.Equal(t, 2.0, parsed.ExtraHours)
	assert.False(t, parsed.OnCallSupport)
	assert.Equal(t, "2026-08-24", parsed.StartDate.Format(DateFormat))
}

func TestParseDraftMissingRequiredField(t *testing.T) {
	fields := map[string]func(*Draft){
		"startDate":        func(d *Draft) { d.StartDate = "" },
		"endDate":          func(d *Draft) { d.EndDate = "  " },
		"numberOfHours":    func(d *Draft) { d.NumberOfHours = "" },
		"clientName":       func(d *Draft) { d.ClientName = "" },
		"projectName":      func(d *Draft) { d.ProjectName = " " },
		"taskType":         func(d *Draft) { d.TaskType = "" },
		"workLocation":     func(d *Draft) { d.WorkLocation = "" },
		"reportingManager": func(d *Draft) { d.ReportingManager = "" },
		"onCallSupport":    func(d *Draft) { d.OnCallSupport = "" },
	}
	for name, clear := range fields {
		t.Run(name, func(t *testing.T) {
			draft := validDraft()
			clear(&draft)
			_, err := ParseDraft(draft)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Message, "Please fill all required fields correctly.")
		})
	}
}

func TestParseDraftDateOrder(t *testing.T) {
	draft := validDraft()
	draft.StartDate = "2026-08-28"
	draft.EndDate = "2026-08-24"
	_, err := ParseDraft(draft)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start date is before the end date")
}

func TestParseDraftUnparseableDateMentionsOrdering(t *testing.T) {
	draft := validDraft()
	draft.StartDate = "not-a-date"
	_, err := ParseDraft(draft)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start date is before the end date")
}

func TestParseDraftEqualDatesAllowed(t *testing.T) {
	draft := validDraft()
	draft.StartDate = "2026-08-24"
	draft.EndDate = "2026-08-24"
	_, err := ParseDraft(draft)
	assert.NoError(t, err)
}

func TestParseDraftHours(t *testing.T) {
	cases := []struct {
		name  string
		hours string
		ok    bool
	}{
		{"integer", "40", true},
		{"decimal", "37.5", true},
		{"zero", "0", true},
		{"negative", "-1", false},
		{"non numeric", "forty", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			draft.NumberOfHours = tc.hours
			_, err := ParseDraft(draft)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseDraftNegativeExtraHours(t *testing.T) {
	draft := validDraft()
	draft.ExtraHours = "-3"
	_, err := ParseDraft(draft)
	assert.Error(t, err)
}

func TestParseDraftEmptyExtraHoursAllowed(t *testing.T) {
	draft := validDraft()
	draft.ExtraHours = ""
	parsed, err := ParseDraft(draft)
	require.NoError(t, err)
	assert.Zero(t, parsed.ExtraHours)
}

func TestParseDraftEnumMembership(t *testing.T) {
	draft := validDraft()
	draft.TaskType = "golfing"
	_, err := ParseDraft(draft)
	assert.Error(t, err)

	draft = validDraft()
	draft.WorkLocation = "moon"
	_, err = ParseDraft(draft)
	assert.Error(t, err)
}

func TestParseDraftAggregateMessageIsSingle(t *testing.T) {
	draft := validDraft()
	draft.ClientName = ""
	draft.ProjectName = ""
	draft.NumberOfHours = "abc"
	_, err := ParseDraft(draft)
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(err.Error(), "Please fill all required fields correctly."))
}

func TestOptionSets(t *testing.T) {
	assert.Len(t, TaskTypes, 12)
	assert.Len(t, WorkLocations, 9)
	assert.True(t, ValidTaskType("meeting"))
	assert.True(t, ValidWorkLocation("co-working space"))
	assert.False(t, ValidTaskType("Meeting"))
}
