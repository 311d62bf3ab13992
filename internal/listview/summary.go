package listview

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mtl-hr/timesheet-hub/internal/timesheets"
)

// Field is one label/value pair of the submission confirmation view.
type Field struct {
	Label string
	Value string
}

var titleCaser = cases.Title(language.English)

// Summary renders a record as the ordered label/value pairs shown before the
// final submit. Enumerated values are title-cased for display, the on-call
// flag becomes Yes/No and an absent description renders as N/A.
func Summary(ts timesheets.Timesheet) []Field {
	onCall := "No"
	if ts.OnCallSupport {
		onCall = "Yes"
	}
	description := ts.TaskDescription
	if description == "" {
		description = "N/A"
	}

	return []Field{
		{Label: "Start Date", Value: ts.StartDate.Format(timesheets.DateFormat)},
		{Label: "End Date", Value: ts.EndDate.Format(timesheets.DateFormat)},
		{Label: "Number Of Hours", Value: formatHours(ts.NumberOfHours)},
		{Label: "Extra Hours", Value: formatHours(ts.ExtraHours)},
		{Label: "Total Hours", Value: formatHours(ts.TotalHours())},
		{Label: "Client Name", Value: ts.ClientName},
		{Label: "Project Name", Value: ts.ProjectName},
		{Label: "Task Type", Value: titleCaser.String(ts.TaskType)},
		{Label: "Work Location", Value: titleCaser.String(ts.WorkLocation)},
		{Label: "Reporting Manager", Value: ts.ReportingManager},
		{Label: "On-Call Support", Value: onCall},
		{Label: "Task Description", Value: description},
	}
}

func formatHours(v float64) string {
	return fmt.Sprintf("%g", v)
}
