package timesheets

// Draft carries the submission form fields as entered. Everything arrives as
// strings from the form boundary; ParseDraft converts and checks them.
type Draft struct {
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	NumberOfHours    string `json:"numberOfHours"`
	ExtraHours       string `json:"extraHours"`
	ClientName       string `json:"clientName"`
	ProjectName      string `json:"projectName"`
	TaskType         string `json:"taskType"`
	WorkLocation     string `json:"workLocation"`
	ReportingManager string `json:"reportingManager"`
	OnCallSupport    string `json:"onCallSupport"`
	TaskDescription  string `json:"taskDescription"`
}

// CreateTimesheetRequest is a draft plus the identity fields the client
// injects at submission time. SubmissionDate is the client's ISO-8601
// timestamp; the service falls back to its own clock when absent.
type CreateTimesheetRequest struct {
	Draft
	EmployeeID     string `json:"employeeId" validate:"required"`
	EmployeeName   string `json:"employeeName" validate:"required"`
	EmailID        string `json:"emailId"`
	ManagerID      string `json:"managerId" validate:"required"`
	SubmissionDate string `json:"SubmissionDate"`
}

// UpdateTimesheetRequest replaces the draft fields of a pending record.
type UpdateTimesheetRequest struct {
	Draft
}
