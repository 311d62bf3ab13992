package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeStatusEmail notifies an employee that a submission was
	// approved or rejected.
	TaskTypeStatusEmail = "timesheet:status_email"
)

// StatusEmailPayload carries everything the mail worker needs; the worker
// never reads the database.
type StatusEmailPayload struct {
	To           string `json:"to"`
	EmployeeName string `json:"employeeName"`
	TimesheetID  string `json:"timesheetId"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Status       string `json:"status"`
	Comments     string `json:"comments,omitempty"`
}

// NewStatusEmailTask constructs an Asynq task.
func NewStatusEmailTask(payload StatusEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeStatusEmail, data), nil
}

// StatusEmailHandler processes TaskTypeStatusEmail tasks via a Mailer.
func StatusEmailHandler(mailer Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload StatusEmailPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.To == "" {
			return asynq.SkipRetry
		}

		subject := fmt.Sprintf("Timesheet %s to %s: %s", payload.StartDate, payload.EndDate, payload.Status)
		body := fmt.Sprintf("Hi %s,\n\nyour timesheet for %s to %s is now %s.",
			payload.EmployeeName, payload.StartDate, payload.EndDate, payload.Status)
		if payload.Comments != "" {
			body += fmt.Sprintf("\n\nManager comments: %s", payload.Comments)
		}
		body += "\n\nTimesheet Hub"

		return mailer.Send(ctx, payload.To, subject, body)
	}
}
