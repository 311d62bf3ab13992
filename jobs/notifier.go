package jobs

import (
	"context"

	"github.com/mtl-hr/timesheet-hub/internal/timesheets"
)

// StatusNotifier enqueues status-change emails for approved or rejected
// submissions. Records without an email address are skipped.
type StatusNotifier struct {
	client *Client
}

// NewStatusNotifier wraps a queue client as a timesheets.Notifier.
func NewStatusNotifier(client *Client) *StatusNotifier {
	return &StatusNotifier{client: client}
}

// NotifyStatusChange implements timesheets.Notifier.
func (n *StatusNotifier) NotifyStatusChange(ctx context.Context, ts *timesheets.Timesheet) error {
	if n == nil || n.client == nil || ts == nil || ts.EmailID == "" {
		return nil
	}
	payload := StatusEmailPayload{
		To:           ts.EmailID,
		EmployeeName: ts.EmployeeName,
		TimesheetID:  ts.ID.String(),
		StartDate:    ts.StartDate.Format(timesheets.DateFormat),
		EndDate:      ts.EndDate.Format(timesheets.DateFormat),
		Status:       string(ts.Status),
	}
	if ts.Comments != nil {
		payload.Comments = *ts.Comments
	}
	_, err := n.client.EnqueueStatusEmail(ctx, payload)
	return err
}
