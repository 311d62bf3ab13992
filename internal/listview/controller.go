package listview

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/mtl-hr/timesheet-hub/internal/timesheets"
)

var (
	// ErrActionInFlight is returned when an approve or reject is retriggered
	// while the previous call for the same record has not returned.
	ErrActionInFlight = errors.New("action already in flight for record")

	// ErrNoPendingReject is returned when a reject is confirmed without an
	// open reject intent.
	ErrNoPendingReject = errors.New("no reject pending confirmation")

	// ErrTerminalRecord is returned when a mutating action targets a record
	// already approved or rejected.
	ErrTerminalRecord = errors.New("record is in a terminal status")

	// ErrUnknownRecord is returned when an action targets an id the store
	// does not hold.
	ErrUnknownRecord = errors.New("record not in view")
)

// Service is the remote timesheet API the controller drives.
// *timesheets.Service satisfies it directly; HTTP clients can too.
type Service interface {
	Submit(ctx context.Context, req timesheets.CreateTimesheetRequest) (*timesheets.Timesheet, error)
	Update(ctx context.Context, id uuid.UUID, draft timesheets.Draft) (*timesheets.Timesheet, error)
	Approve(ctx context.Context, id uuid.UUID) (*timesheets.Timesheet, error)
	Reject(ctx context.Context, id uuid.UUID, comment string) (*timesheets.Timesheet, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByEmployee(ctx context.Context, employeeID string) ([]timesheets.Timesheet, error)
	ListByManager(ctx context.Context, managerID string) ([]timesheets.Timesheet, error)
}

// Actions are the mutating controls a view may expose for one record.
// Terminal records expose none.
type Actions struct {
	CanApprove bool
	CanReject  bool
	CanEdit    bool
	CanDelete  bool
}

// Controller binds a Store to the remote service and holds the view state:
// current filter, page, page size and per-record in-flight flags. The store
// is only mutated after the remote call succeeds, so a failure leaves the
// displayed list untouched.
type Controller struct {
	mu sync.Mutex

	cfg     Config
	service Service
	store   *Store

	filter   StatusFilter
	page     int
	pageSize int

	inFlight      map[uuid.UUID]bool
	pendingReject *uuid.UUID
}

// NewController builds a controller for one viewer session.
func NewController(cfg Config, service Service, store *Store) *Controller {
	if store == nil {
		store = NewStore()
	}
	return &Controller{
		cfg:      cfg,
		service:  service,
		store:    store,
		filter:   FilterAll,
		page:     1,
		pageSize: pageSizeDefault,
		inFlight: make(map[uuid.UUID]bool),
	}
}

// Refresh reloads the collection from the remote service, applying the
// scope's display ordering. A failed load keeps the prior list.
func (c *Controller) Refresh(ctx context.Context) error {
	var (
		records []timesheets.Timesheet
		err     error
	)
	if c.cfg.Scope == ScopeManager {
		records, err = c.service.ListByManager(ctx, c.cfg.ViewerID)
	} else {
		records, err = c.service.ListByEmployee(ctx, c.cfg.ViewerID)
	}
	if err != nil {
		return err
	}
	if c.cfg.ReverseOnLoad() {
		for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
			records[i], records[j] = records[j], records[i]
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Load(records)
	return nil
}

// Submit sends a new draft and prepends it to the view on success so the
// freshest submission is visible first.
func (c *Controller) Submit(ctx context.Context, req timesheets.CreateTimesheetRequest) (*timesheets.Timesheet, error) {
	created, err := c.service.Submit(ctx, req)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cfg.ReverseOnLoad() {
		c.store.Load(append([]timesheets.Timesheet{*created}, c.store.Records()...))
	} else {
		c.store.Add(*created)
	}
	return created, nil
}

// Edit re-submits the draft fields of a pending record.
func (c *Controller) Edit(ctx context.Context, id uuid.UUID, draft timesheets.Draft) (*timesheets.Timesheet, error) {
	if err := c.guardPending(id); err != nil {
		return nil, err
	}
	updated, err := c.service.Update(ctx, id, draft)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Replace(*updated)
	return updated, nil
}

// Approve commits the PENDING to APPROVED transition for one record. A
// second approve for the same record while the first is in flight is
// rejected with ErrActionInFlight.
func (c *Controller) Approve(ctx context.Context, id uuid.UUID) error {
	if err := c.begin(id); err != nil {
		return err
	}
	defer c.end(id)

	updated, err := c.service.Approve(ctx, id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Replace(*updated)
	return nil
}

// OpenReject records the intent to reject a record. The comment is collected
// separately and committed by ConfirmReject.
func (c *Controller) OpenReject(id uuid.UUID) error {
	if err := c.guardPending(id); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	rid := id
	c.pendingReject = &rid
	return nil
}

// CancelReject abandons an open reject intent.
func (c *Controller) CancelReject() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingReject = nil
}

// PendingReject exposes the record awaiting a rejection comment, if any.
func (c *Controller) PendingReject() (uuid.UUID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingReject == nil {
		return uuid.Nil, false
	}
	return *c.pendingReject, true
}

// ConfirmReject commits the open reject intent with the collected comment.
func (c *Controller) ConfirmReject(ctx context.Context, comment string) error {
	c.mu.Lock()
	if c.pendingReject == nil {
		c.mu.Unlock()
		return ErrNoPendingReject
	}
	id := *c.pendingReject
	c.pendingReject = nil
	c.mu.Unlock()

	if err := c.begin(id); err != nil {
		return err
	}
	defer c.end(id)

	updated, err := c.service.Reject(ctx, id, comment)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Replace(*updated)
	return nil
}

// Delete removes a pending record. The local list only changes after the
// remote delete confirms.
func (c *Controller) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.guardPending(id); err != nil {
		return err
	}
	if err := c.service.Delete(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Remove(id)
	return nil
}

// SetFilter changes the status filter and resets to page 1 in the same
// critical section so the displayed page can never be out of range.
func (c *Controller) SetFilter(filter StatusFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = filter
	c.page = 1
}

// SetPage moves to the given 1-based page.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page < 1 {
		page = 1
	}
	c.page = page
}

// Resize applies the viewport-derived page size.
func (c *Controller) Resize(width int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pageSize = c.cfg.PageSizeForWidth(width)
}

// View derives the currently visible page.
func (c *Controller) View() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View(c.store.Records(), c.filter, c.page, c.pageSize)
}

// Counts folds the full collection, ignoring the filter.
func (c *Controller) Counts() timesheets.Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Counts()
}

// Filter returns the active status filter.
func (c *Controller) Filter() StatusFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// InFlight reports whether an approve or reject is outstanding for the
// record, letting the view disable its controls.
func (c *Controller) InFlight(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight[id]
}

// AvailableActions returns the controls the view may show for a record.
// Terminal records get none; the manager scope gets approve and reject, the
// employee scope edit and delete.
func (c *Controller) AvailableActions(id uuid.UUID) Actions {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts, ok := c.store.Get(id)
	if !ok || ts.Status.Terminal() || c.inFlight[id] {
		return Actions{}
	}
	if c.cfg.Scope == ScopeManager {
		return Actions{CanApprove: true, CanReject: true}
	}
	return Actions{CanEdit: true, CanDelete: true}
}

// begin marks a record's action in flight after checking it is still
// pending. It fails when another action for the same record is outstanding.
func (c *Controller) begin(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts, ok := c.store.Get(id)
	if !ok {
		return ErrUnknownRecord
	}
	if ts.Status.Terminal() {
		return ErrTerminalRecord
	}
	if c.inFlight[id] {
		return ErrActionInFlight
	}
	c.inFlight[id] = true
	return nil
}

func (c *Controller) end(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, id)
}

func (c *Controller) guardPending(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts, ok := c.store.Get(id)
	if !ok {
		return ErrUnknownRecord
	}
	if ts.Status.Terminal() {
		return ErrTerminalRecord
	}
	return nil
}
