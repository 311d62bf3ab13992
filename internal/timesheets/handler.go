package timesheets

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mtl-hr/timesheet-hub/internal/platform/httpx"
)

// Handler exposes the timesheet resource as a JSON API. Paths mirror the
// ones the submission and review screens already call.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers timesheet routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/list/{employeeId}", h.listByEmployee)
	r.Get("/list/manager/{managerId}", h.listByManager)
	r.Get("/counts/{managerId}", h.counts)
	r.Get("/overview/{managerId}", h.overview)
	r.Get("/{id}/history", h.history)
	r.Put("/update/{id}", h.update)
	r.Delete("/delete/{id}", h.delete)
	r.Put("/Approve/{id}/status/APPROVED", h.approve)
	r.Put("/reject/{id}/status/REJECTED/comments/{comments}", h.reject)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateTimesheetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", msgInvalidDraft)
		return
	}

	ts, err := h.service.Submit(r.Context(), req)
	if err != nil {
		h.respondError(w, r, "create timesheet", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, ts)
}

func (h *Handler) listByEmployee(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListByEmployee(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		h.respondError(w, r, "list by employee", err)
		return
	}
	if records == nil {
		records = []Timesheet{}
	}
	httpx.JSON(w, http.StatusOK, records)
}

func (h *Handler) listByManager(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListByManager(r.Context(), chi.URLParam(r, "managerId"))
	if err != nil {
		h.respondError(w, r, "list by manager", err)
		return
	}
	if records == nil {
		records = []Timesheet{}
	}
	httpx.JSON(w, http.StatusOK, records)
}

func (h *Handler) counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Counts(r.Context(), chi.URLParam(r, "managerId"))
	if err != nil {
		h.respondError(w, r, "counts", err)
		return
	}
	httpx.JSON(w, http.StatusOK, counts)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.ManagerOverview(r.Context(), chi.URLParam(r, "managerId"))
	if err != nil {
		h.respondError(w, r, "overview", err)
		return
	}
	if overview.Submissions == nil {
		overview.Submissions = []Timesheet{}
	}
	httpx.JSON(w, http.StatusOK, overview)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	logs, err := h.service.History(r.Context(), id)
	if err != nil {
		h.respondError(w, r, "history", err)
		return
	}
	httpx.JSON(w, http.StatusOK, logs)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	var req UpdateTimesheetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed request body")
		return
	}

	ts, err := h.service.Update(r.Context(), id, req.Draft)
	if err != nil {
		h.respondError(w, r, "update timesheet", err)
		return
	}
	httpx.JSON(w, http.StatusOK, ts)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, "delete timesheet", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	ts, err := h.service.Approve(r.Context(), id)
	if err != nil {
		h.respondError(w, r, "approve timesheet", err)
		return
	}
	httpx.JSON(w, http.StatusOK, ts)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	comment := chi.URLParam(r, "comments")
	if unescaped, err := url.PathUnescape(comment); err == nil {
		comment = unescaped
	}
	ts, err := h.service.Reject(r.Context(), id, comment)
	if err != nil {
		h.respondError(w, r, "reject timesheet", err)
		return
	}
	httpx.JSON(w, http.StatusOK, ts)
}

func (h *Handler) recordID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid timesheet id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", validationErr.Message)
	case errors.Is(err, ErrDuplicate):
		httpx.Problem(w, http.StatusConflict, "Duplicate", DuplicateMessage)
	case errors.Is(err, ErrInvalidStatus):
		httpx.Problem(w, http.StatusConflict, "Invalid Transition", err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "timesheet not found")
	default:
		h.logger.Error(op, slog.String("path", r.URL.Path), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
