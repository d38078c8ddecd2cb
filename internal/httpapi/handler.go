// Package httpapi exposes the form controller over HTTP for the UI.
//
// Routes:
//
//	GET    /health                                → liveness
//	GET    /form                                  → current form state
//	PATCH  /form                                  → set one field
//	POST   /form/employment-types/{kind}/toggle   → flip an employment flag
//	POST   /form/schedules/toggle                 → add or remove a schedule
//	POST   /form/schedules/select                 → add a schedule
//	POST   /form/validate                         → recompute errors
//	POST   /form/reset                            → fresh form
//	POST   /form/submit                           → submit or queue the offer
//	GET    /import                                → pending import preview
//	POST   /import                                → upload a document (multipart "file")
//	POST   /import/sample                         → preview the built-in sample
//	POST   /import/apply                          → apply the preview to the form
//	DELETE /import                                → discard the preview
//	GET    /pending                               → offers waiting for retry
//	GET    /status                                → API reachability and queue size
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"jobmate/posting-service/internal/form"
	"jobmate/posting-service/internal/offer"
)

const maxUploadBytes = 10 << 20

// Handler holds shared dependencies.
type Handler struct {
	ctrl    *form.Controller
	log     *zap.Logger
	version string
}

// NewHandler returns a configured Handler.
func NewHandler(ctrl *form.Controller, log *zap.Logger, version string) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{ctrl: ctrl, log: log.Named("http"), version: version}
}

// Router builds the chi router with every posting-service route mounted.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)

	r.Get("/health", h.health)

	r.Route("/form", func(r chi.Router) {
		r.Get("/", h.getForm)
		r.Patch("/", h.updateField)
		r.Post("/employment-types/{kind}/toggle", h.toggleEmploymentType)
		r.Post("/schedules/toggle", h.toggleSchedule)
		r.Post("/schedules/select", h.selectSchedule)
		r.Post("/validate", h.validate)
		r.Post("/reset", h.reset)
		r.Post("/submit", h.submit)
	})

	r.Route("/import", func(r chi.Router) {
		r.Get("/", h.getImport)
		r.Post("/", h.upload)
		r.Delete("/", h.discardImport)
		r.Post("/sample", h.importSample)
		r.Post("/apply", h.applyImport)
	})

	r.Get("/pending", h.listPending)
	r.Get("/status", h.status)
	return r
}

// ─── Form ────────────────────────────────────────────────────────────────────

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, map[string]string{
		"status":  "ok",
		"service": "posting-service",
		"version": h.version,
	})
}

func (h *Handler) getForm(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, h.ctrl.State())
}

func (h *Handler) updateField(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Field == "" {
		jsonError(w, "body must be {\"field\": string, \"value\": string}", http.StatusBadRequest)
		return
	}

	s, err := h.ctrl.Update(r.Context(), body.Field, body.Value)
	if err != nil {
		h.formError(w, err)
		return
	}
	jsonOK(w, s)
}

func (h *Handler) toggleEmploymentType(w http.ResponseWriter, r *http.Request) {
	kind := offer.EmploymentKind(chi.URLParam(r, "kind"))
	s, err := h.ctrl.ToggleEmploymentType(kind)
	if err != nil {
		h.formError(w, err)
		return
	}
	jsonOK(w, s)
}

func (h *Handler) toggleSchedule(w http.ResponseWriter, r *http.Request) {
	h.schedule(w, r, h.ctrl.ToggleSchedule)
}

func (h *Handler) selectSchedule(w http.ResponseWriter, r *http.Request) {
	h.schedule(w, r, h.ctrl.SelectSchedule)
}

func (h *Handler) schedule(w http.ResponseWriter, r *http.Request, op func(string) (form.State, error)) {
	var body struct {
		Schedule string `json:"schedule"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "body must be {\"schedule\": string}", http.StatusBadRequest)
		return
	}
	s, err := op(body.Schedule)
	if err != nil {
		h.formError(w, err)
		return
	}
	jsonOK(w, s)
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, h.ctrl.Validate())
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, h.ctrl.Reset(r.Context()))
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	res, err := h.ctrl.Submit(r.Context())
	if err != nil {
		h.log.Error("submit", zap.Error(err))
		jsonError(w, "could not save the job offer", http.StatusInternalServerError)
		return
	}

	code := http.StatusOK
	switch res.Outcome {
	case form.OutcomeInvalid:
		code = http.StatusUnprocessableEntity
	case form.OutcomeQueued, form.OutcomeFailed:
		code = http.StatusAccepted
	}
	jsonStatus(w, code, res)
}

// ─── Import ──────────────────────────────────────────────────────────────────

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "multipart field \"file\" is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, "Error reading file. Please try again.", http.StatusBadRequest)
		return
	}

	imp, err := h.ctrl.Import(header.Filename, header.Header.Get("Content-Type"), content)
	if err != nil {
		h.formError(w, err)
		return
	}
	jsonOK(w, imp)
}

func (h *Handler) importSample(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, h.ctrl.ImportSample())
}

func (h *Handler) getImport(w http.ResponseWriter, r *http.Request) {
	imp, ok := h.ctrl.Preview()
	if !ok {
		jsonError(w, form.ErrNoImport.Error(), http.StatusNotFound)
		return
	}
	jsonOK(w, imp)
}

func (h *Handler) applyImport(w http.ResponseWriter, r *http.Request) {
	s, err := h.ctrl.ApplyImport(r.Context())
	if err != nil {
		h.formError(w, err)
		return
	}
	jsonOK(w, s)
}

func (h *Handler) discardImport(w http.ResponseWriter, r *http.Request) {
	h.ctrl.DiscardImport()
	w.WriteHeader(http.StatusNoContent)
}

// ─── Queue ───────────────────────────────────────────────────────────────────

func (h *Handler) listPending(w http.ResponseWriter, r *http.Request) {
	offers, err := h.ctrl.Pending(r.Context())
	if err != nil {
		h.log.Error("list pending offers", zap.Error(err))
		jsonError(w, "storage error", http.StatusInternalServerError)
		return
	}
	if offers == nil {
		offers = []offer.PendingOffer{}
	}
	jsonOK(w, offers)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	st, err := h.ctrl.Status(r.Context())
	if err != nil {
		h.log.Error("status", zap.Error(err))
		jsonError(w, "storage error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, st)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// formError maps controller errors to HTTP statuses.
func (h *Handler) formError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, form.ErrUnknownField), errors.Is(err, form.ErrInvalidValue):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, form.ErrUnsupportedDocument):
		jsonError(w, form.ErrUnsupportedDocument.Error(), http.StatusUnsupportedMediaType)
	case errors.Is(err, form.ErrNoImport):
		jsonError(w, err.Error(), http.StatusConflict)
	default:
		h.log.Error("form operation", zap.Error(err))
		jsonError(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func jsonOK(w http.ResponseWriter, v any) {
	jsonStatus(w, http.StatusOK, v)
}

func jsonStatus(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	jsonStatus(w, code, map[string]string{"error": msg})
}
