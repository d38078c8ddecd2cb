package form

import (
	"context"
	"encoding/json"
	"mime"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"jobmate/posting-service/internal/draftstore"
	"jobmate/posting-service/internal/extract"
	"jobmate/posting-service/internal/offer"
)

// Banner texts shown after a submission.
const (
	BannerSubmitted   = "Job offer created successfully"
	BannerUnavailable = "Server is currently unavailable. Your job offer has been saved and will be submitted automatically when the server is back online."
	BannerFailed      = "Failed to submit job offer. It has been saved locally and will be submitted automatically when the server is available."
)

const (
	successDismiss = 5 * time.Second
	failureDismiss = 8 * time.Second
)

// AcceptedDocumentTypes lists the MIME types Import accepts.
var AcceptedDocumentTypes = []string{
	"application/pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/msword",
	"text/plain",
}

// Prober reports whether the remote API answers.
type Prober interface {
	IsReachable(ctx context.Context) bool
}

// Submitter sends one offer to the remote API.
type Submitter interface {
	Submit(ctx context.Context, p offer.Payload) (json.RawMessage, error)
}

// Queue keeps offers that could not be submitted.
type Queue interface {
	Enqueue(ctx context.Context, p offer.Payload) (offer.PendingOffer, error)
	List(ctx context.Context) ([]offer.PendingOffer, error)
	Len(ctx context.Context) (int, error)
	Running() bool
}

// Outcome is how a submission ended.
type Outcome string

const (
	OutcomeInvalid   Outcome = "invalid"
	OutcomeSubmitted Outcome = "submitted"
	// OutcomeQueued: the API was unreachable.
	OutcomeQueued Outcome = "queued"
	// OutcomeFailed: the API rejected the offer or the request failed.
	OutcomeFailed Outcome = "failed"
)

// SubmitResult reports a Submit call to the operator.
type SubmitResult struct {
	Outcome      Outcome                `json:"outcome"`
	Errors       offer.ValidationErrors `json:"errors,omitempty"`
	Banner       string                 `json:"banner,omitempty"`
	DismissAfter time.Duration          `json:"-"`
	DismissMs    int64                  `json:"dismissAfterMs,omitempty"`
	Response     json.RawMessage        `json:"response,omitempty"`
	Pending      *offer.PendingOffer    `json:"pending,omitempty"`
}

// APIStatus is the last known reachability of the remote API.
type APIStatus string

const (
	APIUnknown      APIStatus = "unknown"
	APIConnected    APIStatus = "connected"
	APIDisconnected APIStatus = "disconnected"
)

// Status summarises connectivity and the offline queue.
type Status struct {
	API         APIStatus `json:"apiStatus"`
	Pending     int       `json:"pendingOffers"`
	RetryActive bool      `json:"retryActive"`
}

// Import is an extraction waiting to be applied to the form.
type Import struct {
	Filename string      `json:"filename"`
	Draft    offer.Draft `json:"draft"`
}

// Controller holds the single live form and runs every operation on it.
type Controller struct {
	drafts    *draftstore.Store
	extractor *extract.Extractor
	prober    Prober
	submitter Submitter
	queue     Queue
	log       *zap.Logger

	// Now is the clock used for deadline checks.
	Now func() time.Time

	mu        sync.Mutex
	state     State
	preview   *Import
	apiStatus APIStatus
}

// NewController builds a Controller and restores the saved description.
func NewController(
	ctx context.Context,
	drafts *draftstore.Store,
	extractor *extract.Extractor,
	prober Prober,
	submitter Submitter,
	queue Queue,
	log *zap.Logger,
) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if extractor == nil {
		extractor = extract.New()
	}
	c := &Controller{
		drafts:    drafts,
		extractor: extractor,
		prober:    prober,
		submitter: submitter,
		queue:     queue,
		log:       log.Named("form"),
		Now:       time.Now,
		state:     NewState(),
		apiStatus: APIUnknown,
	}
	if desc := drafts.Load(ctx); desc != "" {
		c.state.Draft.Description = desc
		c.state.WordCount = WordCount(desc)
		c.log.Info("restored saved description", zap.Int("words", c.state.WordCount))
	}
	return c
}

// State returns a snapshot of the live form.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Update sets one field and persists the description when it changed.
func (c *Controller) Update(ctx context.Context, field, value string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.state.UpdateAt(field, value, c.Now())
	if err != nil {
		return c.state.clone(), err
	}
	c.state = next
	if field == FieldDescription {
		c.drafts.Save(ctx, value)
	}
	return next.clone(), nil
}

// ToggleEmploymentType flips one employment flag on the live form.
func (c *Controller) ToggleEmploymentType(kind offer.EmploymentKind) (State, error) {
	return c.apply(func(s State) (State, error) { return s.ToggleEmploymentType(kind) })
}

// ToggleSchedule adds or removes schedule.
func (c *Controller) ToggleSchedule(schedule string) (State, error) {
	return c.apply(func(s State) (State, error) { return s.ToggleSchedule(schedule) })
}

// SelectSchedule adds schedule if it is not selected yet.
func (c *Controller) SelectSchedule(schedule string) (State, error) {
	return c.apply(func(s State) (State, error) { return s.SelectSchedule(schedule) })
}

// Validate recomputes the errors of the live form.
func (c *Controller) Validate() State {
	s, _ := c.apply(func(s State) (State, error) { return s.Validate(), nil })
	return s
}

// Reset clears the form and the saved description.
func (c *Controller) Reset(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.Reset()
	c.drafts.Clear(ctx)
	return c.state.clone()
}

func (c *Controller) apply(fn func(State) (State, error)) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := fn(c.state)
	if err != nil {
		return c.state.clone(), err
	}
	c.state = next
	return next.clone(), nil
}

// ─── Import ──────────────────────────────────────────────────────────────────

// Import extracts a draft from an uploaded document and holds it as the
// preview. declaredType may be empty, in which case the content is
// sniffed. The content is read as text; binary formats are not decoded.
func (c *Controller) Import(filename, declaredType string, content []byte) (Import, error) {
	if !acceptedType(declaredType, content) {
		return Import{}, errors.Wrapf(ErrUnsupportedDocument, "%s (%s)", filename, declaredType)
	}

	imp := Import{Filename: filename, Draft: c.extractor.Extract(string(content))}
	c.setPreview(imp)
	c.log.Info("document imported", zap.String("file", filename), zap.Int("bytes", len(content)))
	return imp, nil
}

// ImportSample extracts the built-in sample posting into the preview.
func (c *Controller) ImportSample() Import {
	imp := Import{Filename: extract.SampleFilename, Draft: c.extractor.ExtractSample()}
	c.setPreview(imp)
	return imp
}

// Preview returns the pending import, if any.
func (c *Controller) Preview() (Import, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.preview == nil {
		return Import{}, false
	}
	return *c.preview, true
}

// ApplyImport replaces the form with the previewed draft.
func (c *Controller) ApplyImport(ctx context.Context) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.preview == nil {
		return c.state.clone(), ErrNoImport
	}
	c.state = c.state.ApplyExtracted(c.preview.Draft)
	if c.preview.Draft.Description != "" {
		c.drafts.Save(ctx, c.state.Draft.Description)
	}
	return c.state.clone(), nil
}

// DiscardImport drops the preview without touching the form.
func (c *Controller) DiscardImport() {
	c.mu.Lock()
	c.preview = nil
	c.mu.Unlock()
}

func (c *Controller) setPreview(imp Import) {
	c.mu.Lock()
	c.preview = &imp
	c.mu.Unlock()
}

func acceptedType(declared string, content []byte) bool {
	if declared == "" {
		detected := mimetype.Detect(content)
		for _, t := range AcceptedDocumentTypes {
			if detected.Is(t) {
				return true
			}
		}
		return false
	}

	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return false
	}
	for _, t := range AcceptedDocumentTypes {
		if strings.EqualFold(mediaType, t) {
			return true
		}
	}
	return false
}

// ─── Submission ──────────────────────────────────────────────────────────────

// Submit validates the form and sends it. When the API is unreachable or
// the submission fails, the offer is queued for retry and the result
// carries the matching banner. The returned error is set only when the
// offer could not be queued either.
//
// The form is not locked while the API is called. A successful submission
// resets the form only if it still holds the submitted draft; edits made in
// the meantime are kept.
func (c *Controller) Submit(ctx context.Context) (SubmitResult, error) {
	c.mu.Lock()
	c.state = c.state.Validate()
	if !c.state.Valid() {
		errs := c.state.clone().Errors
		c.mu.Unlock()
		return SubmitResult{Outcome: OutcomeInvalid, Errors: errs}, nil
	}
	sent := c.state.clone().Draft
	payload := offer.ToPayload(sent)
	c.mu.Unlock()

	if !c.probe(ctx) {
		return c.enqueue(ctx, payload, OutcomeQueued, BannerUnavailable)
	}

	resp, err := c.submitter.Submit(ctx, payload)
	if err != nil {
		c.log.Warn("submission failed, queueing offer", zap.Error(err))
		return c.enqueue(ctx, payload, OutcomeFailed, BannerFailed)
	}

	c.mu.Lock()
	if c.state.Draft.Equal(sent) {
		c.state = c.state.Reset()
		c.preview = nil
		c.drafts.Clear(ctx)
	} else {
		c.log.Info("form edited during submission, keeping edits")
	}
	c.mu.Unlock()

	c.log.Info("job offer submitted", zap.String("title", payload.Title))
	return SubmitResult{
		Outcome:      OutcomeSubmitted,
		Banner:       BannerSubmitted,
		DismissAfter: successDismiss,
		DismissMs:    successDismiss.Milliseconds(),
		Response:     resp,
	}, nil
}

func (c *Controller) enqueue(ctx context.Context, p offer.Payload, outcome Outcome, banner string) (SubmitResult, error) {
	pending, err := c.queue.Enqueue(ctx, p)
	if err != nil {
		return SubmitResult{}, errors.Wrap(err, "queue offer")
	}
	return SubmitResult{
		Outcome:      outcome,
		Banner:       banner,
		DismissAfter: failureDismiss,
		DismissMs:    failureDismiss.Milliseconds(),
		Pending:      &pending,
	}, nil
}

// Status probes the API and reports the offline queue.
func (c *Controller) Status(ctx context.Context) (Status, error) {
	c.probe(ctx)
	n, err := c.queue.Len(ctx)
	if err != nil {
		return Status{}, errors.Wrap(err, "count pending offers")
	}
	return Status{API: c.APIStatus(), Pending: n, RetryActive: c.queue.Running()}, nil
}

// APIStatus returns the result of the last probe without probing again.
func (c *Controller) APIStatus() APIStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiStatus
}

// Pending lists the queued offers.
func (c *Controller) Pending(ctx context.Context) ([]offer.PendingOffer, error) {
	return c.queue.List(ctx)
}

func (c *Controller) probe(ctx context.Context) bool {
	ok := c.prober.IsReachable(ctx)
	c.mu.Lock()
	if ok {
		c.apiStatus = APIConnected
	} else {
		c.apiStatus = APIDisconnected
	}
	c.mu.Unlock()
	return ok
}
