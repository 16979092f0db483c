// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/menuwise/internal/extract"
	"github.com/tomtom215/menuwise/internal/logging"
	"github.com/tomtom215/menuwise/internal/menu"
	"github.com/tomtom215/menuwise/internal/metrics"
	"github.com/tomtom215/menuwise/internal/preferences"
	"github.com/tomtom215/menuwise/internal/recommend"
)

// Input is a submitted menu: a photo or pasted text / URL.
type Input = extract.Request

// Recommender produces recommendations for a confirmed session.
// *recommend.Engine satisfies it.
type Recommender interface {
	Recommend(ctx context.Context, items []menu.Item, prefs preferences.Vector) (*recommend.Response, error)
}

// Config controls orchestrator behavior.
type Config struct {
	// ExtractionTimeout bounds each background extraction.
	ExtractionTimeout time.Duration `koanf:"extraction_timeout"`

	// MaxItems rejects extracted menus with more dishes than the
	// recommender accepts. Zero disables the check.
	MaxItems int `koanf:"max_items"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		ExtractionTimeout: 90 * time.Second,
		MaxItems:          recommend.DefaultConfig().MaxItems,
	}
}

// Orchestrator is the state machine for one session. It is safe for
// concurrent use.
type Orchestrator struct {
	id          string
	extractor   extract.Extractor
	recommender Recommender
	cfg         Config
	logger      zerolog.Logger
	now         func() time.Time

	baseCtx context.Context
	cancel  context.CancelFunc

	mu         sync.Mutex
	state      State
	generation uint64
	closed     bool
	discarded  uint64 // stale extraction results dropped

	inflight int
	idle     chan struct{} // closed while inflight == 0

	subs    map[int]chan State
	nextSub int
}

// NewOrchestrator creates an orchestrator at the landing step.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewOrchestrator(id string, extractor extract.Extractor, recommender Recommender, cfg Config, logger zerolog.Logger) *Orchestrator {
	if cfg.ExtractionTimeout <= 0 {
		cfg.ExtractionTimeout = DefaultConfig().ExtractionTimeout
	}

	idle := make(chan struct{})
	close(idle)

	baseCtx, cancel := context.WithCancel(context.Background())

	return &Orchestrator{
		id:          id,
		extractor:   extractor,
		recommender: recommender,
		cfg:         cfg,
		logger:      logger.With().Str("component", "session").Str("session_id", id).Logger(),
		now:         time.Now,
		baseCtx:     baseCtx,
		cancel:      cancel,
		state:       State{Step: StepLanding},
		idle:        idle,
		subs:        make(map[int]chan State),
	}
}

// ID returns the session id.
func (o *Orchestrator) ID() string {
	return o.id
}

// Snapshot returns a deep copy of the current state.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.clone()
}

// Start moves from the landing step to the input step.
func (o *Orchestrator) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.expectLocked(EventStart, StepLanding); err != nil {
		return err
	}
	o.moveLocked(EventStart, StepInput)
	return nil
}

// Cancel goes back from the input step to the landing step.
func (o *Orchestrator) Cancel() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.expectLocked(EventCancel, StepInput); err != nil {
		return err
	}
	o.moveLocked(EventCancel, StepLanding)
	return nil
}

// SubmitInput accepts a menu and starts extracting it in the background.
//
// The session moves to the questionnaire, or to the preview when
// preferences are already set. Extraction outcomes are recorded in the
// state and never returned here; the only errors are an invalid input or
// a call from the wrong step.
//
//nolint:gocritic // hugeParam: Input is copied so the caller may reuse its buffers
func (o *Orchestrator) SubmitInput(ctx context.Context, in Input) error {
	if err := in.Validate(); err != nil {
		return err
	}
	req := in.Normalized()
	if req.Data != nil {
		req.Data = append([]byte(nil), req.Data...)
	}

	o.mu.Lock()
	if err := o.expectLocked(EventSubmitInput, StepInput); err != nil {
		o.mu.Unlock()
		return err
	}

	o.generation++
	gen := o.generation
	o.state.Generation = gen
	o.state.Items = nil
	o.state.ExtractionError = ""
	o.state.IsExtracting = true
	o.beginExtractionLocked()

	next := StepQuestionnaire
	if o.state.Preferences != nil {
		next = StepPreview
	}
	o.moveLocked(EventSubmitInput, next)
	o.mu.Unlock()

	extractCtx, cancel := context.WithTimeout(o.baseCtx, o.cfg.ExtractionTimeout)
	extractCtx = logging.ContextWithSessionID(extractCtx, o.id)
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		extractCtx = logging.ContextWithRequestID(extractCtx, requestID)
	}

	o.logger.Info().
		Uint64("generation", gen).
		Str("kind", string(req.Kind)).
		Msg("menu submitted, extracting in background")

	go o.runExtraction(extractCtx, cancel, gen, req)
	return nil
}

// CompleteQuestionnaire records the diner's preferences.
//
// If the background extraction has already failed, the session returns to
// the input step and an *ExtractionFailedError carrying the failure message
// is returned. Otherwise the session moves to the preview, whether or not
// extraction has finished.
//
//nolint:gocritic // hugeParam: prefs passed by value for immutability
func (o *Orchestrator) CompleteQuestionnaire(prefs preferences.Vector) error {
	if err := prefs.Validate(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.expectLocked(EventCompleteQuestionnaire, StepQuestionnaire); err != nil {
		return err
	}

	o.state.Preferences = &prefs

	if msg := o.state.ExtractionError; msg != "" {
		o.moveLocked(EventCompleteQuestionnaire, StepInput)
		return &ExtractionFailedError{Message: msg}
	}

	o.moveLocked(EventCompleteQuestionnaire, StepPreview)
	return nil
}

// RetryMenu discards the current menu and goes back to the input step.
// Any extraction still running is abandoned.
func (o *Orchestrator) RetryMenu() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.expectLocked(EventRetryMenu, StepPreview); err != nil {
		return err
	}

	o.generation++
	o.state.Generation = o.generation
	o.state.Items = nil
	o.state.ExtractionError = ""
	o.state.IsExtracting = false
	o.moveLocked(EventRetryMenu, StepInput)
	return nil
}

// ConfirmPreview accepts the extracted menu and moves to the results step.
// It requires preferences and a settled, successful extraction.
func (o *Orchestrator) ConfirmPreview() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.expectLocked(EventConfirmPreview, StepPreview); err != nil {
		return err
	}

	switch {
	case o.state.Preferences == nil:
		return o.rejectLocked(EventConfirmPreview, "preferences not set")
	case o.state.IsExtracting:
		return o.rejectLocked(EventConfirmPreview, "menu still extracting")
	case o.state.ExtractionError != "":
		return o.rejectLocked(EventConfirmPreview, "menu extraction failed")
	}

	o.moveLocked(EventConfirmPreview, StepResults)
	return nil
}

// Restart clears everything and returns to the landing step. It is
// accepted from any step.
func (o *Orchestrator) Restart() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrClosed
	}

	o.generation++
	o.state = State{Step: o.state.Step, Generation: o.generation}
	o.moveLocked(EventRestart, StepLanding)
	return nil
}

// Preview returns what the preview screen should show.
func (o *Orchestrator) Preview() (PreviewView, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state.Step != StepPreview {
		return PreviewView{}, invalidTransition("preview", o.state.Step)
	}
	return previewOf(&o.state), nil
}

// Results computes recommendations for the confirmed menu and preferences.
// Every call recomputes from the current state.
func (o *Orchestrator) Results(ctx context.Context) (*recommend.Response, error) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil, ErrClosed
	}
	if o.state.Step != StepResults || o.state.Preferences == nil {
		err := invalidTransition("results", o.state.Step)
		o.mu.Unlock()
		return nil, err
	}
	items := menu.CloneItems(o.state.Items)
	prefs := *o.state.Preferences
	o.mu.Unlock()

	return o.recommender.Recommend(ctx, items, prefs)
}

// Subscribe returns a channel that receives a snapshot after every state
// change, starting with the current state. Slow readers only see the most
// recent snapshot. The channel is closed by the returned cancel function
// or when the orchestrator is closed.
func (o *Orchestrator) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := o.nextSub
	o.nextSub++
	o.subs[id] = ch
	ch <- o.state.clone()
	o.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			if sub, ok := o.subs[id]; ok {
				delete(o.subs, id)
				close(sub)
			}
		})
	}
}

// Wait blocks until no extraction is running or ctx is done.
func (o *Orchestrator) Wait(ctx context.Context) error {
	o.mu.Lock()
	idle := o.idle
	o.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close abandons running extractions and closes all subscriptions.
// It is idempotent.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	for id, ch := range o.subs {
		delete(o.subs, id)
		close(ch)
	}
	o.mu.Unlock()

	o.cancel()
	o.logger.Debug().Msg("session closed")
}

func (o *Orchestrator) runExtraction(ctx context.Context, cancel context.CancelFunc, gen uint64, req extract.Request) {
	defer cancel()
	defer o.endExtraction()

	start := o.now()
	records, err := o.extractor.Extract(ctx, req)
	o.settle(gen, records, err, o.now().Sub(start))
}

// settle applies an extraction outcome if it still belongs to the latest
// submission.
func (o *Orchestrator) settle(gen uint64, records []menu.Record, err error, took time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || gen != o.generation {
		o.discarded++
		metrics.SessionStaleExtractions.Inc()
		o.logger.Debug().
			Uint64("generation", gen).
			Uint64("current_generation", o.generation).
			Err(err).
			Msg("discarding stale extraction result")
		return
	}

	o.state.IsExtracting = false

	if err != nil {
		o.state.ExtractionError = failureMessage(err)
		o.logger.Warn().Err(err).Dur("took", took).Msg("menu extraction failed")
	} else if items := menu.FromRecords(records, o.now()); len(items) == 0 {
		o.state.ExtractionError = EmptyMenuMessage
		o.logger.Info().Int("records", len(records)).Dur("took", took).Msg("menu extraction found no items")
	} else if o.cfg.MaxItems > 0 && len(items) > o.cfg.MaxItems {
		o.state.ExtractionError = tooManyItemsMessage(len(items), o.cfg.MaxItems)
		o.logger.Warn().
			Int("items", len(items)).
			Int("max_items", o.cfg.MaxItems).
			Dur("took", took).
			Msg("menu extraction found too many items")
	} else {
		o.state.Items = items
		o.logger.Info().Int("items", len(items)).Dur("took", took).Msg("menu extracted")
	}

	metrics.RecordSessionTransition(string(EventExtractionSettled), string(o.state.Step), string(o.state.Step))
	o.publishLocked()
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return timeoutMessage
	case err.Error() == "":
		return fallbackFailureMessage
	default:
		return err.Error()
	}
}

func (o *Orchestrator) beginExtractionLocked() {
	if o.inflight == 0 {
		o.idle = make(chan struct{})
	}
	o.inflight++
	metrics.SessionExtractionsInFlight.Inc()
}

func (o *Orchestrator) endExtraction() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.inflight--
	metrics.SessionExtractionsInFlight.Dec()
	if o.inflight == 0 {
		close(o.idle)
	}
}

// expectLocked rejects event unless the session is open and at step.
func (o *Orchestrator) expectLocked(event Event, step Step) error {
	if o.closed {
		return ErrClosed
	}
	if o.state.Step != step {
		metrics.RecordSessionRejected(string(event), string(o.state.Step))
		o.logger.Debug().
			Str("event", string(event)).
			Str("step", string(o.state.Step)).
			Msg("event rejected")
		return invalidTransition(event, o.state.Step)
	}
	return nil
}

func (o *Orchestrator) rejectLocked(event Event, reason string) error {
	metrics.RecordSessionRejected(string(event), string(o.state.Step))
	return fmt.Errorf("%w: %s", invalidTransition(event, o.state.Step), reason)
}

func (o *Orchestrator) moveLocked(event Event, to Step) {
	from := o.state.Step
	o.state.Step = to

	metrics.RecordSessionTransition(string(event), string(from), string(to))
	o.logger.Debug().
		Str("event", string(event)).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("transition")

	o.publishLocked()
}

// publishLocked pushes the current state to every subscriber, replacing
// any snapshot the subscriber has not read yet.
func (o *Orchestrator) publishLocked() {
	if len(o.subs) == 0 {
		return
	}
	for _, ch := range o.subs {
		snapshot := o.state.clone()
		select {
		case ch <- snapshot:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}
