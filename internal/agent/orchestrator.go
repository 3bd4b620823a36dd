package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"realestate-agent/internal/session"

	"github.com/rs/zerolog/log"
)

// DefaultModelTimeout bounds a single model call.
const DefaultModelTimeout = 30 * time.Second

// ResponseSource tells where the response text came from.
type ResponseSource string

const (
	SourceModel    ResponseSource = "model"
	SourceFallback ResponseSource = "fallback"
	SourceRedirect ResponseSource = "redirect"
)

// Request is one user turn.
type Request struct {
	SessionID string
	Message   string
	Language  string // explicit override, empty or "auto" to detect
	Listings  []Listing
}

// Result is what the caller persists and returns to the user.
type Result struct {
	Response    string
	Language    Language
	Preferences Preferences
	SessionID   string
	Source      ResponseSource
}

// Guard classifies messages as in or out of the assistant's domain.
type Guard interface {
	Classify(message string) Verdict
}

// OrchestratorDeps are the collaborators of an Orchestrator. Only Generator
// is required; the rest default to the built-in implementations.
type OrchestratorDeps struct {
	Generator Generator
	Store     session.Store
	Detector  Detector
	Guard     Guard
	Composer  *Composer
	Fallback  *FallbackResponder
}

// OrchestratorOpts tunes an Orchestrator.
type OrchestratorOpts struct {
	Timeout time.Duration
}

// Orchestrator runs the per-message pipeline. Turns of the same session are
// serialised; different sessions run concurrently.
type Orchestrator struct {
	generator Generator
	store     session.Store
	detector  Detector
	guard     Guard
	composer  *Composer
	fallback  *FallbackResponder
	locker    *session.Locker
	timeout   time.Duration
}

// NewOrchestrator wires an orchestrator. It fails without a generator.
func NewOrchestrator(deps OrchestratorDeps, opts OrchestratorOpts) (*Orchestrator, error) {
	if deps.Generator == nil {
		return nil, ErrMissingGenerator
	}

	o := &Orchestrator{
		generator: deps.Generator,
		store:     deps.Store,
		detector:  deps.Detector,
		guard:     deps.Guard,
		composer:  deps.Composer,
		fallback:  deps.Fallback,
		locker:    session.NewLocker(),
		timeout:   opts.Timeout,
	}

	if o.store == nil {
		o.store = session.NewMemoryStore(session.DefaultRetention)
	}
	if o.detector == nil {
		o.detector = NewScriptDetector()
	}
	if o.guard == nil {
		o.guard = NewTopicGuard(nil, nil)
	}
	if o.composer == nil {
		o.composer = NewComposer(DefaultGenerationParams())
	}
	if o.fallback == nil {
		o.fallback = NewFallbackResponder()
	}
	if o.timeout <= 0 {
		o.timeout = DefaultModelTimeout
	}

	return o, nil
}

// Handle answers one message. It never returns an error: model failures,
// timeouts and panics all resolve to a fallback reply.
func (o *Orchestrator) Handle(ctx context.Context, req Request) (res Result) {
	unlock := o.locker.Lock(req.SessionID)
	defer unlock()

	lang := o.detector.Detect(req.Message, req.Language)
	res = Result{Language: lang, SessionID: req.SessionID}

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("session_id", req.SessionID).
				Interface("panic", r).
				Msg("Chat pipeline panicked, using fallback")
			res.Response = o.fallback.Respond(lang, req.Message)
			res.Preferences = Preferences{}
			res.Source = SourceFallback
			o.remember(ctx, req.SessionID, req.Message, res.Response)
		}
	}()

	history, err := o.store.Get(ctx, req.SessionID)
	if err != nil {
		log.Warn().Err(err).Str("session_id", req.SessionID).Msg("Failed to load session history")
		history = nil
	}

	verdict := o.guard.Classify(req.Message)
	if !verdict.InScope {
		log.Info().
			Str("session_id", req.SessionID).
			Str("rule", string(verdict.Rule)).
			Str("term", verdict.Deny).
			Msg("Message out of scope, redirecting")
		res.Response = o.fallback.Redirect(lang)
		res.Source = SourceRedirect
		o.remember(ctx, req.SessionID, req.Message, res.Response)
		return res
	}

	res.Preferences = ExtractPreferences(req.Message)

	prompt := o.composer.Compose(lang, req.Listings, history, req.Message)
	outcome := o.generate(ctx, prompt)

	if outcome.OK() {
		res.Response = FormatResponse(outcome.Text)
		res.Source = SourceModel
	}
	if !outcome.OK() || res.Response == "" {
		reason := outcome.Reason
		if reason == nil {
			reason = ErrEmptyResponse
		}
		log.Warn().
			Err(reason).
			Str("session_id", req.SessionID).
			Str("language", string(lang)).
			Msg("Model call failed, using fallback")
		res.Response = o.fallback.Respond(lang, req.Message)
		res.Source = SourceFallback
	}

	o.remember(ctx, req.SessionID, req.Message, res.Response)
	return res
}

// ClearSession drops the conversational memory of a session.
func (o *Orchestrator) ClearSession(ctx context.Context, sessionID string) error {
	unlock := o.locker.Lock(sessionID)
	defer unlock()

	if err := o.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// History returns the remembered exchanges of a session.
func (o *Orchestrator) History(ctx context.Context, sessionID string) ([]session.Exchange, error) {
	return o.store.Get(ctx, sessionID)
}

// generate calls the model once with the configured timeout. The call runs in
// its own goroutine so a client that ignores ctx cannot stall the turn.
func (o *Orchestrator) generate(ctx context.Context, prompt Prompt) Outcome {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	done := make(chan Outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- Outcome{Reason: fmt.Errorf("generator panic: %v", r)}
			}
		}()

		text, err := o.generator.Generate(ctx, prompt)
		switch {
		case err != nil:
			done <- Outcome{Reason: err}
		case strings.TrimSpace(text) == "":
			done <- Outcome{Reason: ErrEmptyResponse}
		default:
			done <- Outcome{Text: text}
		}
	}()

	select {
	case out := <-done:
		return out
	case <-ctx.Done():
		return Outcome{Reason: fmt.Errorf("model call: %w", ctx.Err())}
	}
}

func (o *Orchestrator) remember(ctx context.Context, sessionID, message, response string) {
	if err := o.store.Append(ctx, sessionID, session.NewExchange(message, response)); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to store exchange")
	}
}
