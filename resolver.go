package placedex

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	// DefaultDebounce is the quiet period after the last keystroke before
	// a suggestion fetch is issued.
	DefaultDebounce = 300 * time.Millisecond
	// DefaultMinQueryLength is the minimum query length (in runes) that
	// triggers a fetch.
	DefaultMinQueryLength = 2
)

// Listener receives state updates from a Resolver.
//
// Callbacks run on the goroutine that triggered the change: QueryChanged
// arrives synchronously from OnQueryChange and OnSelect, the rest may
// arrive from background fetch goroutines. Calls targeting one concern
// are ordered; listeners must not block.
type Listener interface {
	// QueryChanged echoes every input change, including the programmatic
	// rewrite performed by OnSelect.
	QueryChanged(text string)
	// SuggestionsChanged reports the current list and whether the
	// suggestion panel is open. The list is always replaced wholesale.
	SuggestionsChanged(list []Suggestion, open bool)
	// SearchingChanged reports suggestion-fetch activity.
	SearchingChanged(active bool)
	// ResolvingChanged reports detail-fetch activity.
	ResolvingChanged(active bool)
	// DetailResolved delivers the resolved record for a selection.
	// Invoked at most once per OnSelect, and never after a failure.
	DetailResolved(detail PlaceDetail)
}

// inputMode tells a query change from a user keystroke apart from the
// programmatic rewrite that follows a selection.
type inputMode int

const (
	modeUserTyping inputMode = iota
	modeProgrammaticRewrite
)

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithDebounce overrides the quiet period.
func WithDebounce(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.debounce = d }
}

// WithMinQueryLength overrides the minimum query length.
func WithMinQueryLength(n int) ResolverOption {
	return func(r *Resolver) { r.minLength = n }
}

// WithTypes sets a filter forwarded with every suggestion fetch.
func WithTypes(types string) ResolverOption {
	return func(r *Resolver) { r.types = types }
}

// WithResolverLogger enables logging of swallowed fetch failures.
// Failures never reach the Listener: the next keystroke is the retry.
func WithResolverLogger(l *zap.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = l }
}

// Resolver drives the type-ahead workflow over a Source.
//
// Keystrokes are debounced on a single-slot timer: scheduling a fetch
// replaces (and cancels) the previous pending one, so at most one fetch
// is issued per quiet period of typing. Each issued fetch carries a
// generation number; a response that is no longer the latest issued is
// discarded, so the listener never observes a superseded result even
// when responses reorder in flight.
type Resolver struct {
	source    Source
	listener  Listener
	debounce  time.Duration
	minLength int
	types     string
	logger    *zap.Logger

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64 // generation of the latest issued suggestion fetch
	mode   inputMode
	list   []Suggestion
	open   bool
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
}

// NewResolver creates a Resolver. Close must be called when the owning
// view goes away.
func NewResolver(source Source, listener Listener, opts ...ResolverOption) *Resolver {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Resolver{
		source:    source,
		listener:  listener,
		debounce:  DefaultDebounce,
		minLength: DefaultMinQueryLength,
		logger:    zap.NewNop(),
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OnQueryChange handles an input change. The text is echoed to the
// listener immediately so the input always reflects keystrokes; the
// fetch itself waits out the quiet period. A change caused by the
// rewrite after a selection consumes the ProgrammaticRewrite mode and
// schedules nothing.
func (r *Resolver) OnQueryChange(text string) {
	r.listener.QueryChanged(text)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	if r.mode == modeProgrammaticRewrite {
		r.mode = modeUserTyping
		return
	}

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.debounce, func() {
		r.fetchSuggestions(text)
	})
}

// OnSelect handles the choice of a suggestion: the query is rewritten to
// the primary label, the panel closes, any pending or in-flight
// suggestion fetch is invalidated, and the detail record is resolved in
// the background.
func (r *Resolver) OnSelect(s Suggestion) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}

	r.mode = modeProgrammaticRewrite
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.gen++ // invalidate any in-flight suggestion fetch
	r.list = nil
	r.open = false
	ctx := r.ctx
	r.mu.Unlock()

	r.listener.QueryChanged(s.Primary)
	r.listener.SuggestionsChanged(nil, false)

	go r.resolveDetail(ctx, s.PlaceID)
}

// OnFocus reopens the panel when previous results are still around.
// No fetch is issued.
func (r *Resolver) OnFocus() {
	r.mu.Lock()
	if r.closed || r.open || len(r.list) == 0 {
		r.mu.Unlock()
		return
	}
	r.open = true
	list := r.list
	r.mu.Unlock()

	r.listener.SuggestionsChanged(list, true)
}

// OnOutsideClick closes the panel. Query and list are untouched; a
// click while the panel is closed is a no-op.
func (r *Resolver) OnOutsideClick() {
	r.mu.Lock()
	if r.closed || !r.open {
		r.mu.Unlock()
		return
	}
	r.open = false
	list := r.list
	r.mu.Unlock()

	r.listener.SuggestionsChanged(list, false)
}

// Close cancels the pending timer and all in-flight fetches. After Close
// returns, state-mutating callbacks no longer fire.
func (r *Resolver) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.mu.Unlock()

	r.cancel()
}

// fetchSuggestions runs on the debounce timer's goroutine.
func (r *Resolver) fetchSuggestions(text string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}

	if utf8.RuneCountInString(strings.TrimSpace(text)) < r.minLength {
		r.list = nil
		r.open = false
		r.mu.Unlock()
		r.listener.SuggestionsChanged(nil, false)
		return
	}

	r.gen++
	gen := r.gen
	ctx := r.ctx
	r.mu.Unlock()

	r.listener.SearchingChanged(true)
	list, err := r.source.Suggest(ctx, text, r.types)
	r.listener.SearchingChanged(false)

	r.mu.Lock()
	if r.closed || gen != r.gen {
		// Superseded by a newer fetch or a selection: discard.
		r.mu.Unlock()
		return
	}

	if err != nil {
		r.list = nil
		r.open = false
		r.mu.Unlock()
		r.logger.Warn("suggestion fetch failed", zap.Error(err))
		r.listener.SuggestionsChanged(nil, false)
		return
	}

	r.list = list
	r.open = len(list) > 0
	open := r.open
	r.mu.Unlock()

	r.listener.SuggestionsChanged(list, open)
}

// resolveDetail runs on its own goroutine.
func (r *Resolver) resolveDetail(ctx context.Context, placeID string) {
	r.listener.ResolvingChanged(true)
	detail, err := r.source.Resolve(ctx, placeID)
	r.listener.ResolvingChanged(false)

	if err != nil {
		// Swallowed: re-selecting is the retry.
		r.logger.Warn("detail fetch failed", zap.String("place_id", placeID), zap.Error(err))
		return
	}

	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return
	}

	r.listener.DetailResolved(detail)
}
