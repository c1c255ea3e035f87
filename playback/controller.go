package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/vinyasa-go"
)

var ErrNoEntries = errors.New("sequence has no entries")

type Option func(*Controller)

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		c.scheduler = s
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.l = l
	}
}

// OnChange registers fn to receive every state the controller moves to.
func OnChange(fn func(State)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// OnComplete registers fn to run once when the last entry finishes.
func OnComplete(fn func()) Option {
	return func(c *Controller) {
		c.onComplete = fn
	}
}

// Controller owns a single playback session. Commands and timer ticks are
// serialized; callbacks run after the lock is released.
type Controller struct {
	entries   []vinyasa.Entry
	durations []time.Duration

	mu         sync.Mutex
	state      State
	generation uint64
	cancelTick func()
	closed     bool

	scheduler  Scheduler
	l          *log.Logger
	onChange   func(State)
	onComplete func()
}

func NewController(seq vinyasa.ComposedSequence, opts ...Option) (*Controller, error) {
	if seq.IsEmpty() {
		return nil, ErrNoEntries
	}

	c := &Controller{
		entries:   seq.Entries,
		durations: seq.Durations(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.scheduler == nil {
		c.scheduler = NewTickerScheduler(context.Background())
	}
	if c.l == nil {
		c.l = log.Default()
	}
	c.state = Start(c.durations)
	return c, nil
}

func (c *Controller) Play() {
	c.dispatch(Command{Kind: Play})
}

func (c *Controller) Pause() {
	c.dispatch(Command{Kind: Pause})
}

// Advance skips to the next entry, or completes the sequence from the last one.
func (c *Controller) Advance() {
	c.dispatch(Command{Kind: Advance})
}

func (c *Controller) Retreat() {
	c.dispatch(Command{Kind: Retreat})
}

func (c *Controller) Jump(i int) {
	c.dispatch(Command{Kind: Jump, Index: i})
}

// Tick counts down one TickInterval. The armed timer calls it; tests may call it directly.
func (c *Controller) Tick() {
	c.dispatch(Command{Kind: Tick})
}

func (c *Controller) Len() int {
	return len(c.entries)
}

// Toggle plays when stopped and pauses when running.
func (c *Controller) Toggle() {
	if c.State().Status == Running {
		c.Pause()
		return
	}
	c.Play()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the entry at the current index along with the state.
func (c *Controller) Current() (vinyasa.Entry, State) {
	s := c.State()
	return c.entries[s.Index], s
}

func (c *Controller) Entries() []vinyasa.Entry {
	return c.entries
}

// Close disarms the timer. Later commands are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disarm()
	c.closed = true
}

func (c *Controller) dispatch(cmd Command) {
	c.mu.Lock()
	changed, fx := c.apply(cmd)
	s := c.state
	c.mu.Unlock()

	c.notify(s, changed, fx)
}

// tickFrom handles a tick armed at generation gen. Ticks from a cancelled arming are dropped.
func (c *Controller) tickFrom(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.cancelTick == nil {
		c.mu.Unlock()
		c.l.Debug("dropping stale tick", "generation", gen)
		return
	}
	changed, fx := c.apply(Command{Kind: Tick})
	s := c.state
	c.mu.Unlock()

	c.notify(s, changed, fx)
}

// apply must be called with mu held.
func (c *Controller) apply(cmd Command) (bool, Effects) {
	if c.closed {
		return false, 0
	}

	prev := c.state
	next, fx := Next(c.durations, prev, cmd)
	c.state = next
	if next != prev && cmd.Kind != Tick {
		c.l.Debug("playback transition", "command", cmd.Kind, "from", prev.Status, "to", next.Status, "index", next.Index, "remaining", next.Remaining)
	}

	if fx.Has(DisarmTimer) {
		c.disarm()
	}
	if fx.Has(ArmTimer) {
		c.disarm()
		c.generation++
		gen := c.generation
		c.cancelTick = c.scheduler.Every(TickInterval, func() {
			c.tickFrom(gen)
		})
	}
	return next != prev, fx
}

// disarm must be called with mu held.
func (c *Controller) disarm() {
	if c.cancelTick == nil {
		return
	}
	c.cancelTick()
	c.cancelTick = nil
	c.generation++
}

func (c *Controller) notify(s State, changed bool, fx Effects) {
	if changed && c.onChange != nil {
		c.onChange(s)
	}
	if fx.Has(NotifyCompleted) {
		c.l.Info("sequence completed", "entries", len(c.entries))
		if c.onComplete != nil {
			c.onComplete()
		}
	}
}
