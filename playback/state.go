// Package playback steps through a composed sequence with a per-entry countdown.
package playback

import (
	"fmt"
	"time"
)

// TickInterval is the countdown resolution.
const TickInterval = time.Second

type Status uint8

const (
	_ Status = iota
	Idle
	Running
	Paused
	Completed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		panic(fmt.Sprintf("no matching enum for Status: %d", s))
	}
}

// State is an immutable snapshot of a playback session.
type State struct {
	Index     int
	Remaining time.Duration
	Status    Status
}

// Start returns the initial state for a sequence with the given entry durations.
// The zero State is returned when there are no entries.
func Start(durations []time.Duration) State {
	if len(durations) == 0 {
		return State{}
	}
	return State{
		Index:     0,
		Remaining: durations[0],
		Status:    Idle,
	}
}

type CommandKind uint8

const (
	_ CommandKind = iota
	Play
	Pause
	Tick
	Advance
	Retreat
	Jump
)

func (k CommandKind) String() string {
	switch k {
	case Play:
		return "play"
	case Pause:
		return "pause"
	case Tick:
		return "tick"
	case Advance:
		return "advance"
	case Retreat:
		return "retreat"
	case Jump:
		return "jump"
	default:
		panic(fmt.Sprintf("no matching enum for CommandKind: %d", k))
	}
}

type Command struct {
	Kind CommandKind
	// Index is the target of a Jump.
	Index int
}

// Effects are side effects the owner of a State must carry out after a transition.
type Effects uint8

const (
	ArmTimer Effects = 1 << iota
	DisarmTimer
	NotifyCompleted
)

func (e Effects) Has(flag Effects) bool {
	return e&flag != 0
}

// Next applies c to s. Commands that are not valid in s leave it unchanged with no effects.
func Next(durations []time.Duration, s State, c Command) (State, Effects) {
	if len(durations) == 0 || s.Index < 0 || s.Index >= len(durations) || s.Status == Completed {
		return s, 0
	}

	switch c.Kind {
	case Play:
		if (s.Status == Idle || s.Status == Paused) && s.Remaining > 0 {
			s.Status = Running
			return s, ArmTimer
		}
	case Pause:
		if s.Status == Running {
			s.Status = Paused
			return s, DisarmTimer
		}
	case Tick:
		if s.Status == Running && s.Remaining > 0 {
			s.Remaining -= TickInterval
			if s.Remaining <= 0 {
				s.Remaining = 0
				return advance(durations, s)
			}
			return s, 0
		}
	case Advance:
		return advance(durations, s)
	case Retreat:
		if s.Index > 0 {
			return moveTo(durations, s, s.Index-1)
		}
	case Jump:
		if c.Index >= 0 && c.Index < len(durations) {
			return moveTo(durations, s, c.Index)
		}
	}
	return s, 0
}

func advance(durations []time.Duration, s State) (State, Effects) {
	if s.Index < len(durations)-1 {
		return moveTo(durations, s, s.Index+1)
	}

	fx := NotifyCompleted
	if s.Status == Running {
		fx |= DisarmTimer
	}
	s.Status = Completed
	s.Remaining = 0
	return s, fx
}

// moveTo lands paused on entry i with its full duration.
func moveTo(durations []time.Duration, s State, i int) (State, Effects) {
	var fx Effects
	if s.Status == Running {
		fx = DisarmTimer
	}
	return State{
		Index:     i,
		Remaining: durations[i],
		Status:    Paused,
	}, fx
}
