package vinyasa

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidSequence = errors.New("invalid sequence")

// Entry is one position of a composed sequence. ID is empty until the entry is persisted.
type Entry struct {
	ID             SequencePoseID
	Pose           ExistingPoseRecord
	Position       int
	CustomDuration *time.Duration
	Notes          string
}

func (e Entry) EffectiveDuration() time.Duration {
	if e.CustomDuration != nil && *e.CustomDuration > 0 {
		return *e.CustomDuration
	}
	return e.Pose.Duration
}

func (e Entry) Record(sequenceID SequenceID) SequencePoseRecord {
	return SequencePoseRecord{
		SequenceID:     sequenceID,
		PoseID:         e.Pose.ID,
		Position:       e.Position,
		CustomDuration: e.CustomDuration,
		Notes:          e.Notes,
	}
}

type ComposedSequence struct {
	Entries []Entry
}

func (s ComposedSequence) IsEmpty() bool {
	return len(s.Entries) == 0
}

func (s ComposedSequence) TotalDuration() time.Duration {
	var total time.Duration
	for _, e := range s.Entries {
		total += e.EffectiveDuration()
	}
	return total
}

func (s ComposedSequence) Durations() []time.Duration {
	durations := make([]time.Duration, len(s.Entries))
	for i, e := range s.Entries {
		durations[i] = e.EffectiveDuration()
	}
	return durations
}

func (s ComposedSequence) Contains(id PoseID) bool {
	for _, e := range s.Entries {
		if e.Pose.ID == id {
			return true
		}
	}
	return false
}

// Append adds the pose at the next position.
func (s *ComposedSequence) Append(pose ExistingPoseRecord) {
	s.Entries = append(s.Entries, Entry{
		Pose:     pose,
		Position: len(s.Entries) + 1,
	})
}

// Validate checks that positions run 1..n in order and that no pose repeats.
func (s ComposedSequence) Validate() error {
	seen := make(map[PoseID]struct{}, len(s.Entries))
	for i, e := range s.Entries {
		if e.Position != i+1 {
			return fmt.Errorf("%w: entry %d has position %d", ErrInvalidSequence, i, e.Position)
		}
		if _, dup := seen[e.Pose.ID]; dup {
			return fmt.Errorf("%w: pose %q appears more than once", ErrInvalidSequence, e.Pose.ID)
		}
		seen[e.Pose.ID] = struct{}{}
	}
	return nil
}

// Records maps the entries to rows ready to attach to the given sequence.
func (s ComposedSequence) Records(sequenceID SequenceID) []SequencePoseRecord {
	records := make([]SequencePoseRecord, len(s.Entries))
	for i, e := range s.Entries {
		records[i] = e.Record(sequenceID)
	}
	return records
}
