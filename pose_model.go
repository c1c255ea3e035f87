package vinyasa

import (
	"fmt"
	"time"
)

type (
	PoseID         string
	SequenceID     string
	SequencePoseID string
)

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

type Category string

const (
	StandingCategory    Category = "standing"
	BalanceCategory     Category = "balance"
	BackbendCategory    Category = "backbend"
	ForwardFoldCategory Category = "forward_fold"
	TwistCategory       Category = "twist"
	CoreCategory        Category = "core"
	RelaxationCategory  Category = "relaxation"
)

// PoseRole marks a pose the composer should pin to the start or end of a sequence.
type PoseRole uint8

const (
	NoRole PoseRole = iota
	OpeningRole
	ClosingRole
)

func (r PoseRole) String() string {
	switch r {
	case NoRole:
		return "none"
	case OpeningRole:
		return "opening"
	case ClosingRole:
		return "closing"
	default:
		panic(fmt.Sprintf("no matching enum for PoseRole: %d", r))
	}
}

func ParsePoseRole(s string) (PoseRole, bool) {
	switch s {
	case "", "none":
		return NoRole, true
	case "opening":
		return OpeningRole, true
	case "closing":
		return ClosingRole, true
	default:
		return NoRole, false
	}
}

func (r PoseRole) IsAnchor() bool {
	return r == OpeningRole || r == ClosingRole
}

type PoseRecord struct {
	Name         string
	Description  string
	Instructions string
	Benefits     string
	Precautions  string

	//
	Duration   time.Duration
	Difficulty Difficulty
	Category   Category
	Role       PoseRole
}

type ExistingPoseRecord struct {
	ExistingRecord[PoseID]
	PoseRecord
}

type SequenceRecord struct {
	Name        string
	Description string

	//
	Duration time.Duration
}

type ExistingSequenceRecord struct {
	ExistingRecord[SequenceID]
	SequenceRecord
}

type SequencePoseRecord struct {
	SequenceID SequenceID
	PoseID     PoseID
	Position   int

	//
	CustomDuration *time.Duration
	Notes          string
}

type ExistingSequencePoseRecord struct {
	ExistingRecord[SequencePoseID]
	SequencePoseRecord
}

// EntryUpdate changes an entry's duration override and notes. A nil field is left untouched;
// the Clear flags reset the field to empty.
type EntryUpdate struct {
	CustomDuration      *time.Duration
	ClearCustomDuration bool
	Notes               *string
}
