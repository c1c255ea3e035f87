package vinyasa

import (
	"context"
)

// PoseRepo is the pose catalog.
type PoseRepo interface {
	InsertPose(context.Context, PoseRecord) (ExistingPoseRecord, error)
	UpdatePose(ctx context.Context, id PoseID, p PoseRecord) (ExistingPoseRecord, error)
	GetPose(ctx context.Context, id PoseID) (ExistingPoseRecord, error)
	GetPoseByName(ctx context.Context, name string) (ExistingPoseRecord, error)
	// GetAllPoses returns the catalog ordered by name.
	GetAllPoses(context.Context) ([]ExistingPoseRecord, error)
}

type SequenceRepo interface {
	InsertSequence(context.Context, SequenceRecord) (ExistingSequenceRecord, error)
	UpdateSequence(ctx context.Context, id SequenceID, s SequenceRecord) (ExistingSequenceRecord, error)
	DeleteSequence(ctx context.Context, id SequenceID) (ExistingSequenceRecord, error)
	GetSequence(ctx context.Context, id SequenceID) (ExistingSequenceRecord, error)
	// GetAllSequences returns sequences newest first.
	GetAllSequences(context.Context) ([]ExistingSequenceRecord, error)

	InsertEntries(ctx context.Context, id SequenceID, entries []SequencePoseRecord) ([]ExistingSequencePoseRecord, error)
	// GetEntries returns the sequence's entries joined with their poses, ordered by position.
	GetEntries(ctx context.Context, id SequenceID) ([]Entry, error)
	GetEntry(ctx context.Context, id SequencePoseID) (ExistingSequencePoseRecord, error)
	UpdateEntry(ctx context.Context, id SequencePoseID, u EntryUpdate) (ExistingSequencePoseRecord, error)
	// ReorderEntries rewrites positions 1..n following ids, which must name every entry of the sequence.
	ReorderEntries(ctx context.Context, id SequenceID, ids []SequencePoseID) error
	DeleteEntry(ctx context.Context, id SequencePoseID) (ExistingSequencePoseRecord, error)
	DeleteEntries(ctx context.Context, id SequenceID) (int, error)
}
