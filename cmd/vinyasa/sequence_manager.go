package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Thiht/transactor"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/vinyasa-go"
)

var (
	errEmptySequence = errors.New("sequence has no poses")
	errWrongSequence = errors.New("entry belongs to another sequence")
)

type SequenceManager interface {
	// Save creates the sequence and attaches its entries in one transaction.
	Save(context.Context, vinyasa.SequenceRecord, vinyasa.ComposedSequence) (SavedSequence, error)
	Read(context.Context, vinyasa.SequenceID) (SavedSequence, error)
	List(context.Context) ([]vinyasa.ExistingSequenceRecord, error)
	UpdateSpec(context.Context, vinyasa.SequenceID, vinyasa.SequenceRecord) (vinyasa.ExistingSequenceRecord, error)
	Delete(context.Context, vinyasa.SequenceID) (vinyasa.ExistingSequenceRecord, error)

	AddPose(context.Context, vinyasa.SequenceID, vinyasa.PoseID) (vinyasa.ExistingSequencePoseRecord, error)
	UpdateEntry(context.Context, vinyasa.SequenceID, vinyasa.SequencePoseID, vinyasa.EntryUpdate) (vinyasa.ExistingSequencePoseRecord, error)
	RemoveEntry(context.Context, vinyasa.SequenceID, vinyasa.SequencePoseID) error
	Reorder(context.Context, vinyasa.SequenceID, []vinyasa.SequencePoseID) error
}

// SavedSequence is a persisted sequence with its entries in position order.
type SavedSequence struct {
	vinyasa.ExistingSequenceRecord
	Composed vinyasa.ComposedSequence
}

type sequenceManager struct {
	poses     vinyasa.PoseRepo
	sequences vinyasa.SequenceRepo
	tx        transactor.Transactor
	l         *log.Logger
}

func NewSequenceManager(poses vinyasa.PoseRepo, sequences vinyasa.SequenceRepo, tx transactor.Transactor, logger *log.Logger) SequenceManager {
	return &sequenceManager{
		poses:     poses,
		sequences: sequences,
		tx:        tx,
		l:         logger,
	}
}

func (m *sequenceManager) Save(ctx context.Context, spec vinyasa.SequenceRecord, composed vinyasa.ComposedSequence) (SavedSequence, error) {
	if composed.IsEmpty() {
		return SavedSequence{}, errEmptySequence
	}
	if err := composed.Validate(); err != nil {
		return SavedSequence{}, err
	}
	for _, e := range composed.Entries {
		if !e.Pose.IsStored() {
			return SavedSequence{}, fmt.Errorf("%w: pose %q is not in the catalog", vinyasa.ErrInvalidSequence, e.Pose.Name)
		}
	}

	var saved SavedSequence
	err := m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		inserted, err := m.sequences.InsertSequence(ctx, spec)
		if err != nil {
			return fmt.Errorf("create sequence: %w", err)
		}

		records, err := m.sequences.InsertEntries(ctx, inserted.ID, composed.Records(inserted.ID))
		if err != nil {
			return fmt.Errorf("attach entries: %w", err)
		}

		saved.ExistingSequenceRecord = inserted
		saved.Composed = vinyasa.ComposedSequence{Entries: make([]vinyasa.Entry, len(composed.Entries))}
		copy(saved.Composed.Entries, composed.Entries)
		for i := range records {
			saved.Composed.Entries[i].ID = records[i].ID
		}
		return nil
	})
	if err != nil {
		return SavedSequence{}, err
	}

	m.l.Info("saved sequence", "id", saved.ID, "name", saved.Name, "entries", len(saved.Composed.Entries), "total", saved.Composed.TotalDuration())
	return saved, nil
}

func (m *sequenceManager) Read(ctx context.Context, id vinyasa.SequenceID) (SavedSequence, error) {
	var saved SavedSequence
	err := m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := m.sequences.GetSequence(ctx, id)
		if err != nil {
			return err
		}
		entries, err := m.sequences.GetEntries(ctx, id)
		if err != nil {
			return err
		}

		saved = SavedSequence{
			ExistingSequenceRecord: existing,
			Composed:               vinyasa.ComposedSequence{Entries: entries},
		}
		return nil
	})
	return saved, err
}

func (m *sequenceManager) List(ctx context.Context) ([]vinyasa.ExistingSequenceRecord, error) {
	return m.sequences.GetAllSequences(ctx)
}

func (m *sequenceManager) UpdateSpec(ctx context.Context, id vinyasa.SequenceID, spec vinyasa.SequenceRecord) (vinyasa.ExistingSequenceRecord, error) {
	return m.sequences.UpdateSequence(ctx, id, spec)
}

// Delete removes the sequence's entries before the sequence itself.
func (m *sequenceManager) Delete(ctx context.Context, id vinyasa.SequenceID) (vinyasa.ExistingSequenceRecord, error) {
	var deleted vinyasa.ExistingSequenceRecord
	err := m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		n, err := m.sequences.DeleteEntries(ctx, id)
		if err != nil {
			return fmt.Errorf("delete entries: %w", err)
		}
		deleted, err = m.sequences.DeleteSequence(ctx, id)
		if err != nil {
			return fmt.Errorf("delete sequence: %w", err)
		}
		m.l.Debug("deleted sequence", "id", id, "entries", n)
		return nil
	})
	return deleted, err
}

// AddPose appends the pose after the current last position.
func (m *sequenceManager) AddPose(ctx context.Context, id vinyasa.SequenceID, poseID vinyasa.PoseID) (vinyasa.ExistingSequencePoseRecord, error) {
	var added vinyasa.ExistingSequencePoseRecord
	err := m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := m.sequences.GetSequence(ctx, id); err != nil {
			return err
		}
		pose, err := m.poses.GetPose(ctx, poseID)
		if err != nil {
			return fmt.Errorf("get pose: %w", err)
		}
		entries, err := m.sequences.GetEntries(ctx, id)
		if err != nil {
			return err
		}

		composed := vinyasa.ComposedSequence{Entries: entries}
		if composed.Contains(pose.ID) {
			return fmt.Errorf("%w: %s is already in the sequence", vinyasa.ErrInvalidSequence, pose.Name)
		}

		position := 0
		for _, e := range entries {
			position = max(position, e.Position)
		}
		records, err := m.sequences.InsertEntries(ctx, id, []vinyasa.SequencePoseRecord{{
			SequenceID: id,
			PoseID:     pose.ID,
			Position:   position + 1,
		}})
		if err != nil {
			return err
		}
		added = records[0]
		return nil
	})
	return added, err
}

func (m *sequenceManager) UpdateEntry(ctx context.Context, id vinyasa.SequenceID, entryID vinyasa.SequencePoseID, u vinyasa.EntryUpdate) (vinyasa.ExistingSequencePoseRecord, error) {
	var updated vinyasa.ExistingSequencePoseRecord
	err := m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := m.checkOwner(ctx, id, entryID); err != nil {
			return err
		}
		var err error
		updated, err = m.sequences.UpdateEntry(ctx, entryID, u)
		return err
	})
	return updated, err
}

// RemoveEntry deletes the entry and closes the gap it leaves in the positions.
func (m *sequenceManager) RemoveEntry(ctx context.Context, id vinyasa.SequenceID, entryID vinyasa.SequencePoseID) error {
	return m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := m.checkOwner(ctx, id, entryID); err != nil {
			return err
		}
		if _, err := m.sequences.DeleteEntry(ctx, entryID); err != nil {
			return err
		}

		remaining, err := m.sequences.GetEntries(ctx, id)
		if err != nil {
			return err
		}
		ids := make([]vinyasa.SequencePoseID, len(remaining))
		for i, e := range remaining {
			ids[i] = e.ID
		}
		return m.sequences.ReorderEntries(ctx, id, ids)
	})
}

func (m *sequenceManager) Reorder(ctx context.Context, id vinyasa.SequenceID, ids []vinyasa.SequencePoseID) error {
	return m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := m.sequences.GetSequence(ctx, id); err != nil {
			return err
		}
		return m.sequences.ReorderEntries(ctx, id, ids)
	})
}

func (m *sequenceManager) checkOwner(ctx context.Context, id vinyasa.SequenceID, entryID vinyasa.SequencePoseID) error {
	entry, err := m.sequences.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.SequenceID != id {
		return fmt.Errorf("%w: %s", errWrongSequence, entryID)
	}
	return nil
}
