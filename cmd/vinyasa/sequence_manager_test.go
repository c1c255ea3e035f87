package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Thiht/transactor"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/vinyasa-go"
)

// mockPoseRepo is a mock implementation of vinyasa.PoseRepo
type mockPoseRepo struct {
	poses map[vinyasa.PoseID]vinyasa.ExistingPoseRecord
}

func (m *mockPoseRepo) InsertPose(ctx context.Context, p vinyasa.PoseRecord) (vinyasa.ExistingPoseRecord, error) {
	return vinyasa.ExistingPoseRecord{}, nil
}

func (m *mockPoseRepo) UpdatePose(ctx context.Context, id vinyasa.PoseID, p vinyasa.PoseRecord) (vinyasa.ExistingPoseRecord, error) {
	return vinyasa.ExistingPoseRecord{}, nil
}

func (m *mockPoseRepo) GetPose(ctx context.Context, id vinyasa.PoseID) (vinyasa.ExistingPoseRecord, error) {
	p, ok := m.poses[id]
	if !ok {
		return vinyasa.ExistingPoseRecord{}, errors.New("not found")
	}
	return p, nil
}

func (m *mockPoseRepo) GetPoseByName(ctx context.Context, name string) (vinyasa.ExistingPoseRecord, error) {
	return vinyasa.ExistingPoseRecord{}, nil
}

func (m *mockPoseRepo) GetAllPoses(ctx context.Context) ([]vinyasa.ExistingPoseRecord, error) {
	return nil, nil
}

// mockSequenceRepo is a mock implementation of vinyasa.SequenceRepo
type mockSequenceRepo struct {
	insertSequenceFunc func(context.Context, vinyasa.SequenceRecord) (vinyasa.ExistingSequenceRecord, error)
	insertEntriesFunc  func(context.Context, vinyasa.SequenceID, []vinyasa.SequencePoseRecord) ([]vinyasa.ExistingSequencePoseRecord, error)
	getEntriesFunc     func(context.Context, vinyasa.SequenceID) ([]vinyasa.Entry, error)
	getEntryFunc       func(context.Context, vinyasa.SequencePoseID) (vinyasa.ExistingSequencePoseRecord, error)
	reorderFunc        func(context.Context, vinyasa.SequenceID, []vinyasa.SequencePoseID) error
	deleteEntryFunc    func(context.Context, vinyasa.SequencePoseID) (vinyasa.ExistingSequencePoseRecord, error)

	calls []string
}

func (m *mockSequenceRepo) InsertSequence(ctx context.Context, s vinyasa.SequenceRecord) (vinyasa.ExistingSequenceRecord, error) {
	m.calls = append(m.calls, "InsertSequence")
	if m.insertSequenceFunc != nil {
		return m.insertSequenceFunc(ctx, s)
	}
	return vinyasa.ExistingSequenceRecord{}, nil
}

func (m *mockSequenceRepo) UpdateSequence(ctx context.Context, id vinyasa.SequenceID, s vinyasa.SequenceRecord) (vinyasa.ExistingSequenceRecord, error) {
	m.calls = append(m.calls, "UpdateSequence")
	return vinyasa.ExistingSequenceRecord{}, nil
}

func (m *mockSequenceRepo) DeleteSequence(ctx context.Context, id vinyasa.SequenceID) (vinyasa.ExistingSequenceRecord, error) {
	m.calls = append(m.calls, "DeleteSequence")
	return vinyasa.ExistingSequenceRecord{}, nil
}

func (m *mockSequenceRepo) GetSequence(ctx context.Context, id vinyasa.SequenceID) (vinyasa.ExistingSequenceRecord, error) {
	m.calls = append(m.calls, "GetSequence")
	return vinyasa.ExistingSequenceRecord{
		ExistingRecord: vinyasa.ExistingRecord[vinyasa.SequenceID]{ID: id},
	}, nil
}

func (m *mockSequenceRepo) GetAllSequences(ctx context.Context) ([]vinyasa.ExistingSequenceRecord, error) {
	return nil, nil
}

func (m *mockSequenceRepo) InsertEntries(ctx context.Context, id vinyasa.SequenceID, entries []vinyasa.SequencePoseRecord) ([]vinyasa.ExistingSequencePoseRecord, error) {
	m.calls = append(m.calls, "InsertEntries")
	if m.insertEntriesFunc != nil {
		return m.insertEntriesFunc(ctx, id, entries)
	}
	return nil, nil
}

func (m *mockSequenceRepo) GetEntries(ctx context.Context, id vinyasa.SequenceID) ([]vinyasa.Entry, error) {
	m.calls = append(m.calls, "GetEntries")
	if m.getEntriesFunc != nil {
		return m.getEntriesFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockSequenceRepo) GetEntry(ctx context.Context, id vinyasa.SequencePoseID) (vinyasa.ExistingSequencePoseRecord, error) {
	m.calls = append(m.calls, "GetEntry")
	if m.getEntryFunc != nil {
		return m.getEntryFunc(ctx, id)
	}
	return vinyasa.ExistingSequencePoseRecord{}, nil
}

func (m *mockSequenceRepo) UpdateEntry(ctx context.Context, id vinyasa.SequencePoseID, u vinyasa.EntryUpdate) (vinyasa.ExistingSequencePoseRecord, error) {
	m.calls = append(m.calls, "UpdateEntry")
	return vinyasa.ExistingSequencePoseRecord{}, nil
}

func (m *mockSequenceRepo) ReorderEntries(ctx context.Context, id vinyasa.SequenceID, ids []vinyasa.SequencePoseID) error {
	m.calls = append(m.calls, "ReorderEntries")
	if m.reorderFunc != nil {
		return m.reorderFunc(ctx, id, ids)
	}
	return nil
}

func (m *mockSequenceRepo) DeleteEntry(ctx context.Context, id vinyasa.SequencePoseID) (vinyasa.ExistingSequencePoseRecord, error) {
	m.calls = append(m.calls, "DeleteEntry")
	if m.deleteEntryFunc != nil {
		return m.deleteEntryFunc(ctx, id)
	}
	return vinyasa.ExistingSequencePoseRecord{}, nil
}

func (m *mockSequenceRepo) DeleteEntries(ctx context.Context, id vinyasa.SequenceID) (int, error) {
	m.calls = append(m.calls, "DeleteEntries")
	return 0, nil
}

// mockTransactor is a mock implementation of transactor.Transactor
type mockTransactor struct {
	withinTransactionFunc func(context.Context, func(context.Context) error) error
	calls                 int
}

func (m *mockTransactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	m.calls++
	if m.withinTransactionFunc != nil {
		return m.withinTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

var (
	_ transactor.Transactor = (*mockTransactor)(nil)
	_ vinyasa.SequenceRepo  = (*mockSequenceRepo)(nil)
	_ vinyasa.PoseRepo      = (*mockPoseRepo)(nil)
)

func testPose(id string, d time.Duration) vinyasa.ExistingPoseRecord {
	return vinyasa.ExistingPoseRecord{
		ExistingRecord: vinyasa.ExistingRecord[vinyasa.PoseID]{ID: vinyasa.PoseID(id)},
		PoseRecord:     vinyasa.PoseRecord{Name: id, Duration: d},
	}
}

func newTestManager(poses *mockPoseRepo, repo *mockSequenceRepo, tx *mockTransactor) *sequenceManager {
	return NewSequenceManager(poses, repo, tx, log.New(io.Discard)).(*sequenceManager)
}

func TestSequenceManager_Save(t *testing.T) {
	t.Parallel()

	spec := vinyasa.SequenceRecord{Name: "Morning", Duration: 10 * time.Minute}
	var composed vinyasa.ComposedSequence
	composed.Append(testPose("mountain", time.Minute))
	composed.Append(testPose("savasana", 5*time.Minute))

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		repo := &mockSequenceRepo{
			insertSequenceFunc: func(ctx context.Context, s vinyasa.SequenceRecord) (vinyasa.ExistingSequenceRecord, error) {
				assert.Equal(t, spec, s)
				return vinyasa.ExistingSequenceRecord{
					ExistingRecord: vinyasa.ExistingRecord[vinyasa.SequenceID]{ID: "seq-1"},
					SequenceRecord: s,
				}, nil
			},
			insertEntriesFunc: func(ctx context.Context, id vinyasa.SequenceID, records []vinyasa.SequencePoseRecord) ([]vinyasa.ExistingSequencePoseRecord, error) {
				assert.Equal(t, vinyasa.SequenceID("seq-1"), id)
				require.Len(t, records, 2)
				out := make([]vinyasa.ExistingSequencePoseRecord, len(records))
				for i, r := range records {
					assert.Equal(t, i+1, r.Position)
					assert.Equal(t, id, r.SequenceID)
					out[i] = vinyasa.ExistingSequencePoseRecord{
						ExistingRecord:     vinyasa.ExistingRecord[vinyasa.SequencePoseID]{ID: vinyasa.SequencePoseID("entry-" + string(r.PoseID))},
						SequencePoseRecord: r,
					}
				}
				return out, nil
			},
		}
		tx := &mockTransactor{}
		manager := newTestManager(&mockPoseRepo{}, repo, tx)

		saved, err := manager.Save(context.Background(), spec, composed)
		require.NoError(t, err)
		assert.Equal(t, vinyasa.SequenceID("seq-1"), saved.ID)
		assert.Equal(t, vinyasa.SequencePoseID("entry-savasana"), saved.Composed.Entries[1].ID)
		assert.Empty(t, composed.Entries[1].ID, "input must not be mutated")
		assert.Equal(t, 1, tx.calls)
	})

	t.Run("empty sequence", func(t *testing.T) {
		t.Parallel()

		repo := &mockSequenceRepo{}
		tx := &mockTransactor{}
		manager := newTestManager(&mockPoseRepo{}, repo, tx)

		_, err := manager.Save(context.Background(), spec, vinyasa.ComposedSequence{})
		assert.ErrorIs(t, err, errEmptySequence)
		assert.Empty(t, repo.calls)
		assert.Zero(t, tx.calls)
	})

	t.Run("attach failure surfaces from the transaction", func(t *testing.T) {
		t.Parallel()

		attachErr := errors.New("constraint failed")
		repo := &mockSequenceRepo{
			insertSequenceFunc: func(ctx context.Context, s vinyasa.SequenceRecord) (vinyasa.ExistingSequenceRecord, error) {
				return vinyasa.ExistingSequenceRecord{ExistingRecord: vinyasa.ExistingRecord[vinyasa.SequenceID]{ID: "seq-1"}}, nil
			},
			insertEntriesFunc: func(context.Context, vinyasa.SequenceID, []vinyasa.SequencePoseRecord) ([]vinyasa.ExistingSequencePoseRecord, error) {
				return nil, attachErr
			},
		}
		var txErr error
		tx := &mockTransactor{
			withinTransactionFunc: func(ctx context.Context, fn func(context.Context) error) error {
				txErr = fn(ctx)
				return txErr
			},
		}
		manager := newTestManager(&mockPoseRepo{}, repo, tx)

		_, err := manager.Save(context.Background(), spec, composed)
		assert.ErrorIs(t, err, attachErr)
		assert.ErrorIs(t, txErr, attachErr, "transaction must see the error to roll back")
	})
}

func TestSequenceManager_AddPose(t *testing.T) {
	t.Parallel()

	poses := &mockPoseRepo{poses: map[vinyasa.PoseID]vinyasa.ExistingPoseRecord{
		"tree":     testPose("tree", time.Minute),
		"mountain": testPose("mountain", time.Minute),
	}}
	existing := func(context.Context, vinyasa.SequenceID) ([]vinyasa.Entry, error) {
		return []vinyasa.Entry{
			{ID: "e1", Pose: testPose("mountain", time.Minute), Position: 1},
			{ID: "e2", Pose: testPose("warrior", time.Minute), Position: 2},
		}, nil
	}

	t.Run("appends after last position", func(t *testing.T) {
		t.Parallel()

		repo := &mockSequenceRepo{
			getEntriesFunc: existing,
			insertEntriesFunc: func(ctx context.Context, id vinyasa.SequenceID, records []vinyasa.SequencePoseRecord) ([]vinyasa.ExistingSequencePoseRecord, error) {
				require.Len(t, records, 1)
				assert.Equal(t, 3, records[0].Position)
				assert.Equal(t, vinyasa.PoseID("tree"), records[0].PoseID)
				return []vinyasa.ExistingSequencePoseRecord{{SequencePoseRecord: records[0]}}, nil
			},
		}
		manager := newTestManager(poses, repo, &mockTransactor{})

		added, err := manager.AddPose(context.Background(), "seq-1", "tree")
		require.NoError(t, err)
		assert.Equal(t, 3, added.Position)
	})

	t.Run("rejects a pose already in the sequence", func(t *testing.T) {
		t.Parallel()

		repo := &mockSequenceRepo{getEntriesFunc: existing}
		manager := newTestManager(poses, repo, &mockTransactor{})

		_, err := manager.AddPose(context.Background(), "seq-1", "mountain")
		assert.ErrorIs(t, err, vinyasa.ErrInvalidSequence)
		assert.NotContains(t, repo.calls, "InsertEntries")
	})
}

func TestSequenceManager_RemoveEntry(t *testing.T) {
	t.Parallel()

	owned := func(ctx context.Context, id vinyasa.SequencePoseID) (vinyasa.ExistingSequencePoseRecord, error) {
		return vinyasa.ExistingSequencePoseRecord{
			ExistingRecord:     vinyasa.ExistingRecord[vinyasa.SequencePoseID]{ID: id},
			SequencePoseRecord: vinyasa.SequencePoseRecord{SequenceID: "seq-1"},
		}, nil
	}

	t.Run("renumbers what is left", func(t *testing.T) {
		t.Parallel()

		var reordered []vinyasa.SequencePoseID
		repo := &mockSequenceRepo{
			getEntryFunc: owned,
			getEntriesFunc: func(context.Context, vinyasa.SequenceID) ([]vinyasa.Entry, error) {
				return []vinyasa.Entry{{ID: "e1", Position: 1}, {ID: "e3", Position: 3}}, nil
			},
			reorderFunc: func(ctx context.Context, id vinyasa.SequenceID, ids []vinyasa.SequencePoseID) error {
				reordered = ids
				return nil
			},
		}
		manager := newTestManager(&mockPoseRepo{}, repo, &mockTransactor{})

		require.NoError(t, manager.RemoveEntry(context.Background(), "seq-1", "e2"))
		assert.Equal(t, []vinyasa.SequencePoseID{"e1", "e3"}, reordered)
		assert.Equal(t, []string{"GetEntry", "DeleteEntry", "GetEntries", "ReorderEntries"}, repo.calls)
	})

	t.Run("entry from another sequence", func(t *testing.T) {
		t.Parallel()

		repo := &mockSequenceRepo{getEntryFunc: owned}
		manager := newTestManager(&mockPoseRepo{}, repo, &mockTransactor{})

		err := manager.RemoveEntry(context.Background(), "seq-2", "e2")
		assert.ErrorIs(t, err, errWrongSequence)
		assert.NotContains(t, repo.calls, "DeleteEntry")

		_, err = manager.UpdateEntry(context.Background(), "seq-2", "e2", vinyasa.EntryUpdate{})
		assert.ErrorIs(t, err, errWrongSequence)
	})
}

func TestSequenceManager_Delete(t *testing.T) {
	t.Parallel()

	repo := &mockSequenceRepo{}
	tx := &mockTransactor{}
	manager := newTestManager(&mockPoseRepo{}, repo, tx)

	_, err := manager.Delete(context.Background(), "seq-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"DeleteEntries", "DeleteSequence"}, repo.calls)
	assert.Equal(t, 1, tx.calls)
}

func TestSequenceManager_Reorder(t *testing.T) {
	t.Parallel()

	var got []vinyasa.SequencePoseID
	repo := &mockSequenceRepo{
		reorderFunc: func(ctx context.Context, id vinyasa.SequenceID, ids []vinyasa.SequencePoseID) error {
			got = ids
			return nil
		},
	}
	manager := newTestManager(&mockPoseRepo{}, repo, &mockTransactor{})

	ids := []vinyasa.SequencePoseID{"e3", "e1", "e2"}
	require.NoError(t, manager.Reorder(context.Background(), "seq-1", ids))
	assert.Equal(t, ids, got)
}
