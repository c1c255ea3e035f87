package sqlite

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/Thiht/transactor"
	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/vinyasa-go"
)

type testStore struct {
	db       *sql.DB
	tx       transactor.Transactor
	poses    *poseRepo
	sequence *sequenceRepo
}

func newTestStore(t *testing.T) testStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() }) //nolint

	tx, dbGetter := txStdLib.NewTransactor(db, txStdLib.NestedTransactionsSavepoints)
	logger := log.New(io.Discard)
	logger.SetLevel(log.FatalLevel)
	return testStore{
		db:       db,
		tx:       tx,
		poses:    NewPoseRepo(dbGetter, logger),
		sequence: NewSequenceRepo(dbGetter, logger),
	}
}

func seedPose(t *testing.T, s testStore, name string, category vinyasa.Category, d time.Duration) vinyasa.ExistingPoseRecord {
	t.Helper()
	p, err := s.poses.InsertPose(context.Background(), vinyasa.PoseRecord{
		Name:       name,
		Duration:   d,
		Difficulty: vinyasa.Beginner,
		Category:   category,
	})
	require.NoError(t, err)
	return p
}

func TestRunMigrations_Idempotent(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, RunMigrations(s.db))
}

func TestGenerateParameters(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "()"},
		{1, "(?)"},
		{3, "(?, ?, ?)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GenerateParameters(tt.n))
	}
}
