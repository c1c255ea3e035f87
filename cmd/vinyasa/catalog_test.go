package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/vinyasa-go"
	"github.com/benjamonnguyen/vinyasa-go/sqlite"
)

func TestParseCatalog(t *testing.T) {
	const doc = `
categories:
  - category: standing
    poses:
      - name: Mountain Pose
        duration_seconds: 60
        difficulty: Beginner
        role: opening
  - category: relaxation
    poses:
      - name: Savasana
        duration_seconds: 300
        difficulty: beginner
        role: closing
`
	poses, err := parseCatalog(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, poses, 2)

	assert.Equal(t, "Mountain Pose", poses[0].Name)
	assert.Equal(t, vinyasa.StandingCategory, poses[0].Category)
	assert.Equal(t, vinyasa.Beginner, poses[0].Difficulty)
	assert.Equal(t, vinyasa.OpeningRole, poses[0].Role)
	assert.Equal(t, time.Minute, poses[0].Duration)
	assert.Equal(t, vinyasa.ClosingRole, poses[1].Role)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown role", "categories:\n  - category: core\n    poses:\n      - {name: Boat, duration_seconds: 30, difficulty: beginner, role: middle}\n"},
		{"unknown difficulty", "categories:\n  - category: core\n    poses:\n      - {name: Boat, duration_seconds: 30, difficulty: expert}\n"},
		{"unknown field", "categories:\n  - category: core\n    poses:\n      - {name: Boat, seconds: 30, difficulty: beginner}\n"},
		{"missing category", "categories:\n  - poses:\n      - {name: Boat, duration_seconds: 30, difficulty: beginner}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCatalog(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	poses, err := parseCatalog(bytes.NewReader(defaultCatalog))
	require.NoError(t, err)
	require.NotEmpty(t, poses)

	var opening, closing int
	for _, p := range poses {
		assert.GreaterOrEqual(t, p.Duration, time.Second, p.Name)
		switch p.Role {
		case vinyasa.OpeningRole:
			opening++
		case vinyasa.ClosingRole:
			closing++
		}
	}
	assert.Equal(t, 1, opening)
	assert.Equal(t, 1, closing)
}

// upsertPoseRepo records inserts and updates keyed by name.
type upsertPoseRepo struct {
	mockPoseRepo
	byName   map[string]vinyasa.ExistingPoseRecord
	inserted []string
	updated  []string
}

func (r *upsertPoseRepo) GetPoseByName(ctx context.Context, name string) (vinyasa.ExistingPoseRecord, error) {
	p, ok := r.byName[name]
	if !ok {
		return vinyasa.ExistingPoseRecord{}, sqlite.ErrNotFound
	}
	return p, nil
}

func (r *upsertPoseRepo) InsertPose(ctx context.Context, p vinyasa.PoseRecord) (vinyasa.ExistingPoseRecord, error) {
	r.inserted = append(r.inserted, p.Name)
	return vinyasa.ExistingPoseRecord{PoseRecord: p}, nil
}

func (r *upsertPoseRepo) UpdatePose(ctx context.Context, id vinyasa.PoseID, p vinyasa.PoseRecord) (vinyasa.ExistingPoseRecord, error) {
	r.updated = append(r.updated, string(id))
	return vinyasa.ExistingPoseRecord{PoseRecord: p}, nil
}

func TestImportCatalog(t *testing.T) {
	repo := &upsertPoseRepo{byName: map[string]vinyasa.ExistingPoseRecord{
		"Tree Pose": {ExistingRecord: vinyasa.ExistingRecord[vinyasa.PoseID]{ID: "tree-id"}},
	}}
	tx := &mockTransactor{}

	res, err := importCatalog(context.Background(), repo, tx, []vinyasa.PoseRecord{
		{Name: "Tree Pose"},
		{Name: "Boat Pose"},
	})
	require.NoError(t, err)
	assert.Equal(t, importResult{inserted: 1, updated: 1}, res)
	assert.Equal(t, []string{"Boat Pose"}, repo.inserted)
	assert.Equal(t, []string{"tree-id"}, repo.updated)
	assert.Equal(t, 1, tx.calls)
}
