package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/vinyasa-go"
)

func TestPoseRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mountain, err := s.poses.InsertPose(ctx, vinyasa.PoseRecord{
		Name:         "Mountain Pose",
		Description:  "Stand tall",
		Instructions: "Feet together",
		Benefits:     "Posture",
		Duration:     60 * time.Second,
		Difficulty:   vinyasa.Beginner,
		Category:     vinyasa.StandingCategory,
		Role:         vinyasa.OpeningRole,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, mountain.ID)

	t.Run("get by id", func(t *testing.T) {
		got, err := s.poses.GetPose(ctx, mountain.ID)
		require.NoError(t, err)
		assert.Equal(t, mountain.PoseRecord, got.PoseRecord)
		assert.Equal(t, vinyasa.OpeningRole, got.Role)
	})

	t.Run("get by name ignores case", func(t *testing.T) {
		got, err := s.poses.GetPoseByName(ctx, "mountain pose")
		require.NoError(t, err)
		assert.Equal(t, mountain.ID, got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.poses.GetPose(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.poses.GetPoseByName(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		_, err := s.poses.InsertPose(ctx, mountain.PoseRecord)
		assert.Error(t, err)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := s.poses.InsertPose(ctx, vinyasa.PoseRecord{Name: " ", Duration: time.Minute, Category: "core", Difficulty: vinyasa.Beginner})
		assert.Error(t, err)
		_, err = s.poses.InsertPose(ctx, vinyasa.PoseRecord{Name: "Blink", Duration: 0, Category: "core", Difficulty: vinyasa.Beginner})
		assert.Error(t, err)
		_, err = s.poses.InsertPose(ctx, vinyasa.PoseRecord{Name: "Blink", Duration: 2500 * time.Millisecond, Category: "core", Difficulty: vinyasa.Beginner})
		assert.Error(t, err)
	})

	t.Run("update", func(t *testing.T) {
		rec := mountain.PoseRecord
		rec.Duration = 90 * time.Second
		rec.Precautions = "Low blood pressure"
		updated, err := s.poses.UpdatePose(ctx, mountain.ID, rec)
		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, updated.Duration)

		got, err := s.poses.GetPose(ctx, mountain.ID)
		require.NoError(t, err)
		assert.Equal(t, "Low blood pressure", got.Precautions)
	})

	t.Run("all ordered by name", func(t *testing.T) {
		seedPose(t, s, "Tree Pose", vinyasa.BalanceCategory, 45*time.Second)
		seedPose(t, s, "Boat Pose", vinyasa.CoreCategory, 30*time.Second)

		poses, err := s.poses.GetAllPoses(ctx)
		require.NoError(t, err)
		var names []string
		for _, p := range poses {
			names = append(names, p.Name)
		}
		assert.Equal(t, []string{"Boat Pose", "Mountain Pose", "Tree Pose"}, names)
	})
}
