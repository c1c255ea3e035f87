package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/benjamonnguyen/vinyasa-go"
)

const (
	SelectAllPoses = "SELECT id, name, description, instructions, benefits, precautions, duration_seconds, difficulty_level, category, role, created_at, updated_at FROM poses"
)

type poseEntity struct {
	ID              string
	Name            string
	Description     string
	Instructions    string
	Benefits        string
	Precautions     string
	DurationSeconds int
	DifficultyLevel string
	Category        string
	Role            uint8
	CreatedAt       int64
	UpdatedAt       int64
}

type poseRepo struct {
	dbGetter txStdLib.DBGetter
	l        *log.Logger
}

func NewPoseRepo(dbGetter txStdLib.DBGetter, logger *log.Logger) *poseRepo {
	return &poseRepo{
		dbGetter: dbGetter,
		l:        logger,
	}
}

func (r *poseRepo) InsertPose(ctx context.Context, pose vinyasa.PoseRecord) (vinyasa.ExistingPoseRecord, error) {
	if err := validatePose(pose); err != nil {
		return vinyasa.ExistingPoseRecord{}, err
	}

	existingRecord := vinyasa.ExistingPoseRecord{
		PoseRecord:     pose,
		ExistingRecord: vinyasa.NewExistingRecord[vinyasa.PoseID](uuid.NewString()),
	}
	e := mapToPoseEntity(existingRecord)

	args := []any{
		e.ID,
		e.Name,
		e.Description,
		e.Instructions,
		e.Benefits,
		e.Precautions,
		e.DurationSeconds,
		e.DifficultyLevel,
		e.Category,
		e.Role,
		e.CreatedAt,
		e.UpdatedAt,
	}
	query := "INSERT INTO poses (id, name, description, instructions, benefits, precautions, duration_seconds, difficulty_level, category, role, created_at, updated_at) VALUES " + GenerateParameters(len(args))
	r.l.Debug("creating pose", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return vinyasa.ExistingPoseRecord{}, err
	}

	return existingRecord, nil
}

func (r *poseRepo) UpdatePose(ctx context.Context, id vinyasa.PoseID, p vinyasa.PoseRecord) (vinyasa.ExistingPoseRecord, error) {
	if err := validatePose(p); err != nil {
		return vinyasa.ExistingPoseRecord{}, err
	}

	existing, err := r.GetPose(ctx, id)
	if err != nil {
		return existing, err
	}

	existing.PoseRecord = p
	existing.Touch()
	e := mapToPoseEntity(existing)

	query := "UPDATE poses SET name = ?, description = ?, instructions = ?, benefits = ?, precautions = ?, duration_seconds = ?, difficulty_level = ?, category = ?, role = ?, updated_at = ? WHERE id = ?"
	args := []any{
		e.Name,
		e.Description,
		e.Instructions,
		e.Benefits,
		e.Precautions,
		e.DurationSeconds,
		e.DifficultyLevel,
		e.Category,
		e.Role,
		e.UpdatedAt,
		e.ID,
	}
	r.l.Debug("updating pose", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return vinyasa.ExistingPoseRecord{}, err
	}

	return existing, nil
}

func (r *poseRepo) GetPose(ctx context.Context, id vinyasa.PoseID) (vinyasa.ExistingPoseRecord, error) {
	if id == "" {
		return vinyasa.ExistingPoseRecord{}, fmt.Errorf("provide id")
	}

	row := r.dbGetter(ctx).QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE id=?", SelectAllPoses), id,
	)
	return extractPose(row)
}

func (r *poseRepo) GetPoseByName(ctx context.Context, name string) (vinyasa.ExistingPoseRecord, error) {
	if strings.TrimSpace(name) == "" {
		return vinyasa.ExistingPoseRecord{}, fmt.Errorf("provide name")
	}

	row := r.dbGetter(ctx).QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE name=? COLLATE NOCASE", SelectAllPoses), strings.TrimSpace(name),
	)
	return extractPose(row)
}

func (r *poseRepo) GetAllPoses(ctx context.Context) ([]vinyasa.ExistingPoseRecord, error) {
	query := SelectAllPoses + " ORDER BY name"
	r.l.Debug("getting all poses", "query", query)
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	var poses []vinyasa.ExistingPoseRecord
	for rows.Next() {
		pose, err := extractPose(rows)
		if err != nil {
			return nil, err
		}
		poses = append(poses, pose)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return poses, nil
}

func validatePose(p vinyasa.PoseRecord) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("provide required field 'Name'")
	}
	if p.Duration < time.Second {
		return fmt.Errorf("pose %q: duration must be at least 1s", p.Name)
	}
	if p.Duration%time.Second != 0 {
		return fmt.Errorf("pose %q: duration %s is not a whole number of seconds", p.Name, p.Duration)
	}
	if p.Category == "" || p.Difficulty == "" {
		return fmt.Errorf("pose %q: provide required fields 'Category' and 'Difficulty'", p.Name)
	}
	return nil
}

func extractPose(s Scannable) (vinyasa.ExistingPoseRecord, error) {
	var e poseEntity
	if err := s.Scan(&e.ID, &e.Name, &e.Description, &e.Instructions, &e.Benefits, &e.Precautions, &e.DurationSeconds, &e.DifficultyLevel, &e.Category, &e.Role, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vinyasa.ExistingPoseRecord{}, ErrNotFound
		}
		return vinyasa.ExistingPoseRecord{}, err
	}

	return mapToExistingPoseRecord(e), nil
}

func mapToPoseEntity(pose vinyasa.ExistingPoseRecord) poseEntity {
	return poseEntity{
		ID:              string(pose.ID),
		Name:            strings.TrimSpace(pose.Name),
		Description:     pose.Description,
		Instructions:    pose.Instructions,
		Benefits:        pose.Benefits,
		Precautions:     pose.Precautions,
		DurationSeconds: int(pose.Duration.Seconds()),
		DifficultyLevel: string(pose.Difficulty),
		Category:        string(pose.Category),
		Role:            uint8(pose.Role),
		CreatedAt:       pose.CreatedAt.Unix(),
		UpdatedAt:       pose.UpdatedAt.Unix(),
	}
}

func mapToExistingPoseRecord(e poseEntity) vinyasa.ExistingPoseRecord {
	return vinyasa.ExistingPoseRecord{
		ExistingRecord: vinyasa.ExistingRecord[vinyasa.PoseID]{
			ID:        vinyasa.PoseID(e.ID),
			CreatedAt: time.Unix(e.CreatedAt, 0),
			UpdatedAt: time.Unix(e.UpdatedAt, 0),
		},
		PoseRecord: vinyasa.PoseRecord{
			Name:         e.Name,
			Description:  e.Description,
			Instructions: e.Instructions,
			Benefits:     e.Benefits,
			Precautions:  e.Precautions,
			Duration:     time.Duration(e.DurationSeconds) * time.Second,
			Difficulty:   vinyasa.Difficulty(e.DifficultyLevel),
			Category:     vinyasa.Category(e.Category),
			Role:         vinyasa.PoseRole(e.Role),
		},
	}
}
