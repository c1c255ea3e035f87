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
	SelectAllSequences     = "SELECT id, name, description, duration_seconds, created_at, updated_at FROM sequences"
	SelectAllSequencePoses = "SELECT id, sequence_id, pose_id, position, custom_duration_seconds, notes, created_at, updated_at FROM sequence_poses"
	SelectJoinedEntries    = "SELECT sp.id, sp.sequence_id, sp.pose_id, sp.position, sp.custom_duration_seconds, sp.notes, sp.created_at, sp.updated_at, " +
		"p.id, p.name, p.description, p.instructions, p.benefits, p.precautions, p.duration_seconds, p.difficulty_level, p.category, p.role, p.created_at, p.updated_at " +
		"FROM sequence_poses sp JOIN poses p ON p.id = sp.pose_id"
)

type sequenceEntity struct {
	ID              string
	Name            string
	Description     string
	DurationSeconds int
	CreatedAt       int64
	UpdatedAt       int64
}

type sequencePoseEntity struct {
	ID                    string
	SequenceID            string
	PoseID                string
	Position              int
	CustomDurationSeconds sql.NullInt64
	Notes                 sql.NullString
	CreatedAt             int64
	UpdatedAt             int64
}

// sequenceRepo
type sequenceRepo struct {
	dbGetter txStdLib.DBGetter
	l        *log.Logger
}

func NewSequenceRepo(dbGetter txStdLib.DBGetter, logger *log.Logger) *sequenceRepo {
	return &sequenceRepo{
		l:        logger,
		dbGetter: dbGetter,
	}
}

func (r *sequenceRepo) InsertSequence(ctx context.Context, sequence vinyasa.SequenceRecord) (vinyasa.ExistingSequenceRecord, error) {
	if err := validateSequence(sequence); err != nil {
		return vinyasa.ExistingSequenceRecord{}, err
	}

	existingRecord := vinyasa.ExistingSequenceRecord{
		SequenceRecord: sequence,
		ExistingRecord: vinyasa.NewExistingRecord[vinyasa.SequenceID](uuid.NewString()),
	}
	e := mapToSequenceEntity(existingRecord)

	args := []any{
		e.ID,
		e.Name,
		e.Description,
		e.DurationSeconds,
		e.CreatedAt,
		e.UpdatedAt,
	}
	query := "INSERT INTO sequences (id, name, description, duration_seconds, created_at, updated_at) VALUES " + GenerateParameters(len(args))
	r.l.Debug("creating sequence", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return vinyasa.ExistingSequenceRecord{}, err
	}

	return existingRecord, nil
}

func (r *sequenceRepo) UpdateSequence(ctx context.Context, id vinyasa.SequenceID, s vinyasa.SequenceRecord) (vinyasa.ExistingSequenceRecord, error) {
	if err := validateSequence(s); err != nil {
		return vinyasa.ExistingSequenceRecord{}, err
	}

	existing, err := r.GetSequence(ctx, id)
	if err != nil {
		return existing, err
	}

	existing.SequenceRecord = s
	existing.Touch()
	e := mapToSequenceEntity(existing)

	query := "UPDATE sequences SET name = ?, description = ?, duration_seconds = ?, updated_at = ? WHERE id = ?"
	args := []any{
		e.Name,
		e.Description,
		e.DurationSeconds,
		e.UpdatedAt,
		e.ID,
	}
	r.l.Debug("updating sequence", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return vinyasa.ExistingSequenceRecord{}, err
	}

	return existing, nil
}

func (r *sequenceRepo) DeleteSequence(ctx context.Context, id vinyasa.SequenceID) (vinyasa.ExistingSequenceRecord, error) {
	existing, err := r.GetSequence(ctx, id)
	if err != nil {
		return vinyasa.ExistingSequenceRecord{}, err
	}

	query := "DELETE FROM sequences WHERE id = ?"
	r.l.Debug("deleting sequence", "query", query, "id", id)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, id); err != nil {
		return vinyasa.ExistingSequenceRecord{}, err
	}

	return existing, nil
}

func (r *sequenceRepo) GetSequence(ctx context.Context, id vinyasa.SequenceID) (vinyasa.ExistingSequenceRecord, error) {
	if id == "" {
		return vinyasa.ExistingSequenceRecord{}, fmt.Errorf("provide id")
	}

	row := r.dbGetter(ctx).QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE id=?", SelectAllSequences), id,
	)
	return extractSequence(row)
}

func (r *sequenceRepo) GetAllSequences(ctx context.Context) ([]vinyasa.ExistingSequenceRecord, error) {
	query := SelectAllSequences + " ORDER BY created_at DESC, name"
	r.l.Debug("getting all sequences", "query", query)
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	var sequences []vinyasa.ExistingSequenceRecord
	for rows.Next() {
		s, err := extractSequence(rows)
		if err != nil {
			return nil, err
		}
		sequences = append(sequences, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sequences, nil
}

func (r *sequenceRepo) InsertEntries(ctx context.Context, id vinyasa.SequenceID, entries []vinyasa.SequencePoseRecord) ([]vinyasa.ExistingSequencePoseRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("provide id")
	}
	if len(entries) == 0 {
		return nil, nil
	}

	var (
		inserted     = make([]vinyasa.ExistingSequencePoseRecord, 0, len(entries))
		placeholders = make([]string, 0, len(entries))
		args         []any
	)
	for _, entry := range entries {
		if entry.PoseID == "" {
			return nil, fmt.Errorf("provide required field 'PoseID'")
		}
		if entry.Position < 1 {
			return nil, fmt.Errorf("pose %s: position must be at least 1", entry.PoseID)
		}
		if entry.CustomDuration != nil {
			if err := validateCustomDuration(*entry.CustomDuration); err != nil {
				return nil, fmt.Errorf("pose %s: %w", entry.PoseID, err)
			}
		}
		entry.SequenceID = id
		existingRecord := vinyasa.ExistingSequencePoseRecord{
			SequencePoseRecord: entry,
			ExistingRecord:     vinyasa.NewExistingRecord[vinyasa.SequencePoseID](uuid.NewString()),
		}
		e := mapToSequencePoseEntity(existingRecord)
		row := []any{
			e.ID,
			e.SequenceID,
			e.PoseID,
			e.Position,
			e.CustomDurationSeconds,
			e.Notes,
			e.CreatedAt,
			e.UpdatedAt,
		}
		placeholders = append(placeholders, GenerateParameters(len(row)))
		args = append(args, row...)
		inserted = append(inserted, existingRecord)
	}

	query := "INSERT INTO sequence_poses (id, sequence_id, pose_id, position, custom_duration_seconds, notes, created_at, updated_at) VALUES " + strings.Join(placeholders, ", ")
	r.l.Debug("attaching sequence poses", "query", query, "sequenceID", id, "count", len(entries))
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}

	return inserted, nil
}

func (r *sequenceRepo) GetEntries(ctx context.Context, id vinyasa.SequenceID) ([]vinyasa.Entry, error) {
	if id == "" {
		return nil, fmt.Errorf("provide id")
	}

	query := SelectJoinedEntries + " WHERE sp.sequence_id = ? ORDER BY sp.position"
	r.l.Debug("getting sequence entries", "query", query, "sequenceID", id)
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	var entries []vinyasa.Entry
	for rows.Next() {
		var (
			sp sequencePoseEntity
			p  poseEntity
		)
		if err := rows.Scan(
			&sp.ID, &sp.SequenceID, &sp.PoseID, &sp.Position, &sp.CustomDurationSeconds, &sp.Notes, &sp.CreatedAt, &sp.UpdatedAt,
			&p.ID, &p.Name, &p.Description, &p.Instructions, &p.Benefits, &p.Precautions, &p.DurationSeconds, &p.DifficultyLevel, &p.Category, &p.Role, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		record := mapToExistingSequencePoseRecord(sp)
		entries = append(entries, vinyasa.Entry{
			ID:             record.ID,
			Pose:           mapToExistingPoseRecord(p),
			Position:       record.Position,
			CustomDuration: record.CustomDuration,
			Notes:          record.Notes,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *sequenceRepo) GetEntry(ctx context.Context, id vinyasa.SequencePoseID) (vinyasa.ExistingSequencePoseRecord, error) {
	if id == "" {
		return vinyasa.ExistingSequencePoseRecord{}, fmt.Errorf("provide id")
	}

	row := r.dbGetter(ctx).QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE id=?", SelectAllSequencePoses), id,
	)
	return extractSequencePose(row)
}

func (r *sequenceRepo) UpdateEntry(ctx context.Context, id vinyasa.SequencePoseID, u vinyasa.EntryUpdate) (vinyasa.ExistingSequencePoseRecord, error) {
	if u.CustomDuration != nil {
		if err := validateCustomDuration(*u.CustomDuration); err != nil {
			return vinyasa.ExistingSequencePoseRecord{}, err
		}
	}

	existing, err := r.GetEntry(ctx, id)
	if err != nil {
		return existing, err
	}

	switch {
	case u.ClearCustomDuration:
		existing.CustomDuration = nil
	case u.CustomDuration != nil:
		d := *u.CustomDuration
		existing.CustomDuration = &d
	}
	if u.Notes != nil {
		existing.Notes = *u.Notes
	}
	existing.Touch()
	e := mapToSequencePoseEntity(existing)

	query := "UPDATE sequence_poses SET custom_duration_seconds = ?, notes = ?, updated_at = ? WHERE id = ?"
	args := []any{
		e.CustomDurationSeconds,
		e.Notes,
		e.UpdatedAt,
		e.ID,
	}
	r.l.Debug("updating sequence pose", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return vinyasa.ExistingSequencePoseRecord{}, err
	}

	return existing, nil
}

func (r *sequenceRepo) ReorderEntries(ctx context.Context, id vinyasa.SequenceID, ids []vinyasa.SequencePoseID) error {
	current, err := r.entryIDs(ctx, id)
	if err != nil {
		return err
	}
	if len(ids) != len(current) {
		return fmt.Errorf("reorder sequence %s: got %d entries, sequence has %d", id, len(ids), len(current))
	}
	seen := make(map[vinyasa.SequencePoseID]bool, len(ids))
	for _, entryID := range ids {
		if !current[entryID] {
			return fmt.Errorf("reorder sequence %s: entry %s does not belong to sequence", id, entryID)
		}
		if seen[entryID] {
			return fmt.Errorf("reorder sequence %s: entry %s listed twice", id, entryID)
		}
		seen[entryID] = true
	}

	now := time.Now().Unix()
	query := "UPDATE sequence_poses SET position = ?, updated_at = ? WHERE id = ?"
	db := r.dbGetter(ctx)
	for i, entryID := range ids {
		r.l.Debug("repositioning sequence pose", "query", query, "id", entryID, "position", i+1)
		if _, err := db.ExecContext(ctx, query, i+1, now, entryID); err != nil {
			return err
		}
	}
	return nil
}

func (r *sequenceRepo) DeleteEntry(ctx context.Context, id vinyasa.SequencePoseID) (vinyasa.ExistingSequencePoseRecord, error) {
	existing, err := r.GetEntry(ctx, id)
	if err != nil {
		return vinyasa.ExistingSequencePoseRecord{}, err
	}

	query := "DELETE FROM sequence_poses WHERE id = ?"
	r.l.Debug("deleting sequence pose", "query", query, "id", id)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, id); err != nil {
		return vinyasa.ExistingSequencePoseRecord{}, err
	}

	return existing, nil
}

func (r *sequenceRepo) DeleteEntries(ctx context.Context, id vinyasa.SequenceID) (int, error) {
	if id == "" {
		return 0, fmt.Errorf("provide id")
	}

	query := "DELETE FROM sequence_poses WHERE sequence_id = ?"
	r.l.Debug("deleting sequence poses", "query", query, "sequenceID", id)
	res, err := r.dbGetter(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *sequenceRepo) entryIDs(ctx context.Context, id vinyasa.SequenceID) (map[vinyasa.SequencePoseID]bool, error) {
	if id == "" {
		return nil, fmt.Errorf("provide id")
	}

	rows, err := r.dbGetter(ctx).QueryContext(ctx, "SELECT id FROM sequence_poses WHERE sequence_id = ?", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	ids := make(map[vinyasa.SequencePoseID]bool)
	for rows.Next() {
		var entryID string
		if err := rows.Scan(&entryID); err != nil {
			return nil, err
		}
		ids[vinyasa.SequencePoseID(entryID)] = true
	}
	return ids, rows.Err()
}

func validateSequence(s vinyasa.SequenceRecord) error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("provide required field 'Name'")
	}
	if s.Duration < time.Second {
		return fmt.Errorf("sequence %q: duration must be at least 1s", s.Name)
	}
	return nil
}

// validateCustomDuration rejects overrides the store cannot keep exactly.
func validateCustomDuration(d time.Duration) error {
	if d < time.Second {
		return fmt.Errorf("custom duration must be at least 1s")
	}
	if d%time.Second != 0 {
		return fmt.Errorf("custom duration %s is not a whole number of seconds", d)
	}
	return nil
}

func extractSequence(s Scannable) (vinyasa.ExistingSequenceRecord, error) {
	var e sequenceEntity
	if err := s.Scan(&e.ID, &e.Name, &e.Description, &e.DurationSeconds, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vinyasa.ExistingSequenceRecord{}, ErrNotFound
		}
		return vinyasa.ExistingSequenceRecord{}, err
	}

	return mapToExistingSequenceRecord(e), nil
}

func extractSequencePose(s Scannable) (vinyasa.ExistingSequencePoseRecord, error) {
	var e sequencePoseEntity
	if err := s.Scan(&e.ID, &e.SequenceID, &e.PoseID, &e.Position, &e.CustomDurationSeconds, &e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vinyasa.ExistingSequencePoseRecord{}, ErrNotFound
		}
		return vinyasa.ExistingSequencePoseRecord{}, err
	}

	return mapToExistingSequencePoseRecord(e), nil
}

func mapToSequenceEntity(s vinyasa.ExistingSequenceRecord) sequenceEntity {
	return sequenceEntity{
		ID:              string(s.ID),
		Name:            strings.TrimSpace(s.Name),
		Description:     strings.TrimSpace(s.Description),
		DurationSeconds: int(s.Duration.Seconds()),
		CreatedAt:       s.CreatedAt.Unix(),
		UpdatedAt:       s.UpdatedAt.Unix(),
	}
}

func mapToSequencePoseEntity(sp vinyasa.ExistingSequencePoseRecord) sequencePoseEntity {
	e := sequencePoseEntity{
		ID:         string(sp.ID),
		SequenceID: string(sp.SequenceID),
		PoseID:     string(sp.PoseID),
		Position:   sp.Position,
		CreatedAt:  sp.CreatedAt.Unix(),
		UpdatedAt:  sp.UpdatedAt.Unix(),
	}
	if sp.CustomDuration != nil {
		e.CustomDurationSeconds = sql.NullInt64{Int64: int64(sp.CustomDuration.Seconds()), Valid: true}
	}
	if sp.Notes != "" {
		e.Notes = sql.NullString{String: sp.Notes, Valid: true}
	}
	return e
}

func mapToExistingSequenceRecord(e sequenceEntity) vinyasa.ExistingSequenceRecord {
	return vinyasa.ExistingSequenceRecord{
		ExistingRecord: vinyasa.ExistingRecord[vinyasa.SequenceID]{
			ID:        vinyasa.SequenceID(e.ID),
			CreatedAt: time.Unix(e.CreatedAt, 0),
			UpdatedAt: time.Unix(e.UpdatedAt, 0),
		},
		SequenceRecord: vinyasa.SequenceRecord{
			Name:        e.Name,
			Description: e.Description,
			Duration:    time.Duration(e.DurationSeconds) * time.Second,
		},
	}
}

func mapToExistingSequencePoseRecord(e sequencePoseEntity) vinyasa.ExistingSequencePoseRecord {
	record := vinyasa.ExistingSequencePoseRecord{
		ExistingRecord: vinyasa.ExistingRecord[vinyasa.SequencePoseID]{
			ID:        vinyasa.SequencePoseID(e.ID),
			CreatedAt: time.Unix(e.CreatedAt, 0),
			UpdatedAt: time.Unix(e.UpdatedAt, 0),
		},
		SequencePoseRecord: vinyasa.SequencePoseRecord{
			SequenceID: vinyasa.SequenceID(e.SequenceID),
			PoseID:     vinyasa.PoseID(e.PoseID),
			Position:   e.Position,
			Notes:      e.Notes.String,
		},
	}
	if e.CustomDurationSeconds.Valid {
		d := time.Duration(e.CustomDurationSeconds.Int64) * time.Second
		record.CustomDuration = &d
	}
	return record
}
