package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/benjamonnguyen/vinyasa-go"
	"github.com/benjamonnguyen/vinyasa-go/cmd/vinyasa/player"
	"github.com/benjamonnguyen/vinyasa-go/sqlite"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(player.ColorCyan).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(player.ColorDimGray)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func printSequence(w io.Writer, spec vinyasa.SequenceRecord, id vinyasa.SequenceID, composed vinyasa.ComposedSequence) {
	title := spec.Name
	if id != "" {
		title = fmt.Sprintf("%s (%s)", spec.Name, id)
	}
	fmt.Fprintln(w, player.TitleStyle.Render(title))
	if spec.Description != "" {
		fmt.Fprintln(w, spec.Description)
	}

	t := newTable("#", "Pose", "Category", "Difficulty", "Duration", "Notes")
	for _, e := range composed.Entries {
		duration := player.FormatClock(e.EffectiveDuration())
		if e.CustomDuration != nil {
			duration += "*"
		}
		t.Row(
			strconv.Itoa(e.Position),
			e.Pose.Name,
			string(e.Pose.Category),
			string(e.Pose.Difficulty),
			duration,
			e.Notes,
		)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d poses, %s of %s target\n", len(composed.Entries), player.FormatClock(composed.TotalDuration()), player.FormatClock(spec.Duration))
}

func parseMinutes(minutes float64) (time.Duration, error) {
	if minutes <= 0 {
		return 0, fmt.Errorf("--minutes must be positive")
	}
	d := time.Duration(minutes * float64(time.Minute)).Round(time.Second)
	if d < time.Second {
		return 0, fmt.Errorf("--minutes must be at least one second")
	}
	return d, nil
}

// resolveSequence accepts a full id or a unique id prefix.
func resolveSequence(ctx context.Context, m SequenceManager, arg string) (SavedSequence, error) {
	saved, err := m.Read(ctx, vinyasa.SequenceID(arg))
	if !errors.Is(err, sqlite.ErrNotFound) {
		return saved, err
	}

	all, err := m.List(ctx)
	if err != nil {
		return SavedSequence{}, err
	}
	var match vinyasa.SequenceID
	for _, s := range all {
		if strings.HasPrefix(string(s.ID), arg) {
			if match != "" {
				return SavedSequence{}, fmt.Errorf("sequence id %q is ambiguous", arg)
			}
			match = s.ID
		}
	}
	if match == "" {
		return SavedSequence{}, fmt.Errorf("sequence %q: %w", arg, sqlite.ErrNotFound)
	}
	return m.Read(ctx, match)
}

// resolveEntry accepts a 1-based position or an entry id.
func resolveEntry(saved SavedSequence, arg string) (vinyasa.Entry, error) {
	if pos, err := strconv.Atoi(arg); err == nil {
		for _, e := range saved.Composed.Entries {
			if e.Position == pos {
				return e, nil
			}
		}
		return vinyasa.Entry{}, fmt.Errorf("no pose at position %d", pos)
	}
	for _, e := range saved.Composed.Entries {
		if string(e.ID) == arg {
			return e, nil
		}
	}
	return vinyasa.Entry{}, fmt.Errorf("entry %q: %w", arg, sqlite.ErrNotFound)
}

// resolvePose accepts a pose id or a case-insensitive name.
func resolvePose(ctx context.Context, repo vinyasa.PoseRepo, arg string) (vinyasa.ExistingPoseRecord, error) {
	pose, err := repo.GetPose(ctx, vinyasa.PoseID(arg))
	if errors.Is(err, sqlite.ErrNotFound) {
		return repo.GetPoseByName(ctx, arg)
	}
	return pose, err
}
