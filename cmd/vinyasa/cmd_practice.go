package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/benjamonnguyen/vinyasa-go"
	"github.com/benjamonnguyen/vinyasa-go/cmd/vinyasa/player"
	"github.com/benjamonnguyen/vinyasa-go/playback"
)

func init() {
	cmd := &cobra.Command{
		Use:   "practice [sequence]",
		Short: "Practice a saved sequence, or a freshly composed one with --minutes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPractice,
	}
	cmd.Flags().Float64P("minutes", "m", 0, "Compose and practice a sequence of this many minutes")

	rootCmd.AddCommand(cmd)
}

func runPractice(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if len(args) == 0 && !cmd.Flags().Changed("minutes") {
		return fmt.Errorf("pass a sequence id or --minutes")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var (
		title    string
		composed vinyasa.ComposedSequence
	)
	if len(args) == 1 {
		saved, err := resolveSequence(ctx, a.sequences, args[0])
		if err != nil {
			return fmt.Errorf("read sequence: %w", err)
		}
		title, composed = saved.Name, saved.Composed
	} else {
		minutes, _ := cmd.Flags().GetFloat64("minutes")
		target, err := parseMinutes(minutes)
		if err != nil {
			return fmt.Errorf("practice: %w", err)
		}
		catalog, err := a.poses.GetAllPoses(ctx)
		if err != nil {
			return fmt.Errorf("fetch poses: %w", err)
		}
		title, composed = fmt.Sprintf("%g minute practice", minutes), a.composer.Compose(catalog, target)
	}

	// the alt screen owns the terminal; keep controller logs out of it unless debugging
	logger := log.New(io.Discard)
	if a.cfg.LogLevel == log.DebugLevel {
		logger = log.Default()
	}

	// p is assigned before the controller can emit: nothing fires until a key is pressed.
	var p *tea.Program
	ctl, err := playback.NewController(composed,
		playback.WithScheduler(playback.NewTickerScheduler(ctx)),
		playback.WithLogger(logger),
		playback.OnChange(func(playback.State) {
			go p.Send(player.StateChangedMsg{})
		}),
		playback.OnComplete(func() {
			go p.Send(player.CompletedMsg{})
		}),
	)
	if err != nil {
		return fmt.Errorf("practice: %w", err)
	}
	defer ctl.Close()

	p = tea.NewProgram(player.New(title, ctl), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("practice: %w", err)
	}
	return nil
}
