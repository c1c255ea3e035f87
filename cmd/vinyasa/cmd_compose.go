package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/vinyasa-go"
	"github.com/benjamonnguyen/vinyasa-go/composer"
)

func init() {
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a sequence that fits a target duration",
		RunE:  runCompose,
	}

	cmd.Flags().Float64P("minutes", "m", 30, "Target duration in minutes")
	cmd.Flags().StringP("name", "n", "", "Sequence name (required with --save)")
	cmd.Flags().String("description", "", "Sequence description")
	cmd.Flags().Bool("save", false, "Save the composed sequence")
	cmd.Flags().Uint64("seed", 0, "Seed the random picker for a reproducible result")

	rootCmd.AddCommand(cmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	minutes, _ := cmd.Flags().GetFloat64("minutes")
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	save, _ := cmd.Flags().GetBool("save")

	target, err := parseMinutes(minutes)
	if err != nil {
		return fmt.Errorf("compose: %w", err)
	}
	if save && strings.TrimSpace(name) == "" {
		return fmt.Errorf("--name is required with --save")
	}
	if name == "" {
		name = fmt.Sprintf("%g minute practice", minutes)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	strategy := a.composer
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		strategy, err = composer.ByName(a.cfg.Composer, composer.SeededPicker(seed))
		if err != nil {
			return fmt.Errorf("compose: %w", err)
		}
	}

	catalog, err := a.poses.GetAllPoses(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch poses: %w", err)
	}
	composed := strategy.Compose(catalog, target)
	spec := vinyasa.SequenceRecord{
		Name:        name,
		Description: description,
		Duration:    target,
	}

	if !save {
		if composed.IsEmpty() {
			fmt.Fprintln(cmd.OutOrStdout(), "no poses fit; import a catalog with `vinyasa poses import` or raise --minutes")
			return nil
		}
		printSequence(cmd.OutOrStdout(), spec, "", composed)
		return nil
	}

	saved, err := a.sequences.Save(cmd.Context(), spec, composed)
	if err != nil {
		return fmt.Errorf("save sequence: %w", err)
	}
	printSequence(cmd.OutOrStdout(), saved.SequenceRecord, saved.ID, saved.Composed)
	return nil
}
