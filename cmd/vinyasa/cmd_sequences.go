package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/vinyasa-go/cmd/vinyasa/player"
)

func init() {
	sequencesCmd := &cobra.Command{
		Use:     "sequences",
		Aliases: []string{"seq"},
		Short:   "Manage saved sequences",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved sequences, newest first",
		RunE:  runSequencesList,
	}

	showCmd := &cobra.Command{
		Use:   "show <sequence>",
		Short: "Show a sequence and its poses",
		Args:  cobra.ExactArgs(1),
		RunE:  runSequencesShow,
	}

	updateCmd := &cobra.Command{
		Use:   "update <sequence>",
		Short: "Rename a sequence or change its description or target",
		Args:  cobra.ExactArgs(1),
		RunE:  runSequencesUpdate,
	}
	updateCmd.Flags().StringP("name", "n", "", "New name")
	updateCmd.Flags().String("description", "", "New description")
	updateCmd.Flags().Float64P("minutes", "m", 0, "New target duration in minutes")

	rmCmd := &cobra.Command{
		Use:   "rm <sequence>",
		Short: "Delete a sequence",
		Args:  cobra.ExactArgs(1),
		RunE:  runSequencesRm,
	}

	sequencesCmd.AddCommand(listCmd, showCmd, updateCmd, rmCmd)
	rootCmd.AddCommand(sequencesCmd)
}

func runSequencesList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sequences, err := a.sequences.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list sequences: %w", err)
	}
	if len(sequences) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no sequences yet; create one with `vinyasa compose --save --name ...`")
		return nil
	}

	t := newTable("ID", "Name", "Target", "Created")
	for _, s := range sequences {
		t.Row(string(s.ID)[:8], s.Name, player.FormatClock(s.Duration), s.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	fmt.Fprintln(cmd.OutOrStdout(), strconv.Itoa(len(sequences))+" sequences")
	return nil
}

func runSequencesShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	saved, err := resolveSequence(cmd.Context(), a.sequences, args[0])
	if err != nil {
		return fmt.Errorf("read sequence: %w", err)
	}
	printSequence(cmd.OutOrStdout(), saved.SequenceRecord, saved.ID, saved.Composed)
	return nil
}

func runSequencesUpdate(cmd *cobra.Command, args []string) error {
	name := stringFlag(cmd, "name")
	description := stringFlag(cmd, "description")

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	saved, err := resolveSequence(cmd.Context(), a.sequences, args[0])
	if err != nil {
		return fmt.Errorf("read sequence: %w", err)
	}

	spec := saved.SequenceRecord
	if !name.IsEmpty() {
		spec.Name = name.Get()
	}
	if !description.IsEmpty() {
		spec.Description = description.Get()
	}
	if cmd.Flags().Changed("minutes") {
		minutes, _ := cmd.Flags().GetFloat64("minutes")
		if spec.Duration, err = parseMinutes(minutes); err != nil {
			return fmt.Errorf("update sequence: %w", err)
		}
	}

	updated, err := a.sequences.UpdateSpec(cmd.Context(), saved.ID, spec)
	if err != nil {
		return fmt.Errorf("update sequence: %w", err)
	}
	printSequence(cmd.OutOrStdout(), updated.SequenceRecord, updated.ID, saved.Composed)
	return nil
}

func runSequencesRm(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	saved, err := resolveSequence(cmd.Context(), a.sequences, args[0])
	if err != nil {
		return fmt.Errorf("read sequence: %w", err)
	}
	deleted, err := a.sequences.Delete(cmd.Context(), saved.ID)
	if err != nil {
		return fmt.Errorf("delete sequence: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", deleted.Name)
	return nil
}
