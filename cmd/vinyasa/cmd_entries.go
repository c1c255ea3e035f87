package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/vinyasa-go"
)

func init() {
	entriesCmd := &cobra.Command{
		Use:   "entries",
		Short: "Edit the poses of a saved sequence",
		Long:  "Entries are addressed by their position in the sequence (1, 2, ...) or by entry id.",
	}

	addCmd := &cobra.Command{
		Use:   "add <sequence> <pose>",
		Short: "Append a pose (by name or id) to the end of a sequence",
		Args:  cobra.ExactArgs(2),
		RunE:  runEntriesAdd,
	}

	updateCmd := &cobra.Command{
		Use:   "update <sequence> <entry>",
		Short: "Override an entry's duration or set its notes",
		Args:  cobra.ExactArgs(2),
		RunE:  runEntriesUpdate,
	}
	updateCmd.Flags().Duration("duration", 0, "Custom duration, e.g. 90s or 2m")
	updateCmd.Flags().Bool("default-duration", false, "Drop the custom duration and use the pose's default")
	updateCmd.Flags().String("notes", "", "Notes shown during practice (empty string clears)")

	rmCmd := &cobra.Command{
		Use:   "rm <sequence> <entry>",
		Short: "Remove an entry; later entries move up",
		Args:  cobra.ExactArgs(2),
		RunE:  runEntriesRm,
	}

	reorderCmd := &cobra.Command{
		Use:   "reorder <sequence> <entry>...",
		Short: "Reorder entries; list every entry in its new order",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runEntriesReorder,
	}

	entriesCmd.AddCommand(addCmd, updateCmd, rmCmd, reorderCmd)
	rootCmd.AddCommand(entriesCmd)
}

func runEntriesAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	saved, err := resolveSequence(cmd.Context(), a.sequences, args[0])
	if err != nil {
		return fmt.Errorf("read sequence: %w", err)
	}
	pose, err := resolvePose(cmd.Context(), a.poses, args[1])
	if err != nil {
		return fmt.Errorf("find pose: %w", err)
	}

	added, err := a.sequences.AddPose(cmd.Context(), saved.ID, pose.ID)
	if err != nil {
		return fmt.Errorf("add pose: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added %q at position %d\n", pose.Name, added.Position)
	return nil
}

func runEntriesUpdate(cmd *cobra.Command, args []string) error {
	duration := durationFlag(cmd, "duration")
	notes := stringFlag(cmd, "notes")
	useDefault, _ := cmd.Flags().GetBool("default-duration")
	if duration.IsEmpty() && notes.IsEmpty() && !useDefault {
		return fmt.Errorf("nothing to update; pass --duration, --default-duration or --notes")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	saved, err := resolveSequence(cmd.Context(), a.sequences, args[0])
	if err != nil {
		return fmt.Errorf("read sequence: %w", err)
	}
	entry, err := resolveEntry(saved, args[1])
	if err != nil {
		return fmt.Errorf("find entry: %w", err)
	}

	_, err = a.sequences.UpdateEntry(cmd.Context(), saved.ID, entry.ID, vinyasa.EntryUpdate{
		CustomDuration:      duration.Ptr(),
		ClearCustomDuration: useDefault,
		Notes:               notes.Ptr(),
	})
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "updated %q at position %d\n", entry.Pose.Name, entry.Position)
	return nil
}

func runEntriesRm(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	saved, err := resolveSequence(cmd.Context(), a.sequences, args[0])
	if err != nil {
		return fmt.Errorf("read sequence: %w", err)
	}
	entry, err := resolveEntry(saved, args[1])
	if err != nil {
		return fmt.Errorf("find entry: %w", err)
	}

	if err := a.sequences.RemoveEntry(cmd.Context(), saved.ID, entry.ID); err != nil {
		return fmt.Errorf("remove entry: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %q\n", entry.Pose.Name)
	return nil
}

func runEntriesReorder(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	saved, err := resolveSequence(cmd.Context(), a.sequences, args[0])
	if err != nil {
		return fmt.Errorf("read sequence: %w", err)
	}

	ids := make([]vinyasa.SequencePoseID, 0, len(args)-1)
	for _, arg := range args[1:] {
		entry, err := resolveEntry(saved, arg)
		if err != nil {
			return fmt.Errorf("find entry: %w", err)
		}
		ids = append(ids, entry.ID)
	}

	if err := a.sequences.Reorder(cmd.Context(), saved.ID, ids); err != nil {
		return fmt.Errorf("reorder entries: %w", err)
	}
	reordered, err := a.sequences.Read(cmd.Context(), saved.ID)
	if err != nil {
		return fmt.Errorf("read sequence: %w", err)
	}
	printSequence(cmd.OutOrStdout(), reordered.SequenceRecord, reordered.ID, reordered.Composed)
	return nil
}
