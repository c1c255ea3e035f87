package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/vinyasa-go"
	"github.com/benjamonnguyen/vinyasa-go/cmd/vinyasa/player"
)

func init() {
	posesCmd := &cobra.Command{
		Use:   "poses",
		Short: "Manage the pose catalog",
	}

	importCmd := &cobra.Command{
		Use:   "import [file.yaml]",
		Short: "Import poses from a YAML catalog (built-in catalog when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPosesImport,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List poses ordered by name",
		RunE:  runPosesList,
	}
	listCmd.Flags().StringP("category", "c", "", "Filter by category")

	posesCmd.AddCommand(importCmd, listCmd)
	rootCmd.AddCommand(posesCmd)
}

func runPosesImport(cmd *cobra.Command, args []string) error {
	var r io.Reader = bytes.NewReader(defaultCatalog)
	source := "built-in"
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open catalog: %w", err)
		}
		defer f.Close() //nolint
		r = f
		source = args[0]
	}

	poses, err := parseCatalog(r)
	if err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := importCatalog(cmd.Context(), a.poses, a.tx, poses)
	if err != nil {
		return fmt.Errorf("import catalog: %w", err)
	}
	log.Info("imported catalog", "source", source, "inserted", res.inserted, "updated", res.updated)
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d poses (%d new, %d updated)\n", len(poses), res.inserted, res.updated)
	return nil
}

func runPosesList(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	poses, err := a.poses.GetAllPoses(cmd.Context())
	if err != nil {
		return fmt.Errorf("list poses: %w", err)
	}

	t := newTable("Name", "Category", "Difficulty", "Duration", "Role")
	n := 0
	for _, p := range poses {
		if category != "" && string(p.Category) != category {
			continue
		}
		role := ""
		if p.Role != vinyasa.NoRole {
			role = p.Role.String()
		}
		t.Row(p.Name, string(p.Category), string(p.Difficulty), player.FormatClock(p.Duration), role)
		n++
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	fmt.Fprintln(cmd.OutOrStdout(), strconv.Itoa(n)+" poses")
	return nil
}
