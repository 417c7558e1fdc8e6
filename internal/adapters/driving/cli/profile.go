package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/colfilter/internal/core/domain"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage projection profiles",
	Long: `View and override the columns and layout used by filter and extract.

Overrides are stored in the configuration file under [profiles.<name>].`,
	RunE: runProfileList,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	Args:  cobra.NoArgs,
	RunE:  runProfileList,
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a profile with overrides applied",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

var profileSetColumnsCmd = &cobra.Command{
	Use:   "set-columns <name> <column>...",
	Short: "Override the columns a profile keeps",
	Long: `Store the column list for a profile. Columns are written in the order
given. Comma-separated values are split.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runProfileSetColumns,
}

var profileResetCmd = &cobra.Command{
	Use:   "reset <name>",
	Short: "Remove all overrides for a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileReset,
}

func init() {
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetColumnsCmd)
	profileCmd.AddCommand(profileResetCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileList(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	profiles, err := profileService.List()
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "COLUMNS", "OUTPUT")
	for _, p := range profiles {
		t.Row(p.Name, p.Selection.String(), describeLayout(p.Layout))
	}
	cmd.Println(t.Render())
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	p, err := profileService.Get(args[0])
	if err != nil {
		return err
	}
	printProfile(cmd.OutOrStdout(), p)
	if path := profileService.ConfigPath(); path != "" {
		cmd.Printf("\nConfig: %s\n", path)
	}
	return nil
}

func runProfileSetColumns(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	name := args[0]
	var columns []string
	for _, arg := range args[1:] {
		for _, c := range strings.Split(arg, ",") {
			columns = append(columns, strings.TrimSpace(c))
		}
	}

	if err := profileService.SetColumns(name, columns); err != nil {
		return fmt.Errorf("failed to set columns: %w", err)
	}
	cmd.Printf("Profile %s now keeps: %s\n", name, strings.Join(columns, ","))
	return nil
}

func runProfileReset(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	if err := profileService.Reset(args[0]); err != nil {
		return fmt.Errorf("failed to reset profile: %w", err)
	}
	cmd.Printf("Profile %s reset to defaults\n", args[0])
	return nil
}

func printProfile(w io.Writer, p domain.Profile) {
	traversal := "flat"
	if p.Recursive {
		traversal = "recursive"
	}
	fmt.Fprintf(w, "Profile: %s\n", p.Name)
	fmt.Fprintf(w, "  Columns:   %s\n", p.Selection)
	fmt.Fprintf(w, "  Order:     %s\n", p.Options.Order)
	fmt.Fprintf(w, "  Index:     %t\n", p.Options.IncludeIndex)
	fmt.Fprintf(w, "  Pattern:   %s\n", p.Pattern)
	fmt.Fprintf(w, "  Traversal: %s\n", traversal)
	fmt.Fprintf(w, "  Output:    %s\n", describeLayout(p.Layout))
}

func describeLayout(l domain.Layout) string {
	if l.Kind == domain.LayoutFiltered {
		return l.Root + "/<dir>/fil-<name>"
	}
	if l.Root == "." {
		return "extracted-<name>.csv"
	}
	return l.Root + "/extracted-<name>.csv"
}
