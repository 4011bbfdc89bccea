package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Inspect or reset stored display preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective preferences as YAML",
	Args:  cobra.NoArgs,
	RunE:  runPrefsShow,
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget stored preferences and go back to the defaults",
	Args:  cobra.NoArgs,
	RunE:  runPrefsReset,
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsResetCmd)
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	out, err := yaml.Marshal(globalService.Preferences())
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func runPrefsReset(cmd *cobra.Command, args []string) error {
	globalService.ResetPreferences()
	fmt.Fprintln(cmd.OutOrStdout(), "Preferences reset to defaults.")
	return nil
}
