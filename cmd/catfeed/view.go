package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/glabrego/catfeed/internal/feed"
	"github.com/glabrego/catfeed/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view <category>",
	Short: "Browse the posts of a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	title := args[0]
	log := globalLogger.With("session", uuid.NewString())
	svc := globalService.WithLogger(log)

	ctx, cancel := context.WithTimeout(cmd.Context(), globalConfig.HTTPTimeout)
	defer cancel()
	controller, cycle, err := svc.OpenView(ctx, title)
	var notFound *feed.NotFoundError
	if errors.As(err, &notFound) {
		return fmt.Errorf("category %q does not exist, run `catfeed categories` to list them", title)
	}
	if err != nil {
		return fmt.Errorf("cannot open category: %w", err)
	}

	model := tui.NewModel(controller, svc.Fetcher(), cycle, tui.Options{
		SiteURL: globalConfig.SiteURL,
		Logger:  log,
	})
	log.Info("view started", "category", title)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
