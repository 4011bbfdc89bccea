package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/catfeed/internal/feed"
)

const fetchTimeout = 12 * time.Second

type FetchDoneMsg struct {
	Completion feed.Completion
	Duration   time.Duration
}

type OpenURLSuccessMsg struct {
	Status string
	PostID int64
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

// FetchCmd runs one fetch cycle off the update loop. A nil cycle means the
// controller had nothing to fetch.
func FetchCmd(fetcher feed.PageFetcher, cycle *feed.Cycle) tea.Cmd {
	if cycle == nil {
		return nil
	}
	c := *cycle
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		start := time.Now()

		done := c.Run(ctx, fetcher)
		return FetchDoneMsg{Completion: done, Duration: time.Since(start)}
	}
}

func OpenURLCmd(postID int64, url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened post in browser", PostID: postID, Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, URL copied to clipboard", PostID: postID}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}
