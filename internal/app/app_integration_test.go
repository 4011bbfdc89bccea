package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glabrego/catfeed/internal/feed"
	"github.com/glabrego/catfeed/internal/forum"
	"github.com/glabrego/catfeed/internal/prefs"
	"github.com/glabrego/catfeed/internal/storage"
)

func TestIntegration_BrowseCategory(t *testing.T) {
	if os.Getenv("CATFEED_INTEGRATION") != "1" {
		t.Skip("set CATFEED_INTEGRATION=1 to run integration tests")
	}
	baseURL := os.Getenv("CATFEED_API_BASE_URL")
	if baseURL == "" {
		t.Skip("CATFEED_API_BASE_URL is required")
	}

	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "catfeed-integration.db"))
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()
	if err := repo.Init(ctx); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := prefs.NewStore(repo, prefs.NewMemoryBackend(), logger)
	svc := NewService(forum.NewClient(baseURL, os.Getenv("CATFEED_API_TOKEN"), nil), store, logger)

	categories, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if len(categories) == 0 {
		t.Skip("board has no categories")
	}

	controller, cycle, err := svc.OpenView(ctx, categories[0].Title)
	if err != nil {
		t.Fatalf("OpenView returned error: %v", err)
	}
	fetcher := svc.Fetcher()
	for cycle != nil {
		var outcome feed.Outcome
		outcome, cycle = controller.Complete(cycle.Run(ctx, fetcher))
		if outcome == feed.OutcomeFailed {
			t.Fatalf("fetch failed: %v", controller.Model().Notice)
		}
	}

	m := controller.Model()
	if len(m.Items) > m.PageSize {
		t.Fatalf("page holds %d items, more than page size %d", len(m.Items), m.PageSize)
	}

	cycle, err = controller.SetPageSize(feed.MinPageSize)
	if err != nil {
		t.Fatalf("SetPageSize returned error: %v", err)
	}
	if cycle != nil {
		controller.Complete(cycle.Run(ctx, fetcher))
	}
	if got := store.Int(prefs.Durable, feed.KeyPageSize, 0).Value; got != feed.MinPageSize {
		t.Fatalf("expected page size persisted to sqlite, got %d", got)
	}
}
