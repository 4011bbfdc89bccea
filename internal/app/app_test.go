package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/glabrego/catfeed/internal/feed"
	"github.com/glabrego/catfeed/internal/forum"
	"github.com/glabrego/catfeed/internal/prefs"
)

type fakeClient struct {
	categories []forum.Category
	posts      map[string][]forum.Post
	err        error
}

func (f fakeClient) ListCategories(context.Context) ([]forum.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f fakeClient) GetCategoryByTitle(_ context.Context, title string) (forum.Category, error) {
	for _, c := range f.categories {
		if c.Title == title {
			return c, nil
		}
	}
	return forum.Category{}, fmt.Errorf("get category: %w", forum.ErrNotFound)
}

func (f fakeClient) GetPostCountByCategoryTitle(_ context.Context, title string) (int, error) {
	return len(f.posts[title]), nil
}

func (f fakeClient) GetPostsByCategoryTitle(_ context.Context, title string, page, size int, _ string) ([]forum.Post, error) {
	all := f.posts[title]
	start := min(page*size, len(all))
	end := min(start+size, len(all))
	return all[start:end], nil
}

func (f fakeClient) GetPostByID(_ context.Context, id int64) (forum.Post, error) {
	for _, posts := range f.posts {
		for _, p := range posts {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return forum.Post{}, fmt.Errorf("get post: %w", forum.ErrNotFound)
}

func newTestService(client ForumClient) (*Service, *prefs.Store) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := prefs.NewStore(prefs.NewMemoryBackend(), prefs.NewMemoryBackend(), logger)
	return NewService(client, store, logger), store
}

func TestService_OpenViewAndFetch(t *testing.T) {
	client := fakeClient{
		categories: []forum.Category{{ID: 1, Title: "golang", PinPost: &forum.PinRef{ID: 3}}},
		posts: map[string][]forum.Post{
			"golang": {{ID: 1, Title: "a"}, {ID: 2, Title: "b"}, {ID: 3, Title: "c"}},
		},
	}
	svc, _ := newTestService(client)

	controller, cycle, err := svc.OpenView(context.Background(), "golang")
	if err != nil {
		t.Fatalf("OpenView returned error: %v", err)
	}
	if cycle == nil || cycle.Query.CategoryTitle != "golang" {
		t.Fatalf("unexpected initial cycle: %+v", cycle)
	}

	outcome, next := controller.Complete(cycle.Run(context.Background(), svc.Fetcher()))
	if outcome != feed.OutcomePublished || next != nil {
		t.Fatalf("unexpected completion: outcome=%v next=%v", outcome, next)
	}
	m := controller.Model()
	if len(m.Items) != 3 || m.TotalCount != 3 || m.Pinned == nil || m.Pinned.ID != 3 {
		t.Fatalf("unexpected render model: %+v", m)
	}
}

func TestService_OpenViewNotFound(t *testing.T) {
	svc, _ := newTestService(fakeClient{})

	_, _, err := svc.OpenView(context.Background(), "missing")
	var notFound *feed.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestService_ListCategories(t *testing.T) {
	svc, _ := newTestService(fakeClient{categories: []forum.Category{{ID: 1, Title: "golang"}}})
	categories, err := svc.ListCategories(context.Background())
	if err != nil || len(categories) != 1 {
		t.Fatalf("unexpected categories: %+v err=%v", categories, err)
	}

	svc, _ = newTestService(fakeClient{err: errors.New("boom")})
	if _, err := svc.ListCategories(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestService_PreferencesAndReset(t *testing.T) {
	svc, store := newTestService(fakeClient{})
	store.SetInt(prefs.Durable, feed.KeyPageSize, 15)
	store.SetBool(prefs.Durable, feed.KeyCoverVisible, false)

	p := svc.Preferences()
	if p.PageSize != 15 || p.CoverVisible {
		t.Fatalf("unexpected stored preferences: %+v", p)
	}

	svc.ResetPreferences()
	if got := svc.Preferences(); got != feed.DefaultPreferences() {
		t.Fatalf("expected defaults after reset, got %+v", got)
	}
}

func TestService_WithLoggerLeavesOriginalUntouched(t *testing.T) {
	svc, _ := newTestService(fakeClient{})
	original := svc.logger

	session := slog.New(slog.NewTextHandler(io.Discard, nil)).With("session", "abc")
	scoped := svc.WithLogger(session)
	if scoped.logger != session || svc.logger != original {
		t.Fatal("expected WithLogger to return a copy with the new logger")
	}
	if scoped.store != svc.store {
		t.Fatal("expected the copy to share the preference store")
	}
}
