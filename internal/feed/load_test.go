package feed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/glabrego/catfeed/internal/forum"
)

type fakeCategorySource struct {
	category    forum.Category
	categoryErr error
	count       int
	pinned      forum.Post
	pinnedErr   error

	countCalls  int
	pinnedCalls int
}

func (f *fakeCategorySource) GetCategoryByTitle(context.Context, string) (forum.Category, error) {
	if f.categoryErr != nil {
		return forum.Category{}, f.categoryErr
	}
	return f.category, nil
}

func (f *fakeCategorySource) GetPostCountByCategoryTitle(context.Context, string) (int, error) {
	f.countCalls++
	return f.count, nil
}

func (f *fakeCategorySource) GetPostByID(context.Context, int64) (forum.Post, error) {
	f.pinnedCalls++
	if f.pinnedErr != nil {
		return forum.Post{}, f.pinnedErr
	}
	return f.pinned, nil
}

func TestLoad_NotFoundPerformsNoFurtherCalls(t *testing.T) {
	src := &fakeCategorySource{categoryErr: fmt.Errorf("get category: %w", forum.ErrNotFound)}

	_, err := Load(context.Background(), src, "cobol")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Title != "cobol" {
		t.Fatalf("unexpected title: %q", notFound.Title)
	}
	if src.countCalls != 0 || src.pinnedCalls != 0 {
		t.Fatalf("expected no further calls, got count=%d pinned=%d", src.countCalls, src.pinnedCalls)
	}
}

func TestLoad_ResolvesPinnedPost(t *testing.T) {
	src := &fakeCategorySource{
		category: forum.Category{ID: 1, Title: "golang", PinPost: &forum.PinRef{ID: 9}},
		count:    21,
		pinned:   forum.Post{ID: 9, Title: "Rules"},
	}

	seed, err := Load(context.Background(), src, "golang")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if seed.InitialTotalCount != 21 {
		t.Fatalf("unexpected count: %d", seed.InitialTotalCount)
	}
	if seed.Pinned == nil || seed.Pinned.Title != "Rules" {
		t.Fatalf("expected pinned post, got %+v", seed.Pinned)
	}
}

func TestLoad_WithoutPinnedPost(t *testing.T) {
	src := &fakeCategorySource{category: forum.Category{ID: 1, Title: "golang"}, count: 3}

	seed, err := Load(context.Background(), src, "golang")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if seed.Pinned != nil || src.pinnedCalls != 0 {
		t.Fatalf("expected no pinned lookup, got %+v calls=%d", seed.Pinned, src.pinnedCalls)
	}
}

func TestLoad_OtherErrorsAreNotNotFound(t *testing.T) {
	src := &fakeCategorySource{categoryErr: errors.New("connection refused")}

	_, err := Load(context.Background(), src, "golang")
	var notFound *NotFoundError
	if err == nil || errors.As(err, &notFound) {
		t.Fatalf("expected plain error, got %v", err)
	}
}
