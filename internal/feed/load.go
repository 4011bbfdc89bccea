package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/glabrego/catfeed/internal/forum"
)

type CategorySource interface {
	GetCategoryByTitle(ctx context.Context, title string) (forum.Category, error)
	GetPostCountByCategoryTitle(ctx context.Context, title string) (int, error)
	GetPostByID(ctx context.Context, id int64) (forum.Post, error)
}

// Seed is everything a view needs before its first fetch cycle.
type Seed struct {
	Category          forum.Category
	InitialTotalCount int
	Pinned            *forum.Post
}

// Load resolves a category, its initial post count and its pinned post.
// A missing category yields *NotFoundError and nothing else is requested.
func Load(ctx context.Context, src CategorySource, title string) (Seed, error) {
	category, err := src.GetCategoryByTitle(ctx, title)
	if errors.Is(err, forum.ErrNotFound) {
		return Seed{}, &NotFoundError{Title: title, Err: err}
	}
	if err != nil {
		return Seed{}, fmt.Errorf("load category %q: %w", title, err)
	}

	if category.Title == "" {
		category.Title = title
	}

	count, err := src.GetPostCountByCategoryTitle(ctx, title)
	if err != nil {
		return Seed{}, fmt.Errorf("count posts in %q: %w", title, err)
	}

	seed := Seed{Category: category, InitialTotalCount: count}
	if category.PinPost != nil {
		pinned, err := src.GetPostByID(ctx, category.PinPost.ID)
		if err != nil {
			return Seed{}, fmt.Errorf("load pinned post %d: %w", category.PinPost.ID, err)
		}
		seed.Pinned = &pinned
	}
	return seed, nil
}
