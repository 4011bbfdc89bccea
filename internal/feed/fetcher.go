package feed

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/glabrego/catfeed/internal/forum"
)

type PostSource interface {
	GetPostsByCategoryTitle(ctx context.Context, title string, page, size int, sort string) ([]forum.Post, error)
	GetPostCountByCategoryTitle(ctx context.Context, title string) (int, error)
}

// Fetcher issues the item page and total count of a cycle concurrently.
// It does not retry; either call failing fails the cycle.
type Fetcher struct {
	source PostSource
}

func NewFetcher(source PostSource) *Fetcher {
	return &Fetcher{source: source}
}

func (f *Fetcher) Fetch(ctx context.Context, q Query) (Result, error) {
	var (
		items []forum.Post
		count int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		posts, err := f.source.GetPostsByCategoryTitle(gctx, q.CategoryTitle, q.PageIndex, q.PageSize, q.Sort.Token())
		if err != nil {
			return fmt.Errorf("list posts: %w", err)
		}
		items = posts
		return nil
	})
	g.Go(func() error {
		n, err := f.source.GetPostCountByCategoryTitle(gctx, q.CategoryTitle)
		if err != nil {
			return fmt.Errorf("count posts: %w", err)
		}
		count = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, &FetchError{Query: q, Err: err}
	}

	if count < 0 {
		count = 0
	}
	return Result{Items: items, TotalCount: count}, nil
}
