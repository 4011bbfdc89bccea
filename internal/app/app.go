package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/glabrego/catfeed/internal/feed"
	"github.com/glabrego/catfeed/internal/forum"
	"github.com/glabrego/catfeed/internal/prefs"
)

type ForumClient interface {
	ListCategories(ctx context.Context) ([]forum.Category, error)
	GetCategoryByTitle(ctx context.Context, title string) (forum.Category, error)
	GetPostCountByCategoryTitle(ctx context.Context, title string) (int, error)
	GetPostsByCategoryTitle(ctx context.Context, title string, page, size int, sort string) ([]forum.Post, error)
	GetPostByID(ctx context.Context, id int64) (forum.Post, error)
}

type Service struct {
	client ForumClient
	store  *prefs.Store
	logger *slog.Logger
}

func NewService(client ForumClient, store *prefs.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, store: store, logger: logger}
}

// WithLogger returns a copy of the service that logs to logger.
func (s *Service) WithLogger(logger *slog.Logger) *Service {
	clone := *s
	clone.logger = logger
	return &clone
}

func (s *Service) ListCategories(ctx context.Context) ([]forum.Category, error) {
	categories, err := s.client.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return categories, nil
}

// OpenView loads a category and returns its initialized controller together
// with the first fetch cycle. A missing category yields *feed.NotFoundError.
func (s *Service) OpenView(ctx context.Context, title string) (*feed.Controller, *feed.Cycle, error) {
	seed, err := feed.Load(ctx, s.client, title)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("category loaded",
		"category", seed.Category.Title,
		"posts", seed.InitialTotalCount,
		"pinned", seed.Pinned != nil,
	)
	controller := feed.NewController(s.store, s.logger.With("category", seed.Category.Title))
	cycle := controller.Initialize(seed)
	return controller, cycle, nil
}

func (s *Service) Fetcher() feed.PageFetcher {
	return feed.NewFetcher(s.client)
}

func (s *Service) Preferences() feed.Preferences {
	return feed.LoadPreferences(s.store, s.logger)
}

func (s *Service) ResetPreferences() {
	feed.ResetPreferences(s.store)
	s.logger.Info("preferences reset")
}
