package feed

import (
	"fmt"
	"net/url"
	"time"

	"github.com/glabrego/catfeed/internal/forum"
)

// Card is one post projected through the display toggles. Cover and
// Abstract are empty when their toggle is off.
type Card struct {
	ID           int64
	Link         string
	Title        string
	AuthorName   string
	AuthorAvatar string
	Cover        string
	Abstract     string
	CreatedAt    time.Time
	ViewCount    int64
	CommentCount int64
	FollowCount  int64
}

// RenderModel is a read-only snapshot for the presentation layer.
type RenderModel struct {
	Category  forum.Category
	HasPinned bool
	// Pinned is nil when the category has no pinned post or it is hidden.
	Pinned *forum.Post

	Items       []Card
	TotalCount  int
	TotalPages  int
	CurrentPage int
	PageSize    int

	PinVisible      bool
	CoverVisible    bool
	AbstractVisible bool
	SortColumn      Column
	SortDescending  bool

	StagedPageSize string
	StagedPage     string

	Loading bool
	Loaded  bool
	Notice  error
}

func (c *Controller) Model() RenderModel {
	m := RenderModel{
		Category:        c.category,
		HasPinned:       c.pinned != nil,
		TotalCount:      c.totalCount,
		TotalPages:      c.totalPages,
		CurrentPage:     c.pageIndex + 1,
		PageSize:        c.pageSize,
		PinVisible:      c.pinVisible,
		CoverVisible:    c.coverVisible,
		AbstractVisible: c.abstractVisible,
		SortColumn:      c.sortColumn,
		SortDescending:  c.sortDescending,
		StagedPageSize:  c.stagedPageSize,
		StagedPage:      c.stagedPage,
		Loading:         c.pending,
		Loaded:          c.loaded,
		Notice:          c.notice,
	}
	if c.pinned != nil && c.pinVisible {
		pinned := *c.pinned
		m.Pinned = &pinned
	}
	m.Items = make([]Card, 0, len(c.result.Items))
	for _, post := range c.result.Items {
		m.Items = append(m.Items, c.card(post))
	}
	return m
}

func (c *Controller) card(post forum.Post) Card {
	card := Card{
		ID:           post.ID,
		Link:         PostLink(post.ID, c.category.Title),
		Title:        post.Title,
		AuthorName:   post.AuthorName(),
		AuthorAvatar: post.AvatarURL(),
		CreatedAt:    post.CreatedAt.Time,
		ViewCount:    max(post.ViewCount, 0),
		CommentCount: max(post.CommentCount, 0),
		FollowCount:  max(post.FollowCount, 0),
	}
	if c.coverVisible {
		card.Cover = post.CoverURL()
	}
	if c.abstractVisible {
		card.Abstract = post.Context
	}
	return card
}

// PostLink is the site-relative link of a post opened from a category.
func PostLink(postID int64, categoryTitle string) string {
	return fmt.Sprintf("/post/%d?categoryTitle=%s", postID, url.QueryEscape(categoryTitle))
}
