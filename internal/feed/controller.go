package feed

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/glabrego/catfeed/internal/forum"
	"github.com/glabrego/catfeed/internal/prefs"
)

type PageFetcher interface {
	Fetch(ctx context.Context, q Query) (Result, error)
}

// Cycle is one initiated fetch. Tokens increase with every initiation.
type Cycle struct {
	Token uint64
	Query Query
}

// Run performs the fetch. It is the only part of a cycle that may run off
// the controller's goroutine.
func (c Cycle) Run(ctx context.Context, f PageFetcher) Completion {
	res, err := f.Fetch(ctx, c.Query)
	return Completion{Token: c.Token, Query: c.Query, Result: res, Err: err}
}

type Completion struct {
	Token  uint64
	Query  Query
	Result Result
	Err    error
}

type Outcome int

const (
	// OutcomeStale means a newer cycle was initiated and the completion was dropped.
	OutcomeStale Outcome = iota
	OutcomePublished
	OutcomeFailed
)

// Controller owns the state of one feed view. It is not safe for concurrent
// use: every method must be called from the goroutine driving the view.
//
// Any change to page index, page size, sort column or sort direction returns
// exactly one new *Cycle for the caller to run; display toggles never do.
type Controller struct {
	store  *prefs.Store
	logger *slog.Logger

	initialized bool
	category    forum.Category
	pinned      *forum.Post

	pageIndex      int
	pageSize       int
	sortColumn     Column
	sortDescending bool

	pinVisible      bool
	coverVisible    bool
	abstractVisible bool

	stagedPageSize string
	stagedPage     string

	token      uint64
	pending    bool
	result     Result
	loaded     bool
	totalCount int
	totalPages int
	notice     error
}

func NewController(store *prefs.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{store: store, logger: logger}
}

// Initialize seeds the view from stored preferences and the category's last
// visited page, and starts the first fetch cycle.
func (c *Controller) Initialize(seed Seed) *Cycle {
	p := LoadPreferences(c.store, c.logger)

	c.category = seed.Category
	c.pinned = seed.Pinned
	c.pageSize = p.PageSize
	c.sortColumn = p.SortColumn
	c.sortDescending = p.SortDescending
	c.pinVisible = p.PinVisible
	c.coverVisible = p.CoverVisible
	c.abstractVisible = p.AbstractVisible

	c.result = Result{}
	c.loaded = false
	c.notice = nil
	c.totalCount = max(seed.InitialTotalCount, 0)
	c.totalPages = TotalPages(c.totalCount, c.pageSize)

	stored := c.store.Int(prefs.Ephemeral, PositionKey(c.category.Title), 0).Value
	c.pageIndex = clampPage(stored, c.totalPages)
	if c.pageIndex != stored {
		c.store.SetInt(prefs.Ephemeral, PositionKey(c.category.Title), c.pageIndex)
	}

	c.stagedPageSize = strconv.Itoa(c.pageSize)
	c.stagedPage = strconv.Itoa(c.pageIndex + 1)
	c.initialized = true
	return c.startCycle()
}

// SetPageSize applies a validated page size. The page index and the stored
// position go back to the first page.
func (c *Controller) SetPageSize(size int) (*Cycle, error) {
	if size < MinPageSize || size > MaxPageSize {
		return nil, &ValidationError{Field: "page size", Reason: ReasonOutOfRange, Min: MinPageSize, Max: MaxPageSize}
	}
	before := c.Query()
	c.pageSize = size
	c.pageIndex = 0
	c.totalPages = TotalPages(c.totalCount, c.pageSize)
	c.store.SetInt(prefs.Durable, KeyPageSize, size)
	c.store.SetInt(prefs.Ephemeral, PositionKey(c.category.Title), 0)
	c.stagedPageSize = strconv.Itoa(size)
	c.stagedPage = "1"
	return c.requery(before), nil
}

// SetPage moves to a validated one-based page.
func (c *Controller) SetPage(page int) (*Cycle, error) {
	if page < 1 || page > c.totalPages {
		return nil, &ValidationError{Field: "page number", Reason: ReasonOutOfRange, Min: 1, Max: c.totalPages}
	}
	before := c.Query()
	c.pageIndex = page - 1
	c.store.SetInt(prefs.Ephemeral, PositionKey(c.category.Title), c.pageIndex)
	c.stagedPage = strconv.Itoa(page)
	return c.requery(before), nil
}

// SetSortColumn keeps the current page index.
func (c *Controller) SetSortColumn(column Column) *Cycle {
	Resolve(column, c.sortDescending)
	before := c.Query()
	c.sortColumn = column
	c.store.Set(prefs.Durable, KeySortColumn, string(column))
	return c.requery(before)
}

// ToggleSortDirection keeps the current page index.
func (c *Controller) ToggleSortDirection() *Cycle {
	before := c.Query()
	c.sortDescending = !c.sortDescending
	c.store.SetBool(prefs.Durable, KeySortDirection, c.sortDescending)
	return c.requery(before)
}

// Refresh re-issues the current query as a new cycle.
func (c *Controller) Refresh() *Cycle {
	if !c.initialized {
		return nil
	}
	return c.startCycle()
}

// TogglePinVisible is inert for categories without a pinned post.
func (c *Controller) TogglePinVisible() bool {
	if c.pinned == nil {
		return c.pinVisible
	}
	c.pinVisible = !c.pinVisible
	c.store.SetBool(prefs.Durable, KeyPinVisible, c.pinVisible)
	return c.pinVisible
}

func (c *Controller) ToggleCoverVisible() bool {
	c.coverVisible = !c.coverVisible
	c.store.SetBool(prefs.Durable, KeyCoverVisible, c.coverVisible)
	return c.coverVisible
}

func (c *Controller) ToggleAbstractVisible() bool {
	c.abstractVisible = !c.abstractVisible
	c.store.SetBool(prefs.Durable, KeyAbstractVisible, c.abstractVisible)
	return c.abstractVisible
}

// StagePageSize records unvalidated input; nothing changes until ApplyPageSize.
func (c *Controller) StagePageSize(raw string) {
	c.stagedPageSize = raw
}

// StagePage records unvalidated one-based input; nothing changes until ApplyPage.
func (c *Controller) StagePage(raw string) {
	c.stagedPage = raw
}

// ApplyPageSize validates the staged page size. On error no state changes.
func (c *Controller) ApplyPageSize() (*Cycle, error) {
	size, err := ValidatePageSize(c.stagedPageSize)
	if err != nil {
		return nil, err
	}
	return c.SetPageSize(size)
}

// ApplyPage validates the staged page number. On error no state changes.
func (c *Controller) ApplyPage() (*Cycle, error) {
	page, err := ValidatePageNumber(c.stagedPage, c.totalPages)
	if err != nil {
		return nil, err
	}
	return c.SetPage(page)
}

// Complete publishes the result of the latest cycle. Completions of older
// cycles are dropped regardless of arrival order. A returned *Cycle follows
// up when the new total moved the current page out of range.
func (c *Controller) Complete(done Completion) (Outcome, *Cycle) {
	if done.Token != c.token {
		c.logger.Debug("discarding stale fetch", "token", done.Token, "latest", c.token)
		return OutcomeStale, nil
	}
	c.pending = false

	if done.Err != nil {
		var fetchErr *FetchError
		if !errors.As(done.Err, &fetchErr) {
			fetchErr = &FetchError{Query: done.Query, Err: done.Err}
		}
		c.notice = fetchErr
		c.logger.Warn("fetch cycle failed", "token", done.Token, "category", done.Query.CategoryTitle, "error", done.Err)
		return OutcomeFailed, nil
	}

	c.notice = nil
	c.loaded = true
	c.result = Result{
		Items:      append([]forum.Post(nil), done.Result.Items...),
		TotalCount: done.Result.TotalCount,
	}
	c.totalCount = done.Result.TotalCount
	c.totalPages = TotalPages(c.totalCount, c.pageSize)

	clamped := clampPage(c.pageIndex, c.totalPages)
	if clamped == c.pageIndex {
		return OutcomePublished, nil
	}
	before := c.Query()
	c.pageIndex = clamped
	c.store.SetInt(prefs.Ephemeral, PositionKey(c.category.Title), c.pageIndex)
	c.stagedPage = strconv.Itoa(c.pageIndex + 1)
	return OutcomePublished, c.requery(before)
}

// Query builds the query for the current state.
func (c *Controller) Query() Query {
	q := Query{
		CategoryTitle: c.category.Title,
		PageIndex:     c.pageIndex,
		PageSize:      c.pageSize,
	}
	if c.initialized {
		q.Sort = Resolve(c.sortColumn, c.sortDescending)
	}
	return q
}

func (c *Controller) requery(before Query) *Cycle {
	if !c.initialized || c.Query() == before {
		return nil
	}
	return c.startCycle()
}

func (c *Controller) startCycle() *Cycle {
	c.token++
	c.pending = true
	q := c.Query()
	c.logger.Debug("fetch cycle started",
		"token", c.token,
		"category", q.CategoryTitle,
		"page", q.PageIndex,
		"size", q.PageSize,
		"sort", q.Sort.Token(),
	)
	return &Cycle{Token: c.token, Query: q}
}

func clampPage(index, totalPages int) int {
	if totalPages <= 0 || index < 0 {
		return 0
	}
	if index >= totalPages {
		return totalPages - 1
	}
	return index
}
