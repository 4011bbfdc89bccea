package view

import (
	"fmt"
	"strings"

	"github.com/glabrego/catfeed/internal/feed"
	"github.com/glabrego/catfeed/internal/forum"
	tuitheme "github.com/glabrego/catfeed/internal/tui/theme"
)

func Toolbar(prompting bool) string {
	if prompting {
		return "enter apply | esc cancel"
	}
	return "j/k move | n/p page | g go to | z size | s sort | d direction | 1/2/3 pin/cover/abstract | enter open | y copy | r refresh | ? help | q quit"
}

func Header(category string, th tuitheme.Theme) string {
	return th.Title.Render("catfeed") + " " + th.ModePill.Render(category)
}

// Intro is the category description shown under the header. It is empty
// when the category has none.
func Intro(category forum.Category, width int, th tuitheme.Theme) string {
	desc := strings.Join(strings.Fields(category.Description), " ")
	if desc == "" {
		return ""
	}
	return th.Intro.Render(truncateRunes(desc, max(1, width)))
}

// Pagination describes the current page; an empty category has no pages.
func Pagination(m feed.RenderModel, th tuitheme.Theme) string {
	page := fmt.Sprintf("%d/%d", m.CurrentPage, m.TotalPages)
	if m.TotalPages == 0 {
		page = "-"
	}
	parts := []string{
		th.MetaLabel.Render("page") + " " + th.MetaValue.Render(page),
		th.MetaValue.Render(fmt.Sprintf("%d posts", m.TotalCount)),
		th.MetaValue.Render(fmt.Sprintf("%d per page", m.PageSize)),
	}
	return strings.Join(parts, " • ")
}

func Settings(m feed.RenderModel, th tuitheme.Theme) string {
	direction := "↓"
	if !m.SortDescending {
		direction = "↑"
	}
	parts := []string{
		th.MetaLabel.Render("sort") + " " + th.MetaValue.Render(string(m.SortColumn)+" "+direction),
	}
	if m.HasPinned {
		parts = append(parts, th.MetaLabel.Render("pin")+" "+th.MetaValue.Render(onOff(m.PinVisible)))
	}
	parts = append(parts,
		th.MetaLabel.Render("covers")+" "+th.MetaValue.Render(onOff(m.CoverVisible)),
		th.MetaLabel.Render("abstracts")+" "+th.MetaValue.Render(onOff(m.AbstractVisible)),
	)
	return strings.Join(parts, " • ")
}

func Message(loading bool, notice error, status string, th tuitheme.Theme) string {
	state := "idle"
	stateLabel := th.StateIdle.Render("state")
	switch {
	case notice != nil:
		state = "warning"
		stateLabel = th.StateWarn.Render("state")
	case loading:
		state = "loading"
		stateLabel = th.StateLoad.Render("state")
	}
	main := "Ready"
	switch {
	case status != "":
		main = status
	case notice != nil:
		main = notice.Error()
	case loading:
		main = "Loading posts..."
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
