package view

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/glabrego/catfeed/internal/feed"
	"github.com/glabrego/catfeed/internal/forum"
	"github.com/glabrego/catfeed/internal/render/abstract"
	tuitheme "github.com/glabrego/catfeed/internal/tui/theme"
)

// DateLayout is day-first, matching how the board shows post times.
const DateLayout = "02/01/2006 15:04:05"

const cardIndent = "      "

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type CardParams struct {
	Card          feed.Card
	Number        int
	Active        bool
	Width         int
	AbstractLines int
	Location      *time.Location
}

// RenderCard returns the title line, the meta line and, when present, the
// cover and abstract lines of one post.
func RenderCard(p CardParams, th tuitheme.Theme) []string {
	lines := make([]string, 0, 3+p.AbstractLines)

	marker := " "
	if p.Active {
		marker = ">"
	}
	prefix := fmt.Sprintf("  %s%3d. ", marker, p.Number)
	dateLabel := "[" + FormatDate(p.Card.CreatedAt, p.Location) + "]"
	available := p.Width - visibleLen(prefix) - 1 - visibleLen(dateLabel)
	if available < 1 {
		available = 1
	}
	label := strings.TrimSpace(p.Card.Title)
	if label == "" {
		label = "(untitled)"
	}
	label = truncateRunes(label, available)
	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(dateLabel)
	if gap < 1 {
		gap = 1
	}
	lines = append(lines, th.RenderActiveLine(p.Active, prefix+th.StylePostTitle(false, label)+strings.Repeat(" ", gap)+th.MetaLabel.Render(dateLabel)))
	lines = append(lines, cardIndent+MetaLine(p.Card.AuthorName, p.Card.ViewCount, p.Card.CommentCount, p.Card.FollowCount, th))

	if p.Card.Cover != "" {
		lines = append(lines, cardIndent+th.MetaLabel.Render("cover")+" "+th.Cover.Render(truncateRunes(p.Card.Cover, max(1, p.Width-len(cardIndent)-6))))
	}
	if p.Card.Abstract != "" && p.AbstractLines > 0 {
		for _, line := range abstract.Lines(p.Card.Abstract, max(1, p.Width-len(cardIndent)), p.AbstractLines) {
			lines = append(lines, cardIndent+th.Abstract.Render(line))
		}
	}
	return lines
}

// RenderPinned renders the category's pinned post above the list.
func RenderPinned(post forum.Post, width int, loc *time.Location, th tuitheme.Theme) []string {
	title := truncateRunes(strings.TrimSpace(post.Title), max(1, width-12))
	lines := []string{
		"  " + th.Pinned.Render("pinned") + "  " + th.StylePostTitle(true, title),
		cardIndent + MetaLine(post.AuthorName(), max(post.ViewCount, 0), max(post.CommentCount, 0), max(post.FollowCount, 0), th) +
			" " + th.MetaLabel.Render("["+FormatDate(post.CreatedAt.Time, loc)+"]"),
	}
	return lines
}

func MetaLine(author string, views, comments, follows int64, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("by") + " " + th.MetaValue.Render(author),
		th.Counter.Render(fmt.Sprintf("%d", views)) + " " + th.MetaLabel.Render("views"),
		th.Counter.Render(fmt.Sprintf("%d", comments)) + " " + th.MetaLabel.Render("comments"),
		th.Counter.Render(fmt.Sprintf("%d", follows)) + " " + th.MetaLabel.Render("follows"),
	}
	return strings.Join(parts, " · ")
}

func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "unknown"
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateLayout)
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
