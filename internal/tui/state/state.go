package state

import "github.com/glabrego/catfeed/internal/feed"

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// CardsPerScreen is how many cards of cardLines rows fit below the chrome.
func CardsPerScreen(height, chromeLines, cardLines int) int {
	if height <= 0 {
		return 10
	}
	if cardLines < 1 {
		cardLines = 1
	}
	n := (height - chromeLines) / cardLines
	if n < 1 {
		n = 1
	}
	return n
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

func CardIndexByID(cards []feed.Card, postID int64) int {
	for i, card := range cards {
		if card.ID == postID {
			return i
		}
	}
	return -1
}

// AdjacentPage returns the one-based page delta steps away from current, or
// false when it falls outside 1..totalPages.
func AdjacentPage(current, totalPages, delta int) (int, bool) {
	next := current + delta
	if next < 1 || next > totalPages {
		return current, false
	}
	return next, true
}
