package state

import (
	"testing"

	"github.com/glabrego/catfeed/internal/feed"
)

func TestClampCursor(t *testing.T) {
	if got := ClampCursor(-1, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ClampCursor(3, 3); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
	if got := ClampCursor(1, 3); got != 1 {
		t.Fatalf("expected keep 1, got %d", got)
	}
	if got := ClampCursor(4, 0); got != 0 {
		t.Fatalf("expected 0 for empty list, got %d", got)
	}
}

func TestCardsPerScreen(t *testing.T) {
	if got := CardsPerScreen(0, 8, 4); got != 10 {
		t.Fatalf("expected default 10, got %d", got)
	}
	if got := CardsPerScreen(40, 8, 4); got != 8 {
		t.Fatalf("expected 8 cards, got %d", got)
	}
	if got := CardsPerScreen(9, 8, 4); got != 1 {
		t.Fatalf("expected at least one card, got %d", got)
	}
}

func TestCenteredWindow(t *testing.T) {
	start, end := CenteredWindow(5, 3, 3)
	if start != 2 || end != 5 {
		t.Fatalf("unexpected window: start=%d end=%d", start, end)
	}
	start, end = CenteredWindow(2, 1, 5)
	if start != 0 || end != 2 {
		t.Fatalf("expected full window for short lists, got start=%d end=%d", start, end)
	}
}

func TestCardIndexByID(t *testing.T) {
	cards := []feed.Card{{ID: 10}, {ID: 20}}
	if got := CardIndexByID(cards, 20); got != 1 {
		t.Fatalf("expected card index 1, got %d", got)
	}
	if got := CardIndexByID(cards, 30); got != -1 {
		t.Fatalf("expected -1 for missing card, got %d", got)
	}
}

func TestAdjacentPage(t *testing.T) {
	if got, ok := AdjacentPage(2, 5, 1); !ok || got != 3 {
		t.Fatalf("expected page 3, got %d ok=%v", got, ok)
	}
	if got, ok := AdjacentPage(1, 5, -1); ok || got != 1 {
		t.Fatalf("expected no page before the first, got %d ok=%v", got, ok)
	}
	if _, ok := AdjacentPage(1, 0, 1); ok {
		t.Fatal("expected no next page for empty category")
	}
}
