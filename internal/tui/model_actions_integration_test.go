package tui

import (
	"strings"
	"testing"

	tuiactions "github.com/glabrego/catfeed/internal/tui/actions"
)

func TestModelKeypressFlows_PageSizePrompt(t *testing.T) {
	m, _ := newTestModel(t, 25, nil)
	m = settle(t, m, m.Init())

	m, _ = press(t, m, "z")
	if m.prompt != promptPageSize || m.input.Value() != "10" {
		t.Fatalf("expected page size prompt prefilled with 10, got prompt=%v value=%q", m.prompt, m.input.Value())
	}

	m, _ = press(t, m, "backspace")
	m, _ = press(t, m, "backspace")
	m, _ = press(t, m, "2")
	m, _ = press(t, m, "5")
	m, cmd := press(t, m, "enter")
	if cmd != nil {
		t.Fatal("out of range size must not fetch")
	}
	if m.prompt != promptPageSize || m.promptErr != "Please use a number between 1 and 20" {
		t.Fatalf("expected prompt to stay open with error, got prompt=%v err=%q", m.prompt, m.promptErr)
	}
	if m.snapshot.PageSize != 10 {
		t.Fatalf("page size must not change on invalid input, got %d", m.snapshot.PageSize)
	}

	m, _ = press(t, m, "backspace")
	m, cmd = press(t, m, "enter")
	if cmd == nil {
		t.Fatal("expected fetch after valid page size")
	}
	m = settle(t, m, cmd)
	if m.prompt != promptNone || m.snapshot.PageSize != 2 || m.snapshot.TotalPages != 13 {
		t.Fatalf("unexpected state after page size change: %+v", m.snapshot)
	}
}

func TestModelKeypressFlows_GoToPage(t *testing.T) {
	m, _ := newTestModel(t, 25, nil)
	m = settle(t, m, m.Init())

	m, _ = press(t, m, "g")
	m, _ = press(t, m, "backspace")
	m, _ = press(t, m, "x")
	m, cmd := press(t, m, "enter")
	if cmd != nil || m.promptErr != "Invalid input" {
		t.Fatalf("expected invalid format error, got cmd=%v err=%q", cmd != nil, m.promptErr)
	}

	m, _ = press(t, m, "backspace")
	m, _ = press(t, m, "3")
	m, cmd = press(t, m, "enter")
	m = settle(t, m, cmd)
	if m.snapshot.CurrentPage != 3 || len(m.snapshot.Items) != 5 {
		t.Fatalf("expected last page with 5 items, got page=%d items=%d", m.snapshot.CurrentPage, len(m.snapshot.Items))
	}

	m, _ = press(t, m, "g")
	m, _ = press(t, m, "esc")
	if m.prompt != promptNone {
		t.Fatal("expected esc to close the prompt")
	}
}

func TestModelKeypressFlows_OpenAndCopyLink(t *testing.T) {
	m, _ := newTestModel(t, 5, nil)
	m = settle(t, m, m.Init())

	var opened, copied string
	m.openURLFn = func(u string) error { opened = u; return nil }
	m.copyURLFn = func(u string) error { copied = u; return nil }

	m, _ = press(t, m, "j")
	_, cmd := press(t, m, "enter")
	if cmd == nil {
		t.Fatal("expected open command")
	}
	if _, ok := cmd().(tuiactions.OpenURLSuccessMsg); !ok {
		t.Fatal("expected OpenURLSuccessMsg")
	}
	if opened != "http://localhost:3000/post/2?categoryTitle=golang" {
		t.Fatalf("unexpected opened URL: %q", opened)
	}

	_, cmd = press(t, m, "y")
	msg := cmd()
	success, ok := msg.(tuiactions.OpenURLSuccessMsg)
	if !ok || !strings.Contains(success.Status, "copied") {
		t.Fatalf("expected copy success, got %T %+v", msg, msg)
	}
	if copied != opened {
		t.Fatalf("expected copied URL %q, got %q", opened, copied)
	}
}
