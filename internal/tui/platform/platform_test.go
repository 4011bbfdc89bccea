package platform

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestValidatePostURL(t *testing.T) {
	valid, err := ValidatePostURL("https://example.com/path")
	if err != nil {
		t.Fatalf("unexpected error for valid URL: %v", err)
	}
	if valid != "https://example.com/path" {
		t.Fatalf("unexpected normalized URL: %q", valid)
	}

	_, err = ValidatePostURL("ftp://example.com/path")
	if err == nil || !strings.Contains(err.Error(), "unsupported URL scheme") {
		t.Fatalf("expected unsupported scheme error, got %v", err)
	}

	_, err = ValidatePostURL("https://")
	if err == nil || !strings.Contains(err.Error(), "invalid URL host") {
		t.Fatalf("expected invalid host error, got %v", err)
	}
}

func TestPostURL_ResolvesAgainstSite(t *testing.T) {
	got, err := PostURL("http://localhost:3000/", "/post/42?categoryTitle=Board+Games")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "http://localhost:3000/post/42?categoryTitle=Board+Games" {
		t.Fatalf("unexpected post URL: %q", got)
	}

	if _, err := PostURL("", "/post/1"); err == nil {
		t.Fatal("expected error without a site URL")
	}
}

func TestBrowserCommand(t *testing.T) {
	cases := []struct {
		goos string
		url  string
		name string
		args []string
	}{
		{goos: "darwin", url: "https://example.com", name: "open", args: []string{"https://example.com"}},
		{goos: "windows", url: "https://example.com", name: "rundll32", args: []string{"url.dll,FileProtocolHandler", "https://example.com"}},
		{goos: "linux", url: "https://example.com", name: "xdg-open", args: []string{"https://example.com"}},
	}
	for _, tc := range cases {
		gotName, gotArgs := browserCommand(tc.goos, tc.url)
		if gotName != tc.name || !reflect.DeepEqual(gotArgs, tc.args) {
			t.Fatalf("browserCommand(%q) = (%q, %v), want (%q, %v)", tc.goos, gotName, gotArgs, tc.name, tc.args)
		}
	}
}

func TestCopyWithFallback_TriesNextCommandOnFailure(t *testing.T) {
	installed := func(bin string) (string, error) {
		if bin == "xclip" || bin == "wl-copy" {
			return "/usr/bin/" + bin, nil
		}
		return "", errors.New("not found")
	}
	var ran []string
	var copied string
	run := func(c []string, input string) error {
		ran = append(ran, c[0])
		if c[0] == "xclip" {
			return errors.New("cannot open display")
		}
		copied = input
		return nil
	}

	if err := copyWithFallback("http://localhost:3000/post/1", installed, run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ran, []string{"xclip", "wl-copy"}) {
		t.Fatalf("unexpected commands run: %v", ran)
	}
	if copied != "http://localhost:3000/post/1" {
		t.Fatalf("unexpected clipboard input: %q", copied)
	}
}

func TestCopyWithFallback_ReportsFailures(t *testing.T) {
	none := func(string) (string, error) { return "", errors.New("not found") }
	neverRun := func([]string, string) error {
		t.Fatal("no command should run")
		return nil
	}
	err := copyWithFallback("u", none, neverRun)
	if err == nil || !strings.Contains(err.Error(), "no clipboard command") {
		t.Fatalf("expected missing command error, got %v", err)
	}

	all := func(bin string) (string, error) { return "/usr/bin/" + bin, nil }
	failing := func([]string, string) error { return errors.New("boom") }
	err = copyWithFallback("u", all, failing)
	if err == nil || !strings.Contains(err.Error(), "wl-copy: boom") {
		t.Fatalf("expected last command failure, got %v", err)
	}
}
