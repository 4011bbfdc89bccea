package forum

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAuthorName = "N.A."
	DefaultImage      = "/logo.png"
)

// Category is the subset of board category fields used by the app.
type Category struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PinPost     *PinRef `json:"pinPost,omitempty"`
}

// PinRef points at the post a category pins above its listing.
type PinRef struct {
	ID int64 `json:"id"`
}

type Author struct {
	Username   string `json:"username"`
	ProfileImg string `json:"profileImg"`
}

// Post is a read-only snapshot of a board post.
type Post struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Context      string    `json:"context"`
	HeadImg      string    `json:"headImg"`
	Author       Author    `json:"postUsers"`
	ViewCount    int64     `json:"viewCount"`
	CommentCount int64     `json:"commentCount"`
	FollowCount  int64     `json:"followCount"`
	CreatedAt    Timestamp `json:"createTimestamp"`
}

func (p Post) AuthorName() string {
	if name := strings.TrimSpace(p.Author.Username); name != "" {
		return name
	}
	return DefaultAuthorName
}

func (p Post) AvatarURL() string {
	if img := strings.TrimSpace(p.Author.ProfileImg); img != "" {
		return img
	}
	return DefaultImage
}

func (p Post) CoverURL() string {
	if img := strings.TrimSpace(p.HeadImg); img != "" {
		return img
	}
	return DefaultImage
}

// Timestamp accepts either epoch milliseconds or an RFC 3339 string.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		t.Time = time.Time{}
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode timestamp: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("parse timestamp %q: %w", s, err)
		}
		t.Time = parsed.UTC()
		return nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("parse timestamp %s: %w", raw, err)
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}
