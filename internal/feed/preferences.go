package feed

import (
	"log/slog"

	"github.com/glabrego/catfeed/internal/prefs"
)

// Durable preference keys. The spellings are shared with the web client.
const (
	KeyPinVisible      = "pinPost display"
	KeyCoverVisible    = "postHeadIgmDisplay"
	KeyAbstractVisible = "postAbstractDisplay"
	KeySortColumn      = "sortColumn"
	KeySortDirection   = "sortDirection"
	KeyPageSize        = "sizePerPage"
)

// DurableKeys lists every durable key, in the order they are shown.
var DurableKeys = []string{
	KeyPinVisible,
	KeyCoverVisible,
	KeyAbstractVisible,
	KeySortColumn,
	KeySortDirection,
	KeyPageSize,
}

// PositionKey is the ephemeral key of a category's last visited page.
func PositionKey(categoryTitle string) string {
	return categoryTitle + "_currentPage"
}

type Preferences struct {
	PinVisible      bool   `yaml:"pin_visible"`
	CoverVisible    bool   `yaml:"cover_visible"`
	AbstractVisible bool   `yaml:"abstract_visible"`
	SortColumn      Column `yaml:"sort_column"`
	SortDescending  bool   `yaml:"sort_descending"`
	PageSize        int    `yaml:"page_size"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		PinVisible:      true,
		CoverVisible:    true,
		AbstractVisible: true,
		SortColumn:      DefaultColumn,
		SortDescending:  true,
		PageSize:        DefaultPageSize,
	}
}

// LoadPreferences reads the durable scope, discarding stored values that
// violate the column enumeration or the page size bounds.
func LoadPreferences(store *prefs.Store, logger *slog.Logger) Preferences {
	if logger == nil {
		logger = slog.Default()
	}
	p := DefaultPreferences()
	p.PinVisible = store.Bool(prefs.Durable, KeyPinVisible, p.PinVisible).Value
	p.CoverVisible = store.Bool(prefs.Durable, KeyCoverVisible, p.CoverVisible).Value
	p.AbstractVisible = store.Bool(prefs.Durable, KeyAbstractVisible, p.AbstractVisible).Value
	p.SortDescending = store.Bool(prefs.Durable, KeySortDirection, p.SortDescending).Value

	label := store.Get(prefs.Durable, KeySortColumn, string(DefaultColumn))
	if col, ok := ParseColumn(label.Value); ok {
		p.SortColumn = col
	} else {
		logger.Warn("discarding unknown sort column", "value", label.Value)
	}

	size := store.Int(prefs.Durable, KeyPageSize, DefaultPageSize)
	if size.Value >= MinPageSize && size.Value <= MaxPageSize {
		p.PageSize = size.Value
	} else {
		logger.Warn("discarding out of range page size", "value", size.Value)
	}
	return p
}

// ResetPreferences deletes every durable key so the next load sees defaults.
func ResetPreferences(store *prefs.Store) {
	store.Delete(prefs.Durable, DurableKeys...)
}
