package feed

import "fmt"

// Column is a sort column label as shown to the user and persisted.
type Column string

const (
	ColumnViewCount    Column = "View count"
	ColumnFollowCount  Column = "Follow count"
	ColumnCommentCount Column = "Comment count"
	ColumnCreateTime   Column = "Create time"

	DefaultColumn = ColumnCreateTime
)

// Columns lists every sortable column in display order.
var Columns = []Column{ColumnViewCount, ColumnFollowCount, ColumnCommentCount, ColumnCreateTime}

var columnFields = map[Column]string{
	ColumnViewCount:    "viewCount",
	ColumnFollowCount:  "followCount",
	ColumnCommentCount: "commentCount",
	ColumnCreateTime:   "createTimestamp",
}

type Direction string

const (
	Descending Direction = "desc"
	Ascending  Direction = "asc"
)

type SortSpec struct {
	Field     string
	Direction Direction
}

// Token is the transport form, e.g. "viewCount,desc".
func (s SortSpec) Token() string {
	return s.Field + "," + string(s.Direction)
}

// Resolve maps a column and the shared direction toggle to a SortSpec.
// Labels only come from Columns, so an unknown one is a programming error.
func Resolve(column Column, descending bool) SortSpec {
	field, ok := columnFields[column]
	if !ok {
		panic(fmt.Sprintf("feed: unknown sort column %q", column))
	}
	dir := Ascending
	if descending {
		dir = Descending
	}
	return SortSpec{Field: field, Direction: dir}
}

// ParseColumn reports whether label names a known column.
func ParseColumn(label string) (Column, bool) {
	c := Column(label)
	_, ok := columnFields[c]
	return c, ok
}

// NextColumn returns the column after c in display order, wrapping around.
func NextColumn(c Column) Column {
	for i, col := range Columns {
		if col == c {
			return Columns[(i+1)%len(Columns)]
		}
	}
	return DefaultColumn
}
