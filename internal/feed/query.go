package feed

import "github.com/glabrego/catfeed/internal/forum"

// Query fully determines one fetch. Equal queries produce equal requests.
type Query struct {
	CategoryTitle string
	PageIndex     int
	PageSize      int
	Sort          SortSpec
}

type Result struct {
	Items      []forum.Post
	TotalCount int
}

// TotalPages is ceil(totalCount/pageSize), and 0 for an empty category.
func TotalPages(totalCount, pageSize int) int {
	if totalCount <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}
