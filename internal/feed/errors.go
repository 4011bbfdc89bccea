package feed

import "fmt"

type Reason string

const (
	ReasonInvalidFormat Reason = "invalid_format"
	ReasonOutOfRange    Reason = "out_of_range"
)

// ValidationError rejects raw numeric input. Min and Max are set for
// ReasonOutOfRange; Max < Min means no value is acceptable.
type ValidationError struct {
	Field  string
	Reason Reason
	Min    int
	Max    int
}

func (e *ValidationError) Error() string {
	if e.Reason == ReasonOutOfRange {
		if e.Max < e.Min {
			return "No post in this category."
		}
		return fmt.Sprintf("Please use a number between %d and %d", e.Min, e.Max)
	}
	return "Invalid input"
}

// NotFoundError means the requested category does not exist and the view
// cannot be rendered.
type NotFoundError struct {
	Title string
	Err   error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("category %q not found", e.Title)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// FetchError reports a failed fetch cycle. The previous result stays visible.
type FetchError struct {
	Query Query
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch page %d of %q: %v", e.Query.PageIndex+1, e.Query.CategoryTitle, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
