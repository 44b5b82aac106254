package models

// Feed pagination bounds. Requests beyond MaxFeedLimit are clamped, never
// rejected.
const (
	DefaultFeedLimit = 10
	MaxFeedLimit     = 50
)

// Sort orders accepted by the feed.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// FeedFilters narrows the discovery-feed candidate pool. Zero values mean
// "no filter".
type FeedFilters struct {
	Search string
	Gender string
	MinAge int
	MaxAge int
	SortBy string
	Order  string
}

// FeedPagination selects a page of the ranked candidate list. Page values
// below 1 are treated as page 1; limits are clamped to [1, MaxFeedLimit] with
// DefaultFeedLimit substituted for non-positive values.
type FeedPagination struct {
	Page  int
	Limit int
}

// Normalize applies the boundary policy and returns the effective values.
func (p FeedPagination) Normalize() FeedPagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultFeedLimit
	}
	if p.Limit > MaxFeedLimit {
		p.Limit = MaxFeedLimit
	}
	return p
}

// FeedPage is the discovery-feed result envelope.
type FeedPage struct {
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
	Count int          `json:"count"`
	Users []PublicUser `json:"users"`
}
