package models

// Sortable article columns
const (
	SortID       = "id"
	SortTitle    = "title"
	SortPhotoURL = "photo_url"
)

// Sort directions
const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// Domain types

type Article struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	PhotoURL string `json:"photo_url"`
}

// ArticleQuery filters and orders an article listing.
// An empty Search matches every article.
type ArticleQuery struct {
	Search    string
	Sort      string
	Direction string
	Limit     int
	Offset    int
}

// Not persisted; every poll parses it again from the request.
type RaffleRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Response types

type PagingResponse struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	Count     int    `json:"count"`
	PageCount int    `json:"page_count"`
	HasNext   bool   `json:"has_next"`
	HasPrev   bool   `json:"has_prev"`
	Sort      string `json:"sort"`
	Direction string `json:"direction"`
}

type ArticleListResponse struct {
	Articles []Article      `json:"articles"`
	Paging   PagingResponse `json:"paging"`
	Query    string         `json:"q,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
