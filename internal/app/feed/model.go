package feed

import (
	"winntalks/internal/app/board"
	"winntalks/internal/app/post"
)

const (
	SortRecent = "recent"
	SortHot    = "hot"
)

type PostListResponse struct {
	Posts []*post.Post `json:"posts"`
}

type SearchResponse struct {
	Results []*post.Post `json:"results"`
	Query   string       `json:"query"`
}

type BoardPageResult struct {
	Board *board.Board `json:"board"`
	Posts []*post.Post `json:"posts"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Pages int64        `json:"pages"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
