package entity

// DefaultCycleLengthDays applies when a create request leaves cycleLength out.
const DefaultCycleLengthDays = 7

type CreateRankingDTO struct {
	AuthorID         string
	Title            string
	Description      string
	CoverImage       *string
	Category         string
	IsActive         bool
	AllowSuggestions bool
	CycleLength      int
}

// UpdateRankingDTO is a partial update: nil fields keep their stored value.
type UpdateRankingDTO struct {
	ID               string
	Title            *string
	Description      *string
	CoverImage       *string
	Category         *string
	Status           *RankingStatus
	AllowSuggestions *bool
	CycleLength      *int
}

type CreateItemDTO struct {
	RankingID   string
	Title       string
	Description string
	ImageURL    *string
	Metadata    map[string]interface{}
}

type UpdateItemDTO struct {
	ID          string
	RankingID   string
	Title       *string
	Description *string
	ImageURL    *string
	Metadata    map[string]interface{}
}

// RankingQuery drives in-process filtering and pagination of the full result set.
type RankingQuery struct {
	Page   int
	Limit  int
	Search string
	Status RankingStatus
}

type Pagination struct {
	Current int `json:"current"`
	Total   int `json:"total"`
	Count   int `json:"count"`
}

type RankingPage struct {
	Rankings   []*Ranking
	Pagination Pagination
}
