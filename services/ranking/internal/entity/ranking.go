package entity

import "time"

type RankingStatus string

const (
	StatusDraft     RankingStatus = "draft"
	StatusPublished RankingStatus = "published"
	StatusArchived  RankingStatus = "archived"
)

func (s RankingStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// StatusFromActive maps the form's isActive toggle onto a status.
func StatusFromActive(active bool) RankingStatus {
	if active {
		return StatusPublished
	}
	return StatusDraft
}

type Ranking struct {
	ID               string        `json:"id"`
	AuthorID         string        `json:"authorId"`
	Title            string        `json:"title"`
	Slug             string        `json:"slug"`
	Description      string        `json:"description"`
	CoverImage       *string       `json:"coverImage,omitempty"`
	Category         string        `json:"category"`
	Status           RankingStatus `json:"status"`
	CycleEndDate     time.Time     `json:"cycleEndDate"`
	AllowSuggestions bool          `json:"allowSuggestions"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
	DeletedAt        *time.Time    `json:"-"`
}

func (r *Ranking) IsPublished() bool {
	return r.Status == StatusPublished
}
