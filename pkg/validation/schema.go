package validation

const (
	TitleMaxLength       = 100
	DescriptionMaxLength = 500
	CategoryMaxLength    = 50
	URLMaxLength         = 2048

	MinCycleLengthDays = 1
	MaxCycleLengthDays = 365
)

// RankingSchema carries the constraints of the ranking form. Partial updates
// fill only the supplied fields and validate them by struct field name.
type RankingSchema struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
	CoverImage  string `json:"coverImage" validate:"omitempty,http_url,max=2048"`
	Category    string `json:"category" validate:"omitempty,max=50"`
	Status      string `json:"status" validate:"omitempty,oneof=draft published archived"`
	CycleLength int    `json:"cycleLength" validate:"min=1,max=365"`
}

// ItemSchema carries the constraints of the ranking item form.
type ItemSchema struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,http_url,max=2048"`
}
