package book

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AddBookRequest lists a new book. Validation lives here at the edge;
// the engine itself accepts whatever it is handed.
type AddBookRequest struct {
	Title       string    `json:"title" binding:"required"`
	Author      string    `json:"author" binding:"required"`
	Genre       string    `json:"genre"`
	Condition   Condition `json:"condition" binding:"required"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Location    Location  `json:"location"`
}

func (r AddBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Condition,
			validation.Required,
			validation.In(ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor).
				Error("condition must be excellent, good, fair or poor"),
		),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

// Filters narrow a search result after the free-text pass. Zero values
// mean "don't filter".
type Filters struct {
	Genre     string
	Condition Condition
	Status    Status
}

// SearchRequest binds the search endpoint's query parameters.
type SearchRequest struct {
	Query     string    `form:"q"`
	Genre     string    `form:"genre"`
	Condition Condition `form:"condition"`
}
