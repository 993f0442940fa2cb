package types

import "github.com/go-playground/validator/v10"

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Username string `json:"username" validate:"required"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// AnalyzeResponse is the merged judgment, opener and echoed profile fields.
type AnalyzeResponse struct {
	Flag          Flag     `json:"flag"`
	Reasoning     string   `json:"reasoning"`
	RedFlags      []string `json:"redFlags"`
	GreenFlags    []string `json:"greenFlags"`
	MessageOpener string   `json:"messageOpener"`
	Followers     int      `json:"followers"`
	Following     int      `json:"following"`
	Posts         int      `json:"posts"`
	Bio           string   `json:"bio"`
	ImageURL      string   `json:"imageUrl,omitempty"`
}
