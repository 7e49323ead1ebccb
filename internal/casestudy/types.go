package casestudy

import "errors"

// Study is the detail record shown when a portfolio item is opened.
type Study struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Category  string   `json:"category"`
	Client    string   `json:"client"`
	Timeline  string   `json:"timeline"`
	Services  string   `json:"services"`
	Challenge string   `json:"challenge"`
	Solution  string   `json:"solution"`
	Image     string   `json:"image"`
	Results   []string `json:"results"`
	Gallery   []string `json:"gallery,omitempty"`
}

// UnavailableMessage is the user-facing notice for ErrUnavailable.
const UnavailableMessage = "Failed to load project data. Please check your connection."

var (
	// ErrUnavailable is returned while the study data could not be loaded.
	ErrUnavailable = errors.New("case study data unavailable")
	// ErrNotFound is returned for ids with no study.
	ErrNotFound = errors.New("case study not found")
)
