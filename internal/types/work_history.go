package types

// WorkHistoryEntry represents one position from a resume's work history.
// Dates are kept exactly as the model reported them; parsing happens later
// and only when an entry is correlated with a skill.
type WorkHistoryEntry struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}
