// Package types provides type definitions for structured data used throughout the resume-insights system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Candidate represents the structured profile extracted from a resume
type Candidate struct {
	Name     string                 `json:"name"`
	Email    string                 `json:"email"`
	Age      int                    `json:"age,omitempty"`
	Phone    string                 `json:"phone,omitempty"`
	Location string                 `json:"location,omitempty"`
	Summary  string                 `json:"summary,omitempty"`
	Skills   map[string]SkillDetail `json:"skills,omitempty"`
}

// SkillDetail represents one enriched skill on a candidate profile.
// Numeric fields are pointers so that "not determined" survives serialization
// as an absent key rather than a zero.
type SkillDetail struct {
	SkillName       string   `json:"skill_name"`
	Category        string   `json:"category,omitempty"`
	Proficiency     *float64 `json:"proficiency,omitempty"`      // 0-100, one decimal
	YearsExperience *float64 `json:"years_experience,omitempty"` // one decimal
	Mentions        []string `json:"mentions,omitempty"`
	RelatedSkills   []string `json:"related_skills,omitempty"`
}
