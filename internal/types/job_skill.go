package types

// JobSkill represents how a candidate's skills line up against one job
type JobSkill struct {
	Skills  map[string]SkillRelevance `json:"skills"`
	JobName string                    `json:"jobName"`
}

// SkillRelevance represents the assessment of a single skill for a job
type SkillRelevance struct {
	Relevance   string `json:"relevance,omitempty"` // high, medium, low
	Reasoning   string `json:"reasoning,omitempty"`
	Proficiency *int   `json:"proficiency,omitempty"` // 1-10 as judged against the job
}
