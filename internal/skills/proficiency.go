package skills

import (
	"math"
	"regexp"
	"time"

	"github.com/luillyfe/resume-insights/internal/observability"
)

// proficiencyIndicator pairs a wording cue with its score adjustment.
// Table order matters: the first cue found near a skill wins, even when
// its adjustment is zero.
type proficiencyIndicator struct {
	Cue        string
	Adjustment float64
}

var proficiencyIndicators = []proficiencyIndicator{
	{"expert", 10},
	{"advanced", 7},
	{"proficient", 5},
	{"intermediate", 0},
	{"familiar", -5},
	{"basic", -10},
	{"beginner", -15},
}

// estimateProficiency scores every skill on a 0-100 scale from years of
// experience, mention count, and wording cues near the skill name in
// the resume text. The input groups are deep copied and left untouched.
func estimateProficiency(withExperience []categoryGroup, resumeText string) []categoryGroup {
	defer observability.ObserveStage("estimate_proficiency", time.Now())

	scored := cloneGroups(withExperience)
	for _, group := range scored {
		for i := range group.Skills {
			record := &group.Skills[i]

			years := 0.0
			if record.YearsExperience != nil {
				years = *record.YearsExperience
			}

			score := baseProficiency(years)
			score += math.Min(5, float64(len(record.Mentions)))
			score += contextAdjustment(record.SkillName, resumeText)

			score = math.Max(0, math.Min(100, score))
			record.Proficiency = floatPtr(math.Round(score*10) / 10)
		}
	}
	return scored
}

// baseProficiency maps years of experience onto a 0-100 curve with
// diminishing returns past the 1, 2, 5 and 10 year breakpoints.
func baseProficiency(years float64) float64 {
	switch {
	case years <= 0:
		return 0
	case years < 1:
		return 30 * years
	case years < 2:
		return 30 + (years-1)*30
	case years < 5:
		return 60 + (years-2)*6.67
	case years < 10:
		return 80 + (years-5)*3
	default:
		return 95
	}
}

// contextAdjustment searches for a proficiency cue within 50 characters
// of the skill name, in either order.
func contextAdjustment(skillName, resumeText string) float64 {
	skill := regexp.QuoteMeta(skillName)
	for _, indicator := range proficiencyIndicators {
		cue := regexp.QuoteMeta(indicator.Cue)
		pattern := regexp.MustCompile(
			`(?i)\b` + cue + `\b.{0,50}\b` + skill + `\b|\b` + skill + `\b.{0,50}\b` + cue + `\b`)
		if pattern.MatchString(resumeText) {
			return indicator.Adjustment
		}
	}
	return 0
}

// cloneGroups deep copies stage output so later stages can annotate
// records without mutating their input.
func cloneGroups(groups []categoryGroup) []categoryGroup {
	cloned := make([]categoryGroup, len(groups))
	for i, group := range groups {
		records := make([]skillRecord, len(group.Skills))
		for j, record := range group.Skills {
			records[j] = skillRecord{
				SkillName:       record.SkillName,
				YearsExperience: cloneFloat(record.YearsExperience),
				Mentions:        cloneStrings(record.Mentions),
				Proficiency:     cloneFloat(record.Proficiency),
			}
		}
		cloned[i] = categoryGroup{Category: group.Category, Skills: records}
	}
	return cloned
}

func cloneFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	return floatPtr(*value)
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}
