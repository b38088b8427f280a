package skills

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/luillyfe/resume-insights/internal/dates"
	"github.com/luillyfe/resume-insights/internal/observability"
	"github.com/luillyfe/resume-insights/internal/types"
)

// calculateExperienceDuration scans the work history for each skill and
// totals the employment span of every entry whose title or description
// mentions it.
func calculateExperienceDuration(categorized []skillCategory, workHistory []types.WorkHistoryEntry) []categoryGroup {
	defer observability.ObserveStage("calculate_experience_duration", time.Now())

	groups := make([]categoryGroup, 0, len(categorized))
	for _, category := range categorized {
		records := make([]skillRecord, 0, len(category.Skills))
		for _, skillName := range category.Skills {
			records = append(records, attributeExperience(skillName, workHistory))
		}
		groups = append(groups, categoryGroup{Category: category.Category, Skills: records})
	}
	return groups
}

// attributeExperience collects the mentions and total years for one
// skill. Entries whose dates fail to parse are skipped entirely, so a
// match can leave neither a mention nor a duration behind.
func attributeExperience(skillName string, workHistory []types.WorkHistoryEntry) skillRecord {
	record := skillRecord{SkillName: skillName}
	pattern := skillMentionPattern(skillName)

	var total float64
	for _, job := range workHistory {
		if !pattern.MatchString(job.Description) && !pattern.MatchString(job.Title) {
			continue
		}

		start := dates.Parse(job.StartDate)
		end := dates.Parse(orPresent(job.EndDate))
		if start == nil || end == nil {
			continue
		}

		total += dates.YearsBetween(*start, *end)
		record.Mentions = append(record.Mentions,
			fmt.Sprintf("%s at %s (%s to %s)", job.Title, job.Company, job.StartDate, orPresent(job.EndDate)))
	}

	if total > 0 {
		record.YearsExperience = floatPtr(math.Round(total*10) / 10)
	}
	return record
}

// skillMentionPattern matches the skill name case insensitively on a
// leading word boundary, treating internal spaces as flexible spacing.
func skillMentionPattern(skillName string) *regexp.Regexp {
	quoted := strings.ReplaceAll(regexp.QuoteMeta(skillName), " ", `\s*`)
	return regexp.MustCompile(`(?i)\b` + quoted)
}

func orPresent(endDate string) string {
	if endDate == "" {
		return "present"
	}
	return endDate
}

func floatPtr(value float64) *float64 { return &value }
