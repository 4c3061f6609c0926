package services

import (
	"fmt"

	"github.com/justsurfingit/job-agent/internal/models"
)

// AddSkill appends skill unless it is empty or already present.
func AddSkill(p *models.Profile, skill string) bool {
	if skill == "" {
		return false
	}
	for _, s := range p.Skills {
		if s == skill {
			return false
		}
	}
	p.Skills = append(p.Skills, skill)
	return true
}

// RemoveSkill drops every entry equal to skill and keeps the rest in order.
func RemoveSkill(p *models.Profile, skill string) int {
	kept := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		if s != skill {
			kept = append(kept, s)
		}
	}
	removed := len(p.Skills) - len(kept)
	p.Skills = kept
	return removed
}

// AddExperience appends an empty entry and returns its index.
func AddExperience(p *models.Profile) int {
	p.Experience = append(p.Experience, models.Experience{})
	return len(p.Experience) - 1
}

func UpdateExperience(p *models.Profile, index int, field, value string) error {
	if index < 0 || index >= len(p.Experience) {
		return fmt.Errorf("experience %d: %w", index, ErrIndexOutOfRange)
	}
	exp := &p.Experience[index]
	switch field {
	case "title":
		exp.Title = value
	case "company":
		exp.Company = value
	case "duration":
		exp.Duration = value
	case "description":
		exp.Description = value
	default:
		return fmt.Errorf("experience field %q: %w", field, ErrUnknownField)
	}
	return nil
}

func AddEducation(p *models.Profile) int {
	p.Education = append(p.Education, models.Education{})
	return len(p.Education) - 1
}

func UpdateEducation(p *models.Profile, index int, field, value string) error {
	if index < 0 || index >= len(p.Education) {
		return fmt.Errorf("education %d: %w", index, ErrIndexOutOfRange)
	}
	edu := &p.Education[index]
	switch field {
	case "school":
		edu.School = value
	case "degree":
		edu.Degree = value
	case "field":
		edu.Field = value
	case "duration":
		edu.Duration = value
	default:
		return fmt.Errorf("education field %q: %w", field, ErrUnknownField)
	}
	return nil
}

// CanRun reports whether the run trigger is enabled.
func CanRun(p models.Profile, params models.SearchParams) bool {
	return p.Name != "" && params.Keywords != ""
}
