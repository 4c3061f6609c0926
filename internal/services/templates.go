package services

import (
	"fmt"
	"strings"

	"github.com/justsurfingit/job-agent/internal/models"
)

const coverLetterTemplate = `Dear Hiring Manager,

I am excited to apply for the %s position at %s. With my background in %s, I am confident I can contribute significantly to your team.

My experience includes:
%s

I am particularly drawn to %s because of your innovative approach to technology and commitment to excellence. The opportunity to work on %s aligns perfectly with my career goals and technical expertise.

Thank you for considering my application. I look forward to discussing how I can contribute to your team's success.

Best regards,
%s`

const resumeCustomizationTemplate = `Customization suggestions for %s at %s:

• Emphasize skills: %s
• Highlight relevant experience from your background
• Include keywords: %s
• Focus on achievements that demonstrate problem-solving and technical expertise`

// GenerateCoverLetter fills the cover letter template from the profile and job.
func GenerateCoverLetter(p models.Profile, job models.Job) string {
	experience := make([]string, 0, 2)
	for _, exp := range firstN(p.Experience, 2) {
		experience = append(experience, fmt.Sprintf("• %s at %s: %s", exp.Title, exp.Company, exp.Description))
	}
	return fmt.Sprintf(coverLetterTemplate,
		job.Title,
		job.Company,
		strings.Join(firstN(p.Skills, 3), ", "),
		strings.Join(experience, "\n"),
		job.Company,
		strings.ToLower(job.Description),
		p.Name,
	)
}

// GenerateResumeCustomization lists the first three requirement tokens as-is; they keep any leading space.
func GenerateResumeCustomization(job models.Job) string {
	return fmt.Sprintf(resumeCustomizationTemplate,
		job.Title,
		job.Company,
		strings.Join(firstN(strings.Split(job.Requirements, ","), 3), ", "),
		strings.ToLower(job.Requirements),
	)
}

func firstN[T any](s []T, n int) []T {
	if len(s) < n {
		return s
	}
	return s[:n]
}
