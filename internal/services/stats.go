package services

import (
	"math"

	"github.com/justsurfingit/job-agent/internal/models"
)

// ComputeStats recounts everything from apps. An empty list gives a NaN success rate.
func ComputeStats(totalJobs int, apps []models.Application) models.Stats {
	stats := models.Stats{TotalJobs: totalJobs}
	for _, app := range apps {
		switch app.Status {
		case models.StatusSuccess:
			stats.Applied++
		case models.StatusPending:
			stats.Pending++
		}
	}
	if len(apps) == 0 {
		stats.SuccessRate = math.NaN()
		return stats
	}
	stats.SuccessRate = float64(stats.Applied) / float64(len(apps)) * 100
	return stats
}

// RecentApplications returns at most the first n applications.
func RecentApplications(apps []models.Application, n int) []models.Application {
	return firstN(apps, n)
}
