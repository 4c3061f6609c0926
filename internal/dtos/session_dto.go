package dtos

import (
	"github.com/justsurfingit/job-agent/internal/models"
)

type SkillRequest struct {
	Skill string `json:"skill" binding:"required"`
}

// FieldUpdateRequest edits a single field of an experience or education entry.
type FieldUpdateRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type SearchParamsRequest struct {
	Keywords        string `json:"keywords"`
	Location        string `json:"location"`
	MaxApplications *int   `json:"max_applications"`
	AutoSubmit      bool   `json:"auto_submit"`
}

// ToModel fills in the default application cap when it was left out.
func (r SearchParamsRequest) ToModel() models.SearchParams {
	params := models.DefaultSearchParams()
	params.Keywords = r.Keywords
	params.Location = r.Location
	params.AutoSubmit = r.AutoSubmit
	if r.MaxApplications != nil {
		params.MaxApplications = *r.MaxApplications
	}
	return params
}

type SessionResponse struct {
	ID string `json:"id"`
}

type IndexResponse struct {
	Index int `json:"index"`
}

type RunResponse struct {
	SessionID string `json:"session_id"`
	RunID     string `json:"run_id"`
}

type StatusResponse struct {
	Running bool `json:"running"`
	CanRun  bool `json:"can_run"`
}

type JobView struct {
	models.Job
	MatchBand string `json:"match_band"`
}

type ApplicationView struct {
	models.Application
	MatchBand   string `json:"match_band"`
	StatusLabel string `json:"status_label"`
}

type StatsResponse struct {
	Stats  models.Stats      `json:"stats"`
	Recent []ApplicationView `json:"recent"`
}
