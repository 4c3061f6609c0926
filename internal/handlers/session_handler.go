package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-agent/internal/dtos"
	"github.com/justsurfingit/job-agent/internal/models"
	"github.com/justsurfingit/job-agent/internal/services"
)

const (
	recentApplications = 5
	recentEvents       = 50
)

// SessionHandler serves everything a page view does: profile edits, search params, runs and results.
type SessionHandler struct {
	Sessions *services.SessionService
	Pipeline *services.PipelineService
	Journal  services.Journal
}

func NewSessionHandler(sessions *services.SessionService, pipeline *services.PipelineService, journal services.Journal) *SessionHandler {
	if journal == nil {
		journal = services.NopJournal{}
	}
	return &SessionHandler{
		Sessions: sessions,
		Pipeline: pipeline,
		Journal:  journal,
	}
}

func (h *SessionHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/sessions", h.CreateSession)

	s := r.Group("/sessions/:id")
	s.DELETE("", h.DeleteSession)
	s.GET("/profile", h.GetProfile)
	s.PUT("/profile", h.ReplaceProfile)
	s.POST("/profile/skills", h.AddSkill)
	s.DELETE("/profile/skills/*skill", h.RemoveSkill)
	s.POST("/profile/experience", h.AddExperience)
	s.PATCH("/profile/experience/:index", h.UpdateExperience)
	s.POST("/profile/education", h.AddEducation)
	s.PATCH("/profile/education/:index", h.UpdateEducation)
	s.GET("/search", h.GetSearchParams)
	s.PUT("/search", h.ReplaceSearchParams)
	s.POST("/runs", h.StartRun)
	s.GET("/status", h.Status)
	s.GET("/jobs", h.ListJobs)
	s.GET("/applications", h.ListApplications)
	s.GET("/stats", h.Stats)
	s.GET("/events", h.ListEvents)
}

func (h *SessionHandler) session(c *gin.Context) (*services.Session, bool) {
	sess, err := h.Sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	c.Set("sessionId", sess.ID)
	return sess, true
}

func (h *SessionHandler) CreateSession(c *gin.Context) {
	sess := h.Sessions.Create()
	c.JSON(http.StatusCreated, dtos.SessionResponse{ID: sess.ID})
}

func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.Sessions.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) GetProfile(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Profile())
}

func (h *SessionHandler) ReplaceProfile(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req models.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	sess.ReplaceProfile(req)
	c.JSON(http.StatusOK, sess.Profile())
}

func (h *SessionHandler) AddSkill(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req dtos.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	profile, _ := sess.EditProfile(func(p *models.Profile) error {
		services.AddSkill(p, req.Skill)
		return nil
	})
	c.JSON(http.StatusOK, profile)
}

func (h *SessionHandler) RemoveSkill(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	skill := strings.TrimPrefix(c.Param("skill"), "/")
	profile, _ := sess.EditProfile(func(p *models.Profile) error {
		services.RemoveSkill(p, skill)
		return nil
	})
	c.JSON(http.StatusOK, profile)
}

func (h *SessionHandler) AddExperience(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var index int
	_, _ = sess.EditProfile(func(p *models.Profile) error {
		index = services.AddExperience(p)
		return nil
	})
	c.JSON(http.StatusCreated, dtos.IndexResponse{Index: index})
}

func (h *SessionHandler) UpdateExperience(c *gin.Context) {
	h.updateEntry(c, services.UpdateExperience)
}

func (h *SessionHandler) AddEducation(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var index int
	_, _ = sess.EditProfile(func(p *models.Profile) error {
		index = services.AddEducation(p)
		return nil
	})
	c.JSON(http.StatusCreated, dtos.IndexResponse{Index: index})
}

func (h *SessionHandler) UpdateEducation(c *gin.Context) {
	h.updateEntry(c, services.UpdateEducation)
}

func (h *SessionHandler) updateEntry(c *gin.Context, update func(*models.Profile, int, string, string) error) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_index", "index must be an integer")
		return
	}
	var req dtos.FieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	profile, err := sess.EditProfile(func(p *models.Profile) error {
		return update(p, index, req.Field, req.Value)
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *SessionHandler) GetSearchParams(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Params())
}

func (h *SessionHandler) ReplaceSearchParams(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req dtos.SearchParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	sess.ReplaceParams(req.ToModel())
	c.JSON(http.StatusOK, sess.Params())
}

func (h *SessionHandler) StartRun(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	runID, err := h.Pipeline.Start(sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Set("runId", runID)
	c.JSON(http.StatusAccepted, dtos.RunResponse{SessionID: sess.ID, RunID: runID})
}

func (h *SessionHandler) Status(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	view := sess.View()
	c.JSON(http.StatusOK, dtos.StatusResponse{Running: view.Running, CanRun: view.CanRun})
}

func (h *SessionHandler) ListJobs(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	view := sess.View()
	out := make([]dtos.JobView, 0, len(view.Jobs))
	for _, job := range view.Jobs {
		out = append(out, dtos.JobView{Job: job, MatchBand: services.MatchBand(job.MatchScore)})
	}
	c.JSON(http.StatusOK, out)
}

func (h *SessionHandler) ListApplications(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, applicationViews(sess.View().Applications))
}

func (h *SessionHandler) Stats(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	view := sess.View()
	c.JSON(http.StatusOK, dtos.StatsResponse{
		Stats:  view.Stats,
		Recent: applicationViews(services.RecentApplications(view.Applications, recentApplications)),
	})
}

func (h *SessionHandler) ListEvents(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	events, err := h.Journal.Recent(c.Request.Context(), sess.ID, recentEvents)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func applicationViews(apps []models.Application) []dtos.ApplicationView {
	out := make([]dtos.ApplicationView, 0, len(apps))
	for _, app := range apps {
		out = append(out, dtos.ApplicationView{
			Application: app,
			MatchBand:   services.MatchBand(app.MatchScore),
			StatusLabel: app.StatusLabel(),
		})
	}
	return out
}
