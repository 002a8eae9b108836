package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/harmony/internal/advisor"
	"github.com/Veraticus/harmony/internal/aggregate"
	"github.com/Veraticus/harmony/internal/content"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/pattern"
	"github.com/Veraticus/harmony/internal/tracker"
)

const (
	studentKey = "harmony.student"
	profileKey = "harmony.profile"

	upcomingTaskLimit = 5
)

func (s *Server) healthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) listStudents(c *gin.Context) {
	ids, err := s.profiles.List(c.Request.Context())
	if err != nil {
		s.respondStoreError(c, "list students", err)
		return
	}
	RespondOK(c, gin.H{"students": ids})
}

// loadStudent binds the student session for every per-student route.
func (s *Server) loadStudent(c *gin.Context) {
	id := c.Param("student")
	opts := []tracker.Option{tracker.WithClock(s.deps.Now)}
	if s.deps.Recommender != nil {
		opts = append(opts, tracker.WithChangeHook(s.deps.Recommender.Invalidate))
	}
	st, err := tracker.New(s.deps.Store, id, opts...)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}

	profile, found, err := s.profiles.Load(c.Request.Context(), id)
	if err != nil {
		s.respondStoreError(c, "load profile", err)
		return
	}
	if !found {
		RespondError(c, http.StatusNotFound, "student_not_found", errors.New("student not found"))
		return
	}

	c.Set(studentKey, st)
	c.Set(profileKey, profile)
	c.Next()
}

func student(c *gin.Context) (*tracker.Student, model.Profile) {
	return c.MustGet(studentKey).(*tracker.Student), c.MustGet(profileKey).(model.Profile)
}

type academicSummary struct {
	UpcomingTasks []model.Task `json:"upcoming_tasks"`
	CGPA          float64      `json:"cgpa"`
	CGPAGoal      float64      `json:"cgpa_goal"`
}

type wellnessSummary struct {
	StressFactors []aggregate.FactorCount `json:"stress_factors"`
	Score         float64                 `json:"score"`
}

type careerSummary struct {
	Readiness float64 `json:"readiness"`
}

type dashboardResponse struct {
	Profile         model.Profile              `json:"profile"`
	Recommendations []model.Recommendation     `json:"recommendations"`
	Academic        academicSummary            `json:"academic"`
	Financial       aggregate.FinancialSummary `json:"financial"`
	Wellness        wellnessSummary            `json:"wellness"`
	Career          careerSummary              `json:"career"`
}

func (s *Server) dashboard(c *gin.Context) {
	st, profile := student(c)
	resp := dashboardResponse{Profile: profile}

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		if resp.Academic.CGPA, err = st.Academic.CurrentCGPA(ctx); err != nil {
			return err
		}
		if resp.Academic.CGPAGoal, err = st.Academic.CGPAGoal(ctx); err != nil {
			return err
		}
		resp.Academic.UpcomingTasks, err = st.Academic.UpcomingTasks(ctx, upcomingTaskLimit)
		return err
	})
	g.Go(func() error {
		var err error
		resp.Financial, err = st.Finance.Summary(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		if resp.Wellness.Score, err = st.Wellness.Score(ctx); err != nil {
			return err
		}
		resp.Wellness.StressFactors, err = st.Wellness.StressFactors(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		resp.Career.Readiness, err = st.Career.Readiness(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.respondStoreError(c, "dashboard", err)
		return
	}

	resp.Recommendations = s.recommend(c, st.ID)
	RespondOK(c, resp)
}

func (s *Server) recommend(c *gin.Context, id string) []model.Recommendation {
	if s.deps.Recommender == nil {
		return []model.Recommendation{}
	}
	return s.deps.Recommender.Recommend(c.Request.Context(), id)
}

func (s *Server) recommendations(c *gin.Context) {
	st, _ := student(c)
	RespondOK(c, gin.H{"recommendations": s.recommend(c, st.ID)})
}

func (s *Server) content(c *gin.Context) {
	st, profile := student(c)
	if s.deps.Content == nil {
		RespondError(c, http.StatusServiceUnavailable, "content_unavailable", errors.New("content is not enabled"))
		return
	}

	kind := model.ContentKind(c.Param("kind"))
	if kind == "news" {
		kind = model.NewsKind(c.Query("topic"))
	}
	fields, ok := content.Fields(kind)
	if !ok {
		RespondError(c, http.StatusNotFound, "unknown_kind", errors.New("unknown content kind"))
		return
	}

	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))
	cache := s.deps.Content.For(st.ID)
	items := cache.Get(c.Request.Context(), kind, content.ContextFromProfile(profile), force)

	resp := gin.H{"kind": kind, "fields": fields, "items": items}
	if cached, ok := cache.Peek(c.Request.Context(), kind); ok {
		resp["last_updated"] = cached.LastUpdated
	}
	RespondOK(c, resp)
}

func (s *Server) resources(c *gin.Context) {
	st, profile := student(c)
	query := c.Query("q")

	var items []model.Item
	if s.deps.Resources != nil {
		items = s.deps.Resources.Find(c.Request.Context(), query, content.ContextFromProfile(profile))
	} else {
		items = st.Resources.ForSubject(query)
	}
	RespondOK(c, gin.H{"query": query, "items": items})
}

type adviceRequest struct {
	Question string `json:"question" binding:"required"`
	Domain   string `json:"domain"`
}

func (s *Server) advice(c *gin.Context) {
	_, profile := student(c)
	var req adviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	var domain advisor.Domain
	if req.Domain != "" {
		d, err := advisor.ParseDomain(req.Domain)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "unknown_domain", err)
			return
		}
		domain = d
	}

	adv := s.deps.Advisor
	if adv == nil {
		adv = advisor.New(nil, s.logger)
	}
	answer, err := adv.Advise(c.Request.Context(), req.Question, domain, advisor.StudentContext(profile))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	RespondOK(c, answer)
}

type transactionRequest struct {
	Date        model.Date `json:"date"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount" binding:"required"`
}

func (s *Server) addTransaction(c *gin.Context) {
	st, _ := student(c)
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	txns := []model.Transaction{{
		Date:        req.Date,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
	}}
	pattern.Default().Categorize(txns)
	tx, err := st.Finance.AddTransaction(c.Request.Context(), txns[0])
	if err != nil {
		s.respondStoreError(c, "add transaction", err)
		return
	}
	RespondCreated(c, tx)
}

type moodRequest struct {
	Date          model.Date `json:"date"`
	SleepHours    *float64   `json:"sleep_hours"`
	Notes         string     `json:"notes"`
	StressFactors []string   `json:"stress_factors"`
	Score         int        `json:"score" binding:"required,min=1,max=10"`
}

func (s *Server) logMood(c *gin.Context) {
	st, _ := student(c)
	var req moodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	entry, err := st.Wellness.LogMood(c.Request.Context(), model.MoodEntry{
		Date:          req.Date,
		SleepHours:    req.SleepHours,
		Notes:         req.Notes,
		StressFactors: req.StressFactors,
		Score:         req.Score,
	})
	if err != nil {
		s.respondStoreError(c, "log mood", err)
		return
	}
	RespondCreated(c, entry)
}

type semesterRequest struct {
	Semester      string  `json:"semester" binding:"required"`
	SemesterIndex int     `json:"semester_index" binding:"required,min=1"`
	SGPA          float64 `json:"sgpa" binding:"min=0,max=10"`
	Credits       int     `json:"credits" binding:"required,min=1"`
}

func (s *Server) addSemester(c *gin.Context) {
	st, _ := student(c)
	var req semesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sem, err := st.Academic.AddSemester(c.Request.Context(), req.Semester, req.SemesterIndex, req.SGPA, req.Credits)
	if err != nil {
		s.respondStoreError(c, "add semester", err)
		return
	}
	RespondCreated(c, sem)
}
