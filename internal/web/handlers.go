package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandeepkv93/goaltrack/internal/ai"
	"github.com/sandeepkv93/goaltrack/internal/model"
	"github.com/sandeepkv93/goaltrack/internal/state"
)

const maxTextSize = 4 << 10 // 4KB

type addTaskRequest struct {
	Text string `json:"text"`
}

type addGoalRequest struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

type reviewRequest struct {
	Reflection string `json:"reflection"`
}

func (s *Server) handleState(c *gin.Context) {
	s.ok(c, http.StatusOK, s.tracker.Snapshot())
}

func (s *Server) handleWeekly(c *gin.Context) {
	s.ok(c, http.StatusOK, s.tracker.Weekly())
}

func (s *Server) handleAddTask(c *gin.Context) {
	var req addTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if len(req.Text) > maxTextSize {
		s.fail(c, http.StatusBadRequest, errors.New("text exceeds maximum size of 4KB"))
		return
	}
	task, err := s.tracker.AddTask(req.Text)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	s.ok(c, http.StatusCreated, task)
}

func (s *Server) handleToggleTask(c *gin.Context) {
	task, err := s.tracker.ToggleTask(c.Param("id"))
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	s.ok(c, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.tracker.DeleteTask(c.Param("id")); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	s.ok(c, http.StatusOK, gin.H{"message": "Task deleted"})
}

func (s *Server) handleAddGoal(c *gin.Context) {
	var req addGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if len(req.Title) > maxTextSize {
		s.fail(c, http.StatusBadRequest, errors.New("title exceeds maximum size of 4KB"))
		return
	}
	goal, err := s.tracker.AddGoal(c.Request.Context(), req.Title, model.GoalType(req.Type))
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	s.ok(c, http.StatusCreated, goal)
}

func (s *Server) handleDeleteGoal(c *gin.Context) {
	if err := s.tracker.DeleteGoal(c.Param("id")); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	s.ok(c, http.StatusOK, gin.H{"message": "Goal deleted"})
}

func (s *Server) handleSettings(c *gin.Context) {
	var patch state.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	settings, err := s.tracker.UpdateNotificationSettings(c.Request.Context(), patch)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"success": false,
			"error":   err.Error(),
			"data":    settings,
			"toasts":  s.tracker.Toasts().Drain(),
		})
		return
	}
	s.ok(c, http.StatusOK, settings)
}

func (s *Server) handleMarkRead(c *gin.Context) {
	n := s.tracker.MarkNotificationsRead()
	s.ok(c, http.StatusOK, gin.H{"marked": n})
}

func (s *Server) handleReset(c *gin.Context) {
	s.tracker.ResetAll()
	s.ok(c, http.StatusOK, s.tracker.Snapshot())
}

func (s *Server) handleOnboarding(c *gin.Context) {
	s.tracker.CompleteOnboarding()
	s.ok(c, http.StatusOK, gin.H{"onboarded": true})
}

func (s *Server) handleReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if len(req.Reflection) > maxTextSize {
		s.fail(c, http.StatusBadRequest, errors.New("reflection exceeds maximum size of 4KB"))
		return
	}
	out, err := s.tracker.WeeklyReview(c.Request.Context(), req.Reflection)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	s.ok(c, http.StatusOK, out)
}

func (s *Server) ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
		"toasts":  s.tracker.Toasts().Drain(),
	})
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Printf("web: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
		"toasts":  s.tracker.Toasts().Drain(),
	})
}

func statusFor(err error) int {
	var vErr *ai.ValidationError
	var extErr *state.ExternalError
	switch {
	case errors.As(err, &vErr),
		errors.Is(err, state.ErrEmptyTask),
		errors.Is(err, state.ErrEmptyGoalTitle),
		errors.Is(err, model.ErrInvalidGoalType):
		return http.StatusBadRequest
	case errors.Is(err, state.ErrTaskNotFound), errors.Is(err, state.ErrGoalNotFound):
		return http.StatusNotFound
	case errors.Is(err, state.ErrGoalPending):
		return http.StatusConflict
	case errors.Is(err, state.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.As(err, &extErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
