package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sandeepkv93/goaltrack/internal/ai"
	"github.com/sandeepkv93/goaltrack/internal/derive"
	"github.com/sandeepkv93/goaltrack/internal/effects"
	"github.com/sandeepkv93/goaltrack/internal/model"
	"github.com/sandeepkv93/goaltrack/internal/state"
)

const shutdownTimeout = 5 * time.Second

// Tracker is the slice of the state store the API drives.
type Tracker interface {
	Snapshot() state.Snapshot
	Weekly() []derive.DayProgress
	Toasts() *effects.ToastQueue
	ToggleTask(id string) (model.Task, error)
	AddTask(text string) (model.Task, error)
	DeleteTask(id string) error
	AddGoal(ctx context.Context, title string, typ model.GoalType) (model.Goal, error)
	DeleteGoal(id string) error
	UpdateNotificationSettings(ctx context.Context, patch state.SettingsPatch) (model.NotificationSettings, error)
	MarkNotificationsRead() int
	ResetAll()
	CompleteOnboarding()
	WeeklyReview(ctx context.Context, reflection string) (ai.Suggestion, error)
}

// Server is the local JSON API.
type Server struct {
	tracker Tracker
	router  *gin.Engine
	logger  *log.Logger
}

func NewServer(tracker Tracker, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	s := &Server{
		tracker: tracker,
		router:  router,
		logger:  logger,
	}

	api := router.Group("/api")
	{
		api.GET("/state", s.handleState)
		api.GET("/progress/weekly", s.handleWeekly)
		api.POST("/tasks", s.handleAddTask)
		api.POST("/tasks/:id/toggle", s.handleToggleTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.POST("/goals", s.handleAddGoal)
		api.DELETE("/goals/:id", s.handleDeleteGoal)
		api.PUT("/settings", s.handleSettings)
		api.POST("/notifications/read", s.handleMarkRead)
		api.POST("/reset", s.handleReset)
		api.POST("/onboarding", s.handleOnboarding)
		api.POST("/review", s.handleReview)
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("web: listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
