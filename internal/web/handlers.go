package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/taskring/internal/domain"
	"github.com/runoshun/taskring/internal/usecase"
)

const dateLayout = "2006-01-02"

type addTaskRequest struct {
	Start      time.Time `json:"start"`
	CategoryID string    `json:"categoryId" binding:"required"`
	Title      string    `json:"title"`
	Duration   string    `json:"duration"`
}

type editTaskRequest struct {
	Start      *time.Time `json:"start"`
	End        *time.Time `json:"end"`
	Title      *string    `json:"title"`
	CategoryID *string    `json:"categoryId"`
	Force      bool       `json:"force"`
}

type completeTaskRequest struct {
	Completed *bool `json:"completed"`
}

type dayResponse struct {
	Tasks     []domain.Task `json:"tasks"`
	Date      string        `json:"date"`
	Planned   string        `json:"planned"`
	Done      string        `json:"done"`
	Completed int           `json:"completed"`
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, badRequest("invalid_duration", "duration must look like 45m or 1h30m")
	}
	return d, nil
}

func (s *Server) listCategories(c *gin.Context) {
	cats, err := s.c.Categories.Categories()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (s *Server) listTasks(c *gin.Context) {
	day, err := time.ParseInLocation(dateLayout, c.Param("date"), time.Local)
	if err != nil {
		writeError(c, badRequest("invalid_date", "date must be YYYY-MM-DD"))
		return
	}
	hideDone, _ := strconv.ParseBool(c.Query("hideDone"))

	s.mu.Lock()
	out, err := s.c.ListTasksUseCase().Execute(c.Request.Context(), usecase.ListTasksInput{
		Day:           day,
		HideCompleted: hideDone,
	})
	s.mu.Unlock()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dayResponse{
		Tasks:     out.Tasks,
		Date:      day.Format(dateLayout),
		Planned:   out.Planned.String(),
		Done:      out.Done.String(),
		Completed: out.Completed,
	})
}

func (s *Server) findSlot(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		writeError(c, badRequest("invalid_start", "start must be RFC 3339"))
		return
	}
	d, err := parseDuration(c.Query("duration"))
	if err != nil {
		writeError(c, err)
		return
	}

	s.mu.Lock()
	out, err := s.c.FindSlotUseCase().Execute(c.Request.Context(), usecase.FindSlotInput{
		Start:      start,
		CategoryID: c.Query("category"),
		Duration:   d,
	})
	s.mu.Unlock()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"start":     out.Start,
		"end":       out.End,
		"moved":     out.Moved,
		"exhausted": out.Exhausted,
	})
}

func (s *Server) addTask(c *gin.Context) {
	var req addTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, badRequest("invalid_json", "invalid request body"))
		return
	}
	if req.Start.IsZero() {
		writeError(c, badRequest("invalid_start", "start is required"))
		return
	}
	d, err := parseDuration(req.Duration)
	if err != nil {
		writeError(c, err)
		return
	}

	s.mu.Lock()
	out, err := s.c.AddTaskUseCase().Execute(c.Request.Context(), usecase.AddTaskInput{
		Start:      req.Start,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Duration:   d,
	})
	s.mu.Unlock()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"task":     out.Task,
		"moved":    out.Moved,
		"conflict": out.Conflict,
	})
}

func (s *Server) editTask(c *gin.Context) {
	var req editTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, badRequest("invalid_json", "invalid request body"))
		return
	}

	out, err := s.c.EditTaskUseCase().Execute(c.Request.Context(), usecase.EditTaskInput{
		TaskID:     c.Param("id"),
		Start:      req.Start,
		End:        req.End,
		Title:      req.Title,
		CategoryID: req.CategoryID,
		Force:      req.Force,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": out.Task})
}

func (s *Server) deleteTask(c *gin.Context) {
	if _, err := s.c.DeleteTaskUseCase().Execute(c.Request.Context(), usecase.DeleteTaskInput{
		TaskID: c.Param("id"),
	}); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) completeTask(c *gin.Context) {
	var req completeTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, badRequest("invalid_json", "invalid request body"))
			return
		}
	}

	out, err := s.c.CompleteTaskUseCase().Execute(c.Request.Context(), usecase.CompleteTaskInput{
		TaskID:    c.Param("id"),
		Completed: req.Completed,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": out.Task})
}
