package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"runbuddy/coach-app/internal/domain"
	"runbuddy/coach-app/internal/service"
)

// RunHandler serves the run log and progress stats endpoints.
type RunHandler struct {
	runService service.RunService
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(runService service.RunService) *RunHandler {
	return &RunHandler{runService: runService}
}

// --- Request/Response Structs ---

type LogRunRequest struct {
	Date     string      `json:"date"` // "2006-01-02"; empty means today
	Distance float64     `json:"distance" binding:"required,gt=0"`
	Duration int         `json:"duration" binding:"required,gt=0"`
	Mood     domain.Mood `json:"mood" binding:"required,oneof=happy tired motivated challenged accomplished"`
}

type RunResponse struct {
	ID       string      `json:"id"`
	Date     string      `json:"date"`
	Distance float64     `json:"distance"`
	Duration int         `json:"duration"`
	Mood     domain.Mood `json:"mood"`
}

// --- Handler Methods ---

// LogRun godoc
// @Summary Log a training run
// @Tags Runs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param run body LogRunRequest true "Run details"
// @Success 201 {object} RunResponse
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /runs [post]
func (h *RunHandler) LogRun(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req LogRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var date time.Time
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Date must be formatted as YYYY-MM-DD")
			return
		}
	}

	run, err := h.runService.LogRun(c.Request.Context(), userID, date, req.Distance, req.Duration, req.Mood)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRun) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to log run")
		}
		return
	}

	c.JSON(http.StatusCreated, mapRunToResponse(run))
}

// GetRuns godoc
// @Summary List recent runs, newest first
// @Tags Runs
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of runs (default 5)"
// @Success 200 {array} RunResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /runs [get]
func (h *RunHandler) GetRuns(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var limit int64
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 0 {
			abortWithError(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
	}

	runs, err := h.runService.RecentRuns(c.Request.Context(), userID, limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load runs")
		return
	}

	out := make([]RunResponse, len(runs))
	for i := range runs {
		out[i] = mapRunToResponse(&runs[i])
	}
	c.JSON(http.StatusOK, out)
}

// GetStats godoc
// @Summary Weekly training volume for the progress chart
// @Tags Runs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.WeekStat
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /runs/stats [get]
func (h *RunHandler) GetStats(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	stats, err := h.runService.WeeklyStats(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func mapRunToResponse(run *domain.Run) RunResponse {
	return RunResponse{
		ID:       run.ID.Hex(),
		Date:     run.Date.Format("2006-01-02"),
		Distance: run.Distance,
		Duration: run.Duration,
		Mood:     run.Mood,
	}
}
