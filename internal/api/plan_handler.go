package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"runbuddy/coach-app/internal/domain"
	"runbuddy/coach-app/internal/plan"
	"runbuddy/coach-app/internal/repository"
	"runbuddy/coach-app/internal/service"
)

// PlanHandler serves the weekly training plan endpoints.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request/Response Structs ---

// DayResponse is one renderable day card: activities plus the completion key
// the UI toggles with.
type DayResponse struct {
	Day        string   `json:"day"`
	Activities []string `json:"activities"`
	Key        string   `json:"key"`
	Completed  bool     `json:"completed"`
}

type ProgressResponse struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// PlanResponse carries both the raw plan text and its parsed form. When
// FallbackOnly is true nothing day-shaped was found in the text and the UI
// may prefer to render PlanText as-is instead of the day cards.
type PlanResponse struct {
	PlanText         string           `json:"planText"`
	GeneratedByModel bool             `json:"generatedByModel"`
	CreatedAt        time.Time        `json:"createdAt"`
	FallbackOnly     bool             `json:"fallbackOnly"`
	Days             []DayResponse    `json:"days"`
	Progress         ProgressResponse `json:"progress"`
}

type ToggleDayRequest struct {
	DayKey string `json:"dayKey" binding:"required"`
}

// ToggleDayResponse returns the persisted completion state so the client can
// reconcile its checkboxes with what was actually saved.
type ToggleDayResponse struct {
	CompletedDays []string         `json:"completedDays"`
	Progress      ProgressResponse `json:"progress"`
}

// --- Handler Methods ---

// GetPlan godoc
// @Summary Get the current weekly plan, parsed into day cards
// @Tags Plan
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PlanResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "No plan generated yet"
// @Router /plan [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	record, err := h.planService.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "No training plan found. Complete onboarding to get your personalized plan!")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load training plan")
		}
		return
	}

	c.JSON(http.StatusOK, MapPlanToResponse(record))
}

// GeneratePlan godoc
// @Summary Generate (or regenerate) the weekly plan
// @Description Replaces the current plan wholesale. Completion progress is reset.
// @Tags Plan
// @Produce json
// @Security BearerAuth
// @Success 201 {object} PlanResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 409 {object} gin.H "Onboarding not completed"
// @Failure 500 {object} gin.H "Could not save the plan"
// @Router /plan/generate [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	record, err := h.planService.GenerateWeeklyPlan(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileRequired) {
			abortWithError(c, http.StatusConflict, "Complete onboarding before generating a plan")
		} else if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found")
		} else {
			// Generation failures never reach here (the service falls back);
			// this is a persistence problem.
			abortWithError(c, http.StatusInternalServerError, "Your plan was generated but could not be saved")
		}
		return
	}

	c.JSON(http.StatusCreated, MapPlanToResponse(record))
}

// ToggleDay godoc
// @Summary Toggle one day's completion checkbox
// @Description Persists immediately. On failure the previous state is still the saved truth and the client should roll back.
// @Tags Plan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param toggle body ToggleDayRequest true "Day key, e.g. Monday-0"
// @Success 200 {object} ToggleDayResponse
// @Failure 400 {object} gin.H "Unknown day key"
// @Failure 404 {object} gin.H "No plan to toggle against"
// @Failure 500 {object} gin.H "Could not save your progress"
// @Router /plan/toggle [post]
func (h *PlanHandler) ToggleDay(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ToggleDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	updated, err := h.planService.ToggleDay(c.Request.Context(), userID, req.DayKey)
	if err != nil {
		if errors.Is(err, service.ErrUnknownDayKey) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "No training plan found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not save your progress")
		}
		return
	}

	record, err := h.planService.Get(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Progress saved but reload failed")
		return
	}
	done, total := plan.Progress(updated, plan.Parse(record.PlanText))
	c.JSON(http.StatusOK, ToggleDayResponse{
		CompletedDays: updated,
		Progress:      ProgressResponse{Done: done, Total: total},
	})
}

// MapPlanToResponse parses the stored text and assembles the renderable view.
func MapPlanToResponse(record *domain.PlanRecord) PlanResponse {
	parsed := plan.Parse(record.PlanText)
	done, total := plan.Progress(record.CompletedDays, parsed)

	days := make([]DayResponse, len(parsed))
	for i, d := range parsed {
		key := plan.DayKey(d.Day, i)
		days[i] = DayResponse{
			Day:        string(d.Day),
			Activities: d.Activities,
			Key:        key,
			Completed:  plan.Contains(record.CompletedDays, key),
		}
	}

	return PlanResponse{
		PlanText:         record.PlanText,
		GeneratedByModel: record.GeneratedByModel,
		CreatedAt:        record.CreatedAt,
		FallbackOnly:     parsed.FallbackOnly(),
		Days:             days,
		Progress:         ProgressResponse{Done: done, Total: total},
	}
}
