package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/bible"
	"github.com/selahapp/selah/internal/database/plansstore"
	"github.com/selahapp/selah/internal/entities"
	"github.com/selahapp/selah/internal/plans"
)

// MaxPlanDurationDays caps how long a single reading plan can run.
const MaxPlanDurationDays = 3650

// PlansStore defines database operations for reading plan management.
type PlansStore interface {
	Create(plan *entities.ReadingPlan) error
	GetByID(userID, id uint) (*entities.ReadingPlan, error)
	List(userID uint, status entities.PlanStatus) ([]entities.ReadingPlan, error)
	CompleteDay(userID, planID uint, dayNumber int, at time.Time) (*entities.ReadingPlan, error)
	Delete(userID, id uint) error
}

type PlansController struct {
	store PlansStore
}

func NewPlansController(store PlansStore) *PlansController {
	return &PlansController{store: store}
}

type createPlanRequest struct {
	Name           string `json:"name" binding:"required"`
	StartBook      string `json:"startBook" binding:"required"`
	StartChapter   int    `json:"startChapter"`
	EndBook        string `json:"endBook" binding:"required"`
	EndChapter     int    `json:"endChapter"`
	StartDate      string `json:"startDate"`
	DurationInDays int    `json:"durationInDays" binding:"required"`
}

type completeDayRequest struct {
	DayNumber int `json:"dayNumber" binding:"required"`
}

// Create builds and stores a reading plan with its full schedule.
// POST /api/plans
func (pc *PlansController) Create(c *gin.Context) {
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name, startBook, endBook and durationInDays are required")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondBadRequest(c, "name must not be empty")
		return
	}
	if req.DurationInDays < 1 || req.DurationInDays > MaxPlanDurationDays {
		respondBadRequest(c, "durationInDays must be between 1 and 3650")
		return
	}

	if req.StartChapter == 0 {
		req.StartChapter = 1
	}
	if err := bible.ValidateSpan(req.StartBook, req.StartChapter, req.EndBook, req.EndChapter); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	startDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			respondBadRequest(c, "startDate must be YYYY-MM-DD")
			return
		}
		startDate = parsed
	}

	schedule := plans.DistributeReadings(req.StartBook, req.StartChapter, req.EndBook, req.EndChapter, req.DurationInDays)
	if schedule == nil {
		respondBadRequest(c, "plan span contains no chapters")
		return
	}
	schedule = plans.Schedule(schedule, startDate)

	plan := &entities.ReadingPlan{
		UserID:         GetUserID(c),
		Name:           name,
		StartBook:      req.StartBook,
		StartChapter:   req.StartChapter,
		EndBook:        req.EndBook,
		EndChapter:     req.EndChapter,
		StartDate:      startDate,
		DurationInDays: req.DurationInDays,
		Status:         entities.PlanStatusActive,
		DailyReadings:  schedule,
	}

	if err := pc.store.Create(plan); err != nil {
		respondInternalError(c, err, "create plan")
		return
	}

	respondCreated(c, plan)
}

// List returns the user's plans, optionally filtered by status.
// GET /api/plans
func (pc *PlansController) List(c *gin.Context) {
	status := entities.PlanStatus(c.Query("status"))
	switch status {
	case "", entities.PlanStatusActive, entities.PlanStatusCompleted, entities.PlanStatusPaused:
	default:
		respondBadRequest(c, "unsupported plan status")
		return
	}

	items, err := pc.store.List(GetUserID(c), status)
	if err != nil {
		respondInternalError(c, err, "list plans")
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": items, "count": len(items)})
}

// Get returns a single plan with its schedule.
// GET /api/plans/:id
func (pc *PlansController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	plan, err := pc.store.GetByID(GetUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "plan")
			return
		}
		respondInternalError(c, err, "get plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// CompleteDay marks a scheduled day as done.
// POST /api/plans/:id/complete
func (pc *PlansController) CompleteDay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req completeDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "dayNumber is required")
		return
	}

	plan, err := pc.store.CompleteDay(GetUserID(c), id, req.DayNumber, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondNotFound(c, "plan")
		case errors.Is(err, plansstore.ErrDayOutOfRange):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "complete plan day")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// Delete removes a plan.
// DELETE /api/plans/:id
func (pc *PlansController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := pc.store.Delete(GetUserID(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "plan")
			return
		}
		respondInternalError(c, err, "delete plan")
		return
	}

	respondSuccess(c, "plan deleted")
}
