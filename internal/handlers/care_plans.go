package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"parenting-copilot-server/internal/ai"
	"parenting-copilot-server/internal/models"
	"parenting-copilot-server/internal/store"
	"parenting-copilot-server/internal/utils"
)

// CarePlansHandler handles care plan related requests.
type CarePlansHandler struct {
	Store store.Store
	AI    *ai.Service
}

// NewCarePlansHandler creates a new CarePlansHandler.
func NewCarePlansHandler(s store.Store, aiService *ai.Service) *CarePlansHandler {
	return &CarePlansHandler{Store: s, AI: aiService}
}

// CreateCarePlanRequest represents the request body for creating a care plan.
type CreateCarePlanRequest struct {
	ChildID       string `json:"childId" binding:"required"`
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	SpecificNeeds string `json:"specificNeeds"`
}

// UpdateCarePlanRequest represents a partial care plan update.
type UpdateCarePlanRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Tasks       *models.TaskList `json:"tasks"`
}

// UpdateTaskRequest represents a partial update of one task.
type UpdateTaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
	DueDate   *string `json:"dueDate"`
}

// AddTaskRequest represents the request body for appending a task.
type AddTaskRequest struct {
	Title   string `json:"title" binding:"required"`
	DueDate string `json:"dueDate"`
}

// GetCarePlans handles listing every care plan.
func (h *CarePlansHandler) GetCarePlans(c *gin.Context) {
	plans, err := h.Store.CarePlans().GetAll(c.Request.Context())
	if err != nil {
		log.Printf("care-plans: list failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch care plans")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetCarePlansForChild handles listing plans for one child.
func (h *CarePlansHandler) GetCarePlansForChild(c *gin.Context) {
	plans, err := h.Store.CarePlans().FindByChildID(c.Request.Context(), c.Param("childId"))
	if err != nil {
		log.Printf("care-plans: child list failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch care plans")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetCarePlan handles fetching one plan by id.
func (h *CarePlansHandler) GetCarePlan(c *gin.Context) {
	plan, err := h.Store.CarePlans().FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Care plan not found")
			return
		}
		log.Printf("care-plans: lookup failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch care plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// CreateCarePlan handles creating a plan whose initial tasks come from the
// generated suggestion (fallback content when the model is unavailable).
func (h *CarePlansHandler) CreateCarePlan(c *gin.Context) {
	var req CreateCarePlanRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ctx := c.Request.Context()
	child, err := h.Store.Children().FindByID(ctx, req.ChildID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Child not found")
			return
		}
		log.Printf("care-plans: child lookup failed: %v", err)
		utils.InternalServerError(c, "Failed to create care plan")
		return
	}

	suggestion := h.AI.GenerateCarePlan(ctx, child, req.SpecificNeeds)

	description := req.Description
	if description == "" {
		description = "AI-generated care plan"
	}

	plan := models.CarePlan{
		ChildID:     req.ChildID,
		Title:       req.Title,
		Description: description,
		Tasks:       buildTasks(suggestion, time.Now()),
		AIGenerated: true,
	}
	if err := h.Store.CarePlans().Create(ctx, &plan); err != nil {
		log.Printf("care-plans: create failed: %v", err)
		utils.InternalServerError(c, "Failed to create care plan")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// UpdateCarePlan handles a partial plan update.
func (h *CarePlansHandler) UpdateCarePlan(c *gin.Context) {
	var req UpdateCarePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload")
		return
	}

	updated, err := h.Store.CarePlans().Update(c.Request.Context(), c.Param("id"), func(plan *models.CarePlan) {
		if req.Title != nil {
			plan.Title = *req.Title
		}
		if req.Description != nil {
			plan.Description = *req.Description
		}
		if req.Tasks != nil {
			plan.Tasks = *req.Tasks
		}
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Care plan not found")
			return
		}
		log.Printf("care-plans: update failed: %v", err)
		utils.InternalServerError(c, "Failed to update care plan")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteCarePlan handles removing a care plan.
func (h *CarePlansHandler) DeleteCarePlan(c *gin.Context) {
	existed, err := h.Store.CarePlans().Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("care-plans: delete failed: %v", err)
		utils.InternalServerError(c, "Failed to delete care plan")
		return
	}
	if !existed {
		utils.NotFound(c, "Care plan not found")
		return
	}
	utils.RespondWithMessage(c, "Care plan deleted successfully")
}

// UpdateTask handles a partial update of one task inside a plan. Setting
// completed stamps or clears the completion time.
func (h *CarePlansHandler) UpdateTask(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload")
		return
	}

	taskID := c.Param("taskId")
	found := false
	updated, err := h.Store.CarePlans().Update(c.Request.Context(), c.Param("id"), func(plan *models.CarePlan) {
		for i := range plan.Tasks {
			if plan.Tasks[i].ID != taskID {
				continue
			}
			found = true
			if req.Title != nil {
				plan.Tasks[i].Title = *req.Title
			}
			if req.DueDate != nil {
				plan.Tasks[i].DueDate = *req.DueDate
			}
			if req.Completed != nil {
				plan.Tasks[i].Completed = *req.Completed
				if *req.Completed {
					now := time.Now()
					plan.Tasks[i].CompletedAt = &now
				} else {
					plan.Tasks[i].CompletedAt = nil
				}
			}
			return
		}
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Care plan not found")
			return
		}
		log.Printf("care-plans: task update failed: %v", err)
		utils.InternalServerError(c, "Failed to update task")
		return
	}
	if !found {
		utils.NotFound(c, "Task not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AddTask handles appending a task to a plan.
func (h *CarePlansHandler) AddTask(c *gin.Context) {
	var req AddTaskRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	dueDate := req.DueDate
	if dueDate == "" {
		dueDate = time.Now().Format("2006-01-02")
	}

	task := models.Task{
		ID:      uuid.New().String(),
		Title:   req.Title,
		DueDate: dueDate,
	}

	updated, err := h.Store.CarePlans().Update(c.Request.Context(), c.Param("id"), func(plan *models.CarePlan) {
		plan.Tasks = append(plan.Tasks, task)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Care plan not found")
			return
		}
		log.Printf("care-plans: add task failed: %v", err)
		utils.InternalServerError(c, "Failed to add task")
		return
	}
	c.JSON(http.StatusCreated, updated)
}

// DeleteTask handles removing a task from a plan.
func (h *CarePlansHandler) DeleteTask(c *gin.Context) {
	taskID := c.Param("taskId")
	updated, err := h.Store.CarePlans().Update(c.Request.Context(), c.Param("id"), func(plan *models.CarePlan) {
		kept := plan.Tasks[:0]
		for _, task := range plan.Tasks {
			if task.ID != taskID {
				kept = append(kept, task)
			}
		}
		plan.Tasks = kept
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Care plan not found")
			return
		}
		log.Printf("care-plans: delete task failed: %v", err)
		utils.InternalServerError(c, "Failed to delete task")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RegenerateRequest carries the optional needs for a plan regeneration.
type RegenerateRequest struct {
	SpecificNeeds string `json:"specificNeeds"`
}

// Regenerate handles replacing a plan's tasks with a freshly generated set.
func (h *CarePlansHandler) Regenerate(c *gin.Context) {
	ctx := c.Request.Context()

	plan, err := h.Store.CarePlans().FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Care plan not found")
			return
		}
		log.Printf("care-plans: lookup failed: %v", err)
		utils.InternalServerError(c, "Failed to regenerate care plan")
		return
	}

	child, err := h.Store.Children().FindByID(ctx, plan.ChildID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Child not found")
			return
		}
		log.Printf("care-plans: child lookup failed: %v", err)
		utils.InternalServerError(c, "Failed to regenerate care plan")
		return
	}

	var req RegenerateRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	suggestion := h.AI.GenerateCarePlan(ctx, child, req.SpecificNeeds)
	tasks := buildTasks(suggestion, time.Now())

	updated, err := h.Store.CarePlans().Update(ctx, plan.ID, func(p *models.CarePlan) {
		p.Tasks = tasks
	})
	if err != nil {
		log.Printf("care-plans: regenerate update failed: %v", err)
		utils.InternalServerError(c, "Failed to regenerate care plan")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// buildTasks turns a generated suggestion into the plan's task list: daily
// routine items due on consecutive days starting today, health monitoring
// items starting a week out.
func buildTasks(suggestion ai.CarePlanSuggestion, now time.Time) models.TaskList {
	tasks := models.TaskList{}
	for i, title := range suggestion.DailyRoutine {
		tasks = append(tasks, models.Task{
			ID:      uuid.New().String(),
			Title:   title,
			DueDate: now.AddDate(0, 0, i).Format("2006-01-02"),
		})
	}
	for i, title := range suggestion.HealthMonitoring {
		tasks = append(tasks, models.Task{
			ID:      uuid.New().String(),
			Title:   title,
			DueDate: now.AddDate(0, 0, i+7).Format("2006-01-02"),
		})
	}
	return tasks
}
