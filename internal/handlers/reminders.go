package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"parenting-copilot-server/internal/models"
	"parenting-copilot-server/internal/store"
	"parenting-copilot-server/internal/utils"
)

// RemindersHandler handles reminder related requests.
type RemindersHandler struct {
	Store store.Store
}

// NewRemindersHandler creates a new RemindersHandler.
func NewRemindersHandler(s store.Store) *RemindersHandler {
	return &RemindersHandler{Store: s}
}

// CreateReminderRequest represents the request body for creating a reminder.
type CreateReminderRequest struct {
	ChildID   string                   `json:"childId" binding:"required"`
	Type      string                   `json:"type" binding:"required"`
	Title     string                   `json:"title" binding:"required"`
	Time      string                   `json:"time"`
	Date      string                   `json:"date"`
	Frequency models.ReminderFrequency `json:"frequency" binding:"omitempty,oneof=once daily weekly monthly"`
	Notes     string                   `json:"notes"`
}

// UpdateReminderRequest represents a partial reminder update.
type UpdateReminderRequest struct {
	Type      *string                   `json:"type"`
	Title     *string                   `json:"title"`
	Time      *string                   `json:"time"`
	Date      *string                   `json:"date"`
	Frequency *models.ReminderFrequency `json:"frequency"`
	Notes     *string                   `json:"notes"`
	IsActive  *bool                     `json:"isActive"`
}

// GetReminders handles listing every reminder.
func (h *RemindersHandler) GetReminders(c *gin.Context) {
	reminders, err := h.Store.Reminders().GetAll(c.Request.Context())
	if err != nil {
		log.Printf("reminders: list failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch reminders")
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// GetRemindersForChild handles listing reminders for one child.
func (h *RemindersHandler) GetRemindersForChild(c *gin.Context) {
	reminders, err := h.Store.Reminders().FindByChildID(c.Request.Context(), c.Param("childId"))
	if err != nil {
		log.Printf("reminders: child list failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch reminders")
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// GetActiveReminders handles listing reminders with the active flag set.
func (h *RemindersHandler) GetActiveReminders(c *gin.Context) {
	reminders, err := h.Store.Reminders().GetAll(c.Request.Context())
	if err != nil {
		log.Printf("reminders: list failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch active reminders")
		return
	}

	active := []models.Reminder{}
	for _, r := range reminders {
		if r.IsActive {
			active = append(active, r)
		}
	}
	c.JSON(http.StatusOK, active)
}

// GetUpcomingReminders handles listing reminders inside the 24-hour window.
func (h *RemindersHandler) GetUpcomingReminders(c *gin.Context) {
	upcoming, err := h.Store.UpcomingReminders(c.Request.Context(), time.Now())
	if err != nil {
		log.Printf("reminders: upcoming failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch upcoming reminders")
		return
	}
	c.JSON(http.StatusOK, upcoming)
}

// CreateReminder handles creating a new reminder. New reminders start active.
func (h *RemindersHandler) CreateReminder(c *gin.Context) {
	var req CreateReminderRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = models.FrequencyOnce
	}

	reminder := models.Reminder{
		ChildID:   req.ChildID,
		Type:      req.Type,
		Title:     req.Title,
		Time:      req.Time,
		Date:      req.Date,
		Frequency: frequency,
		Notes:     req.Notes,
		IsActive:  true,
	}
	if err := h.Store.Reminders().Create(c.Request.Context(), &reminder); err != nil {
		log.Printf("reminders: create failed: %v", err)
		utils.InternalServerError(c, "Failed to create reminder")
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

// UpdateReminder handles a partial reminder update.
func (h *RemindersHandler) UpdateReminder(c *gin.Context) {
	var req UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload")
		return
	}

	updated, err := h.Store.Reminders().Update(c.Request.Context(), c.Param("id"), func(reminder *models.Reminder) {
		if req.Type != nil {
			reminder.Type = *req.Type
		}
		if req.Title != nil {
			reminder.Title = *req.Title
		}
		if req.Time != nil {
			reminder.Time = *req.Time
		}
		if req.Date != nil {
			reminder.Date = *req.Date
		}
		if req.Frequency != nil {
			reminder.Frequency = *req.Frequency
		}
		if req.Notes != nil {
			reminder.Notes = *req.Notes
		}
		if req.IsActive != nil {
			reminder.IsActive = *req.IsActive
		}
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Reminder not found")
			return
		}
		log.Printf("reminders: update failed: %v", err)
		utils.InternalServerError(c, "Failed to update reminder")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteReminder handles removing a reminder.
func (h *RemindersHandler) DeleteReminder(c *gin.Context) {
	existed, err := h.Store.Reminders().Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("reminders: delete failed: %v", err)
		utils.InternalServerError(c, "Failed to delete reminder")
		return
	}
	if !existed {
		utils.NotFound(c, "Reminder not found")
		return
	}
	utils.RespondWithMessage(c, "Reminder deleted successfully")
}

// ToggleReminder handles flipping a reminder's active flag.
func (h *RemindersHandler) ToggleReminder(c *gin.Context) {
	updated, err := h.Store.Reminders().Update(c.Request.Context(), c.Param("id"), func(reminder *models.Reminder) {
		reminder.IsActive = !reminder.IsActive
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Reminder not found")
			return
		}
		log.Printf("reminders: toggle failed: %v", err)
		utils.InternalServerError(c, "Failed to toggle reminder")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// TriggerReminder handles manually stamping a reminder as triggered now.
func (h *RemindersHandler) TriggerReminder(c *gin.Context) {
	now := time.Now()
	updated, err := h.Store.Reminders().Update(c.Request.Context(), c.Param("id"), func(reminder *models.Reminder) {
		reminder.LastTriggered = &now
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Reminder not found")
			return
		}
		log.Printf("reminders: trigger failed: %v", err)
		utils.InternalServerError(c, "Failed to trigger reminder")
		return
	}
	c.JSON(http.StatusOK, updated)
}
