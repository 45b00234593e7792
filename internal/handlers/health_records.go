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

// HealthRecordsHandler handles health record related requests.
type HealthRecordsHandler struct {
	Store store.Store
}

// NewHealthRecordsHandler creates a new HealthRecordsHandler.
func NewHealthRecordsHandler(s store.Store) *HealthRecordsHandler {
	return &HealthRecordsHandler{Store: s}
}

// CreateHealthRecordRequest represents the request body for creating a health record.
type CreateHealthRecordRequest struct {
	ChildID string                    `json:"childId" binding:"required"`
	Type    string                    `json:"type" binding:"required"`
	Title   string                    `json:"title" binding:"required"`
	Date    string                    `json:"date" binding:"required"`
	Status  models.HealthRecordStatus `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
	Notes   string                    `json:"notes"`
}

// UpdateHealthRecordRequest represents a partial health record update.
type UpdateHealthRecordRequest struct {
	Type   *string                    `json:"type"`
	Title  *string                    `json:"title"`
	Date   *string                    `json:"date"`
	Status *models.HealthRecordStatus `json:"status"`
	Notes  *string                    `json:"notes"`
}

// GetHealthRecords handles listing every health record.
func (h *HealthRecordsHandler) GetHealthRecords(c *gin.Context) {
	records, err := h.Store.HealthRecords().GetAll(c.Request.Context())
	if err != nil {
		log.Printf("health: list failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch health records")
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetHealthRecordsForChild handles listing records for one child.
func (h *HealthRecordsHandler) GetHealthRecordsForChild(c *gin.Context) {
	records, err := h.Store.HealthRecords().FindByChildID(c.Request.Context(), c.Param("childId"))
	if err != nil {
		log.Printf("health: child list failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch health records")
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetHealthRecord handles fetching one record by id.
func (h *HealthRecordsHandler) GetHealthRecord(c *gin.Context) {
	record, err := h.Store.HealthRecords().FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Health record not found")
			return
		}
		log.Printf("health: lookup failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch health record")
		return
	}
	c.JSON(http.StatusOK, record)
}

// CreateHealthRecord handles creating a new health record.
func (h *HealthRecordsHandler) CreateHealthRecord(c *gin.Context) {
	var req CreateHealthRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusScheduled
	}

	record := models.HealthRecord{
		ChildID: req.ChildID,
		Type:    req.Type,
		Title:   req.Title,
		Date:    req.Date,
		Status:  status,
		Notes:   req.Notes,
	}
	if err := h.Store.HealthRecords().Create(c.Request.Context(), &record); err != nil {
		log.Printf("health: create failed: %v", err)
		utils.InternalServerError(c, "Failed to create health record")
		return
	}
	c.JSON(http.StatusCreated, record)
}

// UpdateHealthRecord handles a partial update of a health record.
func (h *HealthRecordsHandler) UpdateHealthRecord(c *gin.Context) {
	var req UpdateHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload")
		return
	}

	updated, err := h.Store.HealthRecords().Update(c.Request.Context(), c.Param("id"), func(record *models.HealthRecord) {
		if req.Type != nil {
			record.Type = *req.Type
		}
		if req.Title != nil {
			record.Title = *req.Title
		}
		if req.Date != nil {
			record.Date = *req.Date
		}
		if req.Status != nil {
			record.Status = *req.Status
		}
		if req.Notes != nil {
			record.Notes = *req.Notes
		}
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Health record not found")
			return
		}
		log.Printf("health: update failed: %v", err)
		utils.InternalServerError(c, "Failed to update health record")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteHealthRecord handles removing a health record.
func (h *HealthRecordsHandler) DeleteHealthRecord(c *gin.Context) {
	existed, err := h.Store.HealthRecords().Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("health: delete failed: %v", err)
		utils.InternalServerError(c, "Failed to delete health record")
		return
	}
	if !existed {
		utils.NotFound(c, "Health record not found")
		return
	}
	utils.RespondWithMessage(c, "Health record deleted successfully")
}

// GetUpcomingForChild handles listing a child's scheduled records dated
// within the next seven days.
func (h *HealthRecordsHandler) GetUpcomingForChild(c *gin.Context) {
	records, err := h.Store.HealthRecords().FindByChildID(c.Request.Context(), c.Param("childId"))
	if err != nil {
		log.Printf("health: upcoming list failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch upcoming health events")
		return
	}

	now := time.Now()
	nextWeek := now.Add(7 * 24 * time.Hour)
	upcoming := []models.HealthRecord{}
	for _, record := range records {
		if record.Status != models.StatusScheduled {
			continue
		}
		at, err := utils.ParseEventDate(record.Date)
		if err != nil {
			continue
		}
		if !at.Before(now) && !at.After(nextWeek) {
			upcoming = append(upcoming, record)
		}
	}
	c.JSON(http.StatusOK, upcoming)
}

// CompleteHealthRecord handles marking a record completed, stamping the
// completion time.
func (h *HealthRecordsHandler) CompleteHealthRecord(c *gin.Context) {
	now := time.Now()
	updated, err := h.Store.HealthRecords().Update(c.Request.Context(), c.Param("id"), func(record *models.HealthRecord) {
		record.Status = models.StatusCompleted
		record.CompletedAt = &now
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Health record not found")
			return
		}
		log.Printf("health: complete failed: %v", err)
		utils.InternalServerError(c, "Failed to complete health record")
		return
	}
	c.JSON(http.StatusOK, updated)
}
