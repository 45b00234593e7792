package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"parenting-copilot-server/internal/ai"
	"parenting-copilot-server/internal/models"
	"parenting-copilot-server/internal/store"
	"parenting-copilot-server/internal/utils"
)

// ChildrenHandler handles child profile related requests.
type ChildrenHandler struct {
	Store store.Store
	AI    *ai.Service
}

// NewChildrenHandler creates a new ChildrenHandler.
func NewChildrenHandler(s store.Store, aiService *ai.Service) *ChildrenHandler {
	return &ChildrenHandler{Store: s, AI: aiService}
}

// CreateChildRequest represents the request body for creating a child profile.
type CreateChildRequest struct {
	Name           string                 `json:"name" binding:"required"`
	DateOfBirth    string                 `json:"dateOfBirth" binding:"required"`
	Gender         models.Gender          `json:"gender" binding:"required,oneof=male female other"`
	ParentID       string                 `json:"parentId" binding:"required"`
	MedicalHistory *models.MedicalHistory `json:"medicalHistory"`
}

// UpdateChildRequest represents the request body for a partial child update.
type UpdateChildRequest struct {
	Name                  *string                       `json:"name"`
	DateOfBirth           *string                       `json:"dateOfBirth"`
	Gender                *models.Gender                `json:"gender"`
	ParentID              *string                       `json:"parentId"`
	MedicalHistory        *models.MedicalHistory        `json:"medicalHistory"`
	DevelopmentMilestones *models.DevelopmentMilestones `json:"developmentMilestones"`
}

// GetChildren handles listing every child profile.
func (h *ChildrenHandler) GetChildren(c *gin.Context) {
	children, err := h.Store.Children().GetAll(c.Request.Context())
	if err != nil {
		log.Printf("children: list failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch children")
		return
	}
	c.JSON(http.StatusOK, children)
}

// GetChild handles fetching a child with all related records assembled.
func (h *ChildrenHandler) GetChild(c *gin.Context) {
	details, err := h.Store.ChildWithDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Child not found")
			return
		}
		log.Printf("children: aggregate lookup failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch child details")
		return
	}
	c.JSON(http.StatusOK, details)
}

// CreateChild handles creating a new child profile. A welcome insight is
// generated best-effort; its failure never fails the creation.
func (h *ChildrenHandler) CreateChild(c *gin.Context) {
	var req CreateChildRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	now := time.Now()
	history := models.EmptyMedicalHistory()
	if req.MedicalHistory != nil {
		history = *req.MedicalHistory
	}

	child := models.Child{
		Name:                  req.Name,
		DateOfBirth:           req.DateOfBirth,
		Gender:                req.Gender,
		ParentID:              req.ParentID,
		MedicalHistory:        history,
		DevelopmentMilestones: models.NewDevelopmentMilestones(now),
	}

	if err := h.Store.Children().Create(c.Request.Context(), &child); err != nil {
		log.Printf("children: create failed: %v", err)
		utils.InternalServerError(c, "Failed to create child")
		return
	}

	tip := h.AI.PersonalizedTip(c.Request.Context(), &child, "New child profile created")
	welcome := models.AIInsight{
		ChildID:    child.ID,
		Type:       "welcome",
		Title:      "Welcome to AI Copilot",
		Content:    tip.Tip,
		Confidence: 0.9,
	}
	if err := h.Store.Insights().Create(c.Request.Context(), &welcome); err != nil {
		log.Printf("children: failed to persist welcome insight: %v", err)
	}

	c.JSON(http.StatusCreated, child)
}

// UpdateChild handles a partial update of a child profile.
func (h *ChildrenHandler) UpdateChild(c *gin.Context) {
	var req UpdateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload")
		return
	}

	updated, err := h.Store.Children().Update(c.Request.Context(), c.Param("id"), func(child *models.Child) {
		if req.Name != nil {
			child.Name = *req.Name
		}
		if req.DateOfBirth != nil {
			child.DateOfBirth = *req.DateOfBirth
		}
		if req.Gender != nil {
			child.Gender = *req.Gender
		}
		if req.ParentID != nil {
			child.ParentID = *req.ParentID
		}
		if req.MedicalHistory != nil {
			child.MedicalHistory = *req.MedicalHistory
		}
		if req.DevelopmentMilestones != nil {
			child.DevelopmentMilestones = *req.DevelopmentMilestones
		}
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Child not found")
			return
		}
		log.Printf("children: update failed: %v", err)
		utils.InternalServerError(c, "Failed to update child")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteChild handles removing a child and cascading to every record that
// references it. The cascade is best-effort: a failed related delete is
// logged and does not roll back the others.
func (h *ChildrenHandler) DeleteChild(c *gin.Context) {
	ctx := c.Request.Context()
	childID := c.Param("id")

	existed, err := h.Store.Children().Delete(ctx, childID)
	if err != nil {
		log.Printf("children: delete failed: %v", err)
		utils.InternalServerError(c, "Failed to delete child")
		return
	}
	if !existed {
		utils.NotFound(c, "Child not found")
		return
	}

	deleteOwned(ctx, h.Store.HealthRecords(), childID, "health record")
	deleteOwned(ctx, h.Store.Reminders(), childID, "reminder")
	deleteOwned(ctx, h.Store.CarePlans(), childID, "care plan")
	deleteOwned(ctx, h.Store.Insights(), childID, "insight")

	utils.RespondWithMessage(c, "Child and related records deleted successfully")
}

// GetInsights handles listing AI insights for a child.
func (h *ChildrenHandler) GetInsights(c *gin.Context) {
	ctx := c.Request.Context()
	childID := c.Param("id")

	if _, err := h.Store.Children().FindByID(ctx, childID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Child not found")
			return
		}
		log.Printf("children: lookup failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch insights")
		return
	}

	insights, err := h.Store.Insights().FindByChildID(ctx, childID)
	if err != nil {
		log.Printf("children: insight list failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch insights")
		return
	}
	c.JSON(http.StatusOK, insights)
}

// GenerateInsightRequest carries the optional context for a new insight.
type GenerateInsightRequest struct {
	Context string `json:"context"`
}

// GenerateInsight handles generating and persisting a new personalized
// insight for a child.
func (h *ChildrenHandler) GenerateInsight(c *gin.Context) {
	ctx := c.Request.Context()

	child, err := h.Store.Children().FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Child not found")
			return
		}
		log.Printf("children: lookup failed: %v", err)
		utils.InternalServerError(c, "Failed to generate insight")
		return
	}

	var req GenerateInsightRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	tip := h.AI.PersonalizedTip(ctx, child, req.Context)
	insight := models.AIInsight{
		ChildID:    child.ID,
		Type:       "personalized",
		Title:      "Personalized Health Tip",
		Content:    tip.Tip,
		Confidence: 0.85,
	}
	if err := h.Store.Insights().Create(ctx, &insight); err != nil {
		log.Printf("children: insight create failed: %v", err)
		utils.InternalServerError(c, "Failed to generate insight")
		return
	}
	c.JSON(http.StatusCreated, insight)
}

// deleteOwned removes every record of one kind owned by a child.
func deleteOwned[T any](ctx context.Context, repo store.Repository[T], childID, kind string) {
	items, err := repo.FindByChildID(ctx, childID)
	if err != nil {
		log.Printf("children: cascade %s lookup failed for child %s: %v", kind, childID, err)
		return
	}
	for i := range items {
		id := any(&items[i]).(models.Entity).GetID()
		if _, err := repo.Delete(ctx, id); err != nil {
			log.Printf("children: cascade delete of %s %s failed: %v", kind, id, err)
		}
	}
}
