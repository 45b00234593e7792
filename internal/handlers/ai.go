package handlers

import (
	"encoding/json"
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

// AIHandler handles generative advisory requests.
type AIHandler struct {
	Store store.Store
	AI    *ai.Service
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(s store.Store, aiService *ai.Service) *AIHandler {
	return &AIHandler{Store: s, AI: aiService}
}

// TipRequest represents the request body for a personalized tip.
type TipRequest struct {
	ChildID string `json:"childId" binding:"required"`
	Context string `json:"context"`
}

// InsightRequest represents the request body for a health analysis.
type InsightRequest struct {
	ChildID string `json:"childId" binding:"required"`
}

// CarePlanRequest represents the request body for a generated plan outline.
type CarePlanRequest struct {
	ChildID       string `json:"childId" binding:"required"`
	SpecificNeeds string `json:"specificNeeds"`
}

// ChatRequest represents the request body for the assistant chat.
type ChatRequest struct {
	ChildID string `json:"childId"`
	Message string `json:"message" binding:"required"`
	Context string `json:"context"`
}

// DailySummaryRequest represents the request body for the daily summary.
type DailySummaryRequest struct {
	ChildID string `json:"childId" binding:"required"`
}

// findChild resolves a child id, writing the error response on failure.
func (h *AIHandler) findChild(c *gin.Context, childID string) (*models.Child, bool) {
	child, err := h.Store.Children().FindByID(c.Request.Context(), childID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Child not found")
			return nil, false
		}
		log.Printf("ai: child lookup failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch child")
		return nil, false
	}
	return child, true
}

// GenerateTip handles generating a personalized tip and persisting it as an
// insight. The reply is usable even when the model call fails.
func (h *AIHandler) GenerateTip(c *gin.Context) {
	var req TipRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	child, ok := h.findChild(c, req.ChildID)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	tip := h.AI.PersonalizedTip(ctx, child, req.Context)

	insight := models.AIInsight{
		ChildID:    child.ID,
		Type:       "personalized_tip",
		Title:      "Personalized Health Tip",
		Content:    tip.Tip,
		Confidence: 0.85,
	}
	if err := h.Store.Insights().Create(ctx, &insight); err != nil {
		log.Printf("ai: tip insight create failed: %v", err)
		utils.InternalServerError(c, "Failed to generate AI tip")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tip":     tip,
		"insight": insight,
	})
}

// GenerateInsights handles analyzing a child's health records and persisting
// the serialized analysis as an insight.
func (h *AIHandler) GenerateInsights(c *gin.Context) {
	var req InsightRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	child, ok := h.findChild(c, req.ChildID)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	records, err := h.Store.HealthRecords().FindByChildID(ctx, child.ID)
	if err != nil {
		log.Printf("ai: record list failed: %v", err)
		utils.InternalServerError(c, "Failed to generate health insights")
		return
	}

	analysis := h.AI.HealthInsight(ctx, child, records)
	content, err := json.Marshal(analysis)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate health insights")
		return
	}

	insight := models.AIInsight{
		ChildID:    child.ID,
		Type:       "health_analysis",
		Title:      "Health Analysis",
		Content:    string(content),
		Confidence: 0.8,
	}
	if err := h.Store.Insights().Create(ctx, &insight); err != nil {
		log.Printf("ai: analysis insight create failed: %v", err)
		utils.InternalServerError(c, "Failed to generate health insights")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis": analysis,
		"insight":  insight,
	})
}

// GenerateCarePlan handles generating a plan outline without persisting it.
func (h *AIHandler) GenerateCarePlan(c *gin.Context) {
	var req CarePlanRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	child, ok := h.findChild(c, req.ChildID)
	if !ok {
		return
	}

	suggestion := h.AI.GenerateCarePlan(c.Request.Context(), child, req.SpecificNeeds)
	c.JSON(http.StatusOK, suggestion)
}

// Chat handles a free-form assistant conversation. Model failures surface as
// a 500 here; chat has no fallback content.
func (h *AIHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ctx := c.Request.Context()
	var child *models.Child
	if req.ChildID != "" {
		// An unknown child id degrades to an uncontextualized chat.
		if found, err := h.Store.Children().FindByID(ctx, req.ChildID); err == nil {
			child = found
		}
	}

	reply, err := h.AI.Chat(ctx, child, req.Message, req.Context)
	if err != nil {
		log.Printf("ai: chat failed: %v", err)
		utils.InternalServerError(c, "Failed to process chat message")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response":  reply,
		"timestamp": time.Now(),
	})
}

// GetInsightsForChild handles listing persisted insights for a child.
func (h *AIHandler) GetInsightsForChild(c *gin.Context) {
	insights, err := h.Store.Insights().FindByChildID(c.Request.Context(), c.Param("childId"))
	if err != nil {
		log.Printf("ai: insight list failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch AI insights")
		return
	}
	c.JSON(http.StatusOK, insights)
}

// DeleteInsight handles removing a persisted insight.
func (h *AIHandler) DeleteInsight(c *gin.Context) {
	existed, err := h.Store.Insights().Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("ai: insight delete failed: %v", err)
		utils.InternalServerError(c, "Failed to delete AI insight")
		return
	}
	if !existed {
		utils.NotFound(c, "AI insight not found")
		return
	}
	utils.RespondWithMessage(c, "AI insight deleted successfully")
}

// DailySummary handles generating a daily briefing for a child. Model
// failures surface as a 500; summaries have no fallback content.
func (h *AIHandler) DailySummary(c *gin.Context) {
	var req DailySummaryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	child, ok := h.findChild(c, req.ChildID)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	records, err := h.Store.HealthRecords().FindByChildID(ctx, child.ID)
	if err != nil {
		log.Printf("ai: record list failed: %v", err)
		utils.InternalServerError(c, "Failed to generate daily summary")
		return
	}
	reminders, err := h.Store.Reminders().FindByChildID(ctx, child.ID)
	if err != nil {
		log.Printf("ai: reminder list failed: %v", err)
		utils.InternalServerError(c, "Failed to generate daily summary")
		return
	}
	plans, err := h.Store.CarePlans().FindByChildID(ctx, child.ID)
	if err != nil {
		log.Printf("ai: plan list failed: %v", err)
		utils.InternalServerError(c, "Failed to generate daily summary")
		return
	}

	summary, err := h.AI.DailySummary(ctx, child, records, reminders, plans)
	if err != nil {
		log.Printf("ai: daily summary failed: %v", err)
		utils.InternalServerError(c, "Failed to generate daily summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":   summary,
		"timestamp": time.Now(),
	})
}
