package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"parenting-copilot-server/internal/models"
	"parenting-copilot-server/internal/utils"
)

// Generator produces a text reply for a prompt. Satisfied by *Client and by
// test stubs.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Service builds prompts from entity data and shapes model replies. The
// structured methods never fail: when the model errors or returns unparsable
// text, fixed fallback content is substituted.
type Service struct {
	gen Generator
}

func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// Tip is a personalized advisory reply.
type Tip struct {
	Tip       string `json:"tip"`
	Milestone string `json:"milestone"`
	Safety    string `json:"safety"`
	Nutrition string `json:"nutrition"`
}

// CarePlanSuggestion is a generated care plan outline.
type CarePlanSuggestion struct {
	DailyRoutine     []string `json:"dailyRoutine"`
	HealthMonitoring []string `json:"healthMonitoring"`
	Activities       []string `json:"activities"`
	Safety           []string `json:"safety"`
	Nutrition        []string `json:"nutrition"`
}

// HealthAnalysis is a generated reading of a child's health records.
type HealthAnalysis struct {
	Trends          string `json:"trends"`
	Concerns        string `json:"concerns"`
	Recommendations string `json:"recommendations"`
	Milestones      string `json:"milestones"`
}

func fallbackTip() Tip {
	return Tip{
		Tip:       "Continue providing love, care, and attention to your child's development.",
		Milestone: "Monitor age-appropriate developmental milestones",
		Safety:    "Ensure a safe environment for exploration and play",
		Nutrition: "Provide balanced nutrition with age-appropriate portions",
	}
}

func fallbackCarePlan() CarePlanSuggestion {
	return CarePlanSuggestion{
		DailyRoutine:     []string{"Maintain consistent schedule", "Ensure adequate rest"},
		HealthMonitoring: []string{"Regular health checkups", "Monitor growth"},
		Activities:       []string{"Encourage play and exploration", "Reading and learning"},
		Safety:           []string{"Maintain safe environment", "Supervise activities"},
		Nutrition:        []string{"Provide balanced nutrition", "Encourage healthy eating"},
	}
}

func fallbackAnalysis() HealthAnalysis {
	return HealthAnalysis{
		Trends:          "Health monitoring is on track",
		Concerns:        "Continue regular health monitoring",
		Recommendations: "Maintain consistent care routine",
		Milestones:      "Monitor developmental progress",
	}
}

// PersonalizedTip generates advisory content for a child in a given context.
func (s *Service) PersonalizedTip(ctx context.Context, child *models.Child, contextNote string) Tip {
	prompt := fmt.Sprintf(`As an AI pediatric health assistant, provide personalized advice for a child based on the following information:

Child Information:
- Name: %s
- Age: %d years old
- Gender: %s
- Medical History: %s
- Development Milestones: %s

Context: %s

Please provide:
1. A personalized health tip (2-3 sentences)
2. A developmental milestone to watch for
3. A safety recommendation
4. A nutrition suggestion

Format your response as JSON with these keys: tip, milestone, safety, nutrition`,
		child.Name, utils.AgeInYears(child.DateOfBirth, time.Now()), child.Gender,
		asJSON(child.MedicalHistory), asJSON(child.DevelopmentMilestones), contextNote)

	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("ai: personalized tip generation failed: %v", err)
		return fallbackTip()
	}

	var tip Tip
	if err := json.Unmarshal([]byte(stripFences(text)), &tip); err != nil {
		// Unparsable reply: keep the raw text as the tip.
		return Tip{
			Tip:       text,
			Milestone: "Continue monitoring developmental progress",
			Safety:    "Ensure childproofing is up to date",
			Nutrition: "Maintain balanced meals with fruits and vegetables",
		}
	}
	return tip
}

// GenerateCarePlan generates a care plan outline for a child.
func (s *Service) GenerateCarePlan(ctx context.Context, child *models.Child, specificNeeds string) CarePlanSuggestion {
	prompt := fmt.Sprintf(`Create a comprehensive care plan for a child with the following information:

Child Information:
- Name: %s
- Age: %d years old
- Medical History: %s
- Current Development: %s

Specific Needs: %s

Please create a care plan that includes:
1. Daily routine recommendations
2. Health monitoring tasks
3. Developmental activities
4. Safety measures
5. Nutrition guidelines

Format as JSON with these sections: dailyRoutine, healthMonitoring, activities, safety, nutrition`,
		child.Name, utils.AgeInYears(child.DateOfBirth, time.Now()),
		asJSON(child.MedicalHistory), asJSON(child.DevelopmentMilestones), specificNeeds)

	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("ai: care plan generation failed: %v", err)
		return fallbackCarePlan()
	}

	var plan CarePlanSuggestion
	if err := json.Unmarshal([]byte(stripFences(text)), &plan); err != nil {
		return CarePlanSuggestion{
			DailyRoutine:     []string{"Regular meal times", "Adequate sleep", "Play time"},
			HealthMonitoring: []string{"Track growth", "Monitor development", "Regular checkups"},
			Activities:       []string{"Age-appropriate play", "Reading time", "Physical activity"},
			Safety:           []string{"Childproof environment", "Supervision", "Emergency preparedness"},
			Nutrition:        []string{"Balanced meals", "Adequate hydration", "Limit processed foods"},
		}
	}
	return plan
}

// HealthInsight analyzes a child's health records.
func (s *Service) HealthInsight(ctx context.Context, child *models.Child, records []models.HealthRecord) HealthAnalysis {
	prompt := fmt.Sprintf(`Analyze the following health data for a child and provide insights:

Child: %s, Age: %d years
Health Records: %s

Provide insights on:
1. Health trends
2. Areas of concern
3. Recommendations
4. Upcoming milestones to watch

Format as JSON with: trends, concerns, recommendations, milestones`,
		child.Name, utils.AgeInYears(child.DateOfBirth, time.Now()), asJSON(records))

	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("ai: health insight generation failed: %v", err)
		return fallbackAnalysis()
	}

	var analysis HealthAnalysis
	if err := json.Unmarshal([]byte(stripFences(text)), &analysis); err != nil {
		return HealthAnalysis{
			Trends:          "Continue monitoring health metrics",
			Concerns:        "No immediate concerns identified",
			Recommendations: "Maintain current care routine",
			Milestones:      "Watch for age-appropriate developmental progress",
		}
	}
	return analysis
}

// Chat answers a free-form parenting question, optionally grounded in a
// child's profile. Unlike the structured methods, transport failures
// propagate to the caller.
func (s *Service) Chat(ctx context.Context, child *models.Child, message, contextNote string) (string, error) {
	childContext := ""
	if child != nil {
		childContext = fmt.Sprintf(`Child Information:
- Name: %s
- Age: %d years old
- Gender: %s
- Medical History: %s
`, child.Name, utils.AgeInYears(child.DateOfBirth, time.Now()), child.Gender, asJSON(child.MedicalHistory))
	}
	if contextNote == "" {
		contextNote = "General parenting question"
	}

	prompt := fmt.Sprintf(`You are an AI pediatric health assistant. A parent is asking for help with their child.

%s

Parent's question: %s

Context: %s

Please provide helpful, accurate, and supportive advice. Remember to:
1. Be encouraging and supportive
2. Provide practical advice
3. Suggest consulting healthcare professionals when appropriate
4. Keep responses concise but informative`, childContext, message, contextNote)

	return s.gen.GenerateText(ctx, prompt)
}

// DailySummary produces a short actionable briefing for a child's day.
// Transport failures propagate to the caller.
func (s *Service) DailySummary(ctx context.Context, child *models.Child, records []models.HealthRecord, reminders []models.Reminder, plans []models.CarePlan) (string, error) {
	if len(records) > 5 {
		records = records[len(records)-5:]
	}
	active := []models.Reminder{}
	for _, r := range reminders {
		if r.IsActive {
			active = append(active, r)
		}
	}

	prompt := fmt.Sprintf(`Generate a daily summary for a parent about their child's health and care needs.

Child: %s, Age: %d years

Recent Health Records: %s
Active Reminders: %s
Care Plans: %s

Provide:
1. Today's priorities
2. Health reminders
3. Developmental focus areas
4. General encouragement

Keep it concise and actionable.`,
		child.Name, utils.AgeInYears(child.DateOfBirth, time.Now()),
		asJSON(records), asJSON(active), asJSON(plans))

	return s.gen.GenerateText(ctx, prompt)
}

func asJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// stripFences removes a markdown code fence wrapper, which the model often
// adds around JSON replies.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
