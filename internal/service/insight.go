package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"coverapi/internal/apperror"
	"coverapi/internal/llm"
)

// insightSchema constrains the provider's JSON answer.
const insightSchema = `{
  "type": "object",
  "required": ["careerTrajectory", "salaryRange", "skillGaps", "recommendedRoles", "marketDemand", "confidence"],
  "properties": {
    "careerTrajectory": {"type": "string", "minLength": 1},
    "salaryRange": {
      "type": "object",
      "required": ["min", "max", "currency"],
      "properties": {
        "min": {"type": "number", "minimum": 0},
        "max": {"type": "number", "minimum": 0},
        "currency": {"type": "string"}
      }
    },
    "skillGaps": {"type": "array", "items": {"type": "string"}},
    "recommendedRoles": {"type": "array", "items": {"type": "string"}},
    "marketDemand": {"type": "string", "enum": ["low", "medium", "high"]},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1}
  }
}`

var insightSchemaLoader = gojsonschema.NewStringLoader(insightSchema)

// InsightInput is the material the career prediction is based on.
type InsightInput struct {
	CVData      map[string]any
	Preferences map[string]any
	JobHistory  []any
}

// InsightResult holds the validated prediction.
type InsightResult struct {
	Insights  map[string]any `json:"insights"`
	Timestamp time.Time      `json:"timestamp"`
}

// InsightService produces predictive career insights.
type InsightService interface {
	Predict(ctx context.Context, in InsightInput) (*InsightResult, error)
}

type insightService struct {
	text llm.TextGenerator
	now  func() time.Time
}

func NewInsightService(text llm.TextGenerator) InsightService {
	return &insightService{text: text, now: time.Now}
}

func insightPrompt(in InsightInput) string {
	var b strings.Builder
	b.WriteString("Tu es un analyste du marché de l'emploi. À partir des données ci-dessous, produis une prédiction de carrière.\n")
	b.WriteString("Réponds uniquement avec un objet JSON conforme à ce schéma :\n")
	b.WriteString(insightSchema)
	b.WriteString("\n\nCV :\n")
	b.WriteString(indentJSON(in.CVData))
	if len(in.Preferences) > 0 {
		b.WriteString("\n\nPréférences :\n")
		b.WriteString(indentJSON(in.Preferences))
	}
	if len(in.JobHistory) > 0 {
		b.WriteString("\n\nHistorique professionnel :\n")
		b.WriteString(indentJSON(in.JobHistory))
	}
	return b.String()
}

func (s *insightService) Predict(ctx context.Context, in InsightInput) (*InsightResult, error) {
	if len(in.CVData) == 0 {
		return nil, apperror.Validation("cvData", "cvData requis")
	}

	raw, err := s.text.GenerateJSON(ctx, insightPrompt(in))
	if err != nil {
		return nil, apperror.Dependency("Gemini", err)
	}
	insights, err := validateInsights(raw)
	if err != nil {
		return nil, apperror.Dependency("Gemini", err)
	}
	return &InsightResult{Insights: insights, Timestamp: s.now().UTC()}, nil
}

func validateInsights(raw string) (map[string]any, error) {
	result, err := gojsonschema.Validate(insightSchemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid insight json: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, errors.New("insight schema violation: " + strings.Join(msgs, "; "))
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode insights: %w", err)
	}
	return out, nil
}
