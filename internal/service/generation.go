package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"coverapi/internal/apperror"
	"coverapi/internal/cache"
	"coverapi/internal/llm"
	"coverapi/internal/model"
)

const providerGroq = "groq"

// GenerationKind names a generation variant.
type GenerationKind string

const (
	KindCoverLetter    GenerationKind = "cover-letter"
	KindCVOptimization GenerationKind = "cv-optimization"
	KindInterviewPrep  GenerationKind = "interview-prep"
	KindCVAnalysis     GenerationKind = "cv-analysis"
)

// JobDetails describes the targeted position.
type JobDetails struct {
	Title        string `json:"title" validate:"required"`
	Company      string `json:"company" validate:"required"`
	Description  string `json:"description,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	Location     string `json:"location,omitempty"`
}

// GenerationRequest is one of the generation variants below.
type GenerationRequest interface {
	Kind() GenerationKind
	// Owner is the optional user the result is cached for.
	Owner() string
	messages() []llm.Message
}

type CoverLetterRequest struct {
	UserProfile map[string]any `json:"userProfile" validate:"required"`
	JobDetails  *JobDetails    `json:"jobDetails" validate:"required"`
	UserID      string         `json:"userId,omitempty"`
}

type CVOptimizationRequest struct {
	CVContent string `json:"cvContent" validate:"required"`
	TargetJob string `json:"targetJob" validate:"required"`
	UserID    string `json:"userId,omitempty"`
}

type InterviewPrepRequest struct {
	JobDetails  *JobDetails    `json:"jobDetails" validate:"required"`
	UserProfile map[string]any `json:"userProfile,omitempty"`
	UserID      string         `json:"userId,omitempty"`
}

type CVAnalysisRequest struct {
	CVContent string `json:"cvContent" validate:"required"`
	UserID    string `json:"userId,omitempty"`
}

func (CoverLetterRequest) Kind() GenerationKind    { return KindCoverLetter }
func (CVOptimizationRequest) Kind() GenerationKind { return KindCVOptimization }
func (InterviewPrepRequest) Kind() GenerationKind  { return KindInterviewPrep }
func (CVAnalysisRequest) Kind() GenerationKind     { return KindCVAnalysis }

func (r CoverLetterRequest) Owner() string    { return r.UserID }
func (r CVOptimizationRequest) Owner() string { return r.UserID }
func (r InterviewPrepRequest) Owner() string  { return r.UserID }
func (r CVAnalysisRequest) Owner() string     { return r.UserID }

const systemRecruiter = "Tu es un expert en recrutement et en rédaction professionnelle. Réponds en français, dans un style clair et professionnel."

func (r CoverLetterRequest) messages() []llm.Message {
	return []llm.Message{
		{Role: "system", Content: systemRecruiter},
		{Role: "user", Content: fmt.Sprintf(
			"Rédige une lettre de motivation personnalisée pour le poste de %s chez %s.\n\nDescription du poste :\n%s\n\nProfil du candidat :\n%s\n\nLa lettre doit faire entre 250 et 400 mots et mettre en avant les compétences pertinentes.",
			r.JobDetails.Title, r.JobDetails.Company, orNone(r.JobDetails.Description), indentJSON(r.UserProfile),
		)},
	}
}

func (r CVOptimizationRequest) messages() []llm.Message {
	return []llm.Message{
		{Role: "system", Content: systemRecruiter},
		{Role: "user", Content: fmt.Sprintf(
			"Optimise ce CV pour le poste suivant : %s.\n\nCV :\n%s\n\nPropose une version améliorée et liste les modifications apportées.",
			r.TargetJob, r.CVContent,
		)},
	}
}

func (r InterviewPrepRequest) messages() []llm.Message {
	profile := "Non renseigné"
	if len(r.UserProfile) > 0 {
		profile = indentJSON(r.UserProfile)
	}
	return []llm.Message{
		{Role: "system", Content: systemRecruiter},
		{Role: "user", Content: fmt.Sprintf(
			"Prépare le candidat à un entretien pour le poste de %s chez %s.\n\nDescription du poste :\n%s\n\nProfil du candidat :\n%s\n\nDonne 10 questions probables avec des conseils de réponse.",
			r.JobDetails.Title, r.JobDetails.Company, orNone(r.JobDetails.Description), profile,
		)},
	}
}

func (r CVAnalysisRequest) messages() []llm.Message {
	return []llm.Message{
		{Role: "system", Content: systemRecruiter},
		{Role: "user", Content: "Analyse ce CV : points forts, points faibles, et recommandations concrètes d'amélioration.\n\nCV :\n" + r.CVContent},
	}
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Non renseignée"
	}
	return s
}

func indentJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// GenerationResult is the provider output with its static metadata.
type GenerationResult struct {
	Content  string `json:"content"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// GenerationService runs text generation requests on the chat-completions provider.
type GenerationService interface {
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error)
}

type generationService struct {
	chat    llm.ChatCompleter
	letters CoverLetterService
	cache   cache.Cache
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewGenerationService(chat llm.ChatCompleter, letters CoverLetterService, c cache.Cache, log logrus.FieldLogger) GenerationService {
	return &generationService{chat: chat, letters: letters, cache: c, log: log, now: time.Now}
}

type cachedGeneration struct {
	Type      GenerationKind `json:"type"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (s *generationService) Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	content, err := s.chat.Complete(ctx, req.messages())
	if err != nil {
		return nil, apperror.Dependency("Groq", err)
	}

	if cl, ok := req.(CoverLetterRequest); ok {
		_, err := s.letters.Create(ctx, &model.CoverLetter{
			UserID:   cl.UserID,
			JobTitle: cl.JobDetails.Title,
			Company:  cl.JobDetails.Company,
			Content:  content,
		})
		if err != nil {
			return nil, err
		}
	}

	if owner := req.Owner(); owner != "" {
		now := s.now()
		key := cache.GenerationKey(string(req.Kind()), owner, now)
		if err := s.cache.Set(ctx, key, cachedGeneration{Type: req.Kind(), Content: content, CreatedAt: now.UTC()}, resultTTL); err != nil {
			s.log.WithError(err).WithField("cache_key", key.String()).Warn("generation cache write failed")
		}
	}

	return &GenerationResult{Content: content, Provider: providerGroq, Model: s.chat.Model()}, nil
}
