package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"coverapi/internal/apperror"
	"coverapi/internal/service"
)

type generationType struct {
	Type service.GenerationKind `json:"type"`
}

// decodeGeneration picks the request variant named by "type" and validates only that variant's fields.
func decodeGeneration(body []byte) (service.GenerationRequest, error) {
	if len(body) == 0 {
		return nil, apperror.Validation("body", "Corps de requête requis")
	}
	var t generationType
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, apperror.Validation("body", "JSON invalide")
	}

	switch t.Type {
	case service.KindCoverLetter:
		return decodeVariant[service.CoverLetterRequest](body)
	case service.KindCVOptimization:
		return decodeVariant[service.CVOptimizationRequest](body)
	case service.KindInterviewPrep:
		return decodeVariant[service.InterviewPrepRequest](body)
	case service.KindCVAnalysis:
		return decodeVariant[service.CVAnalysisRequest](body)
	case "":
		return nil, apperror.Validation("type", "type requis")
	default:
		return nil, apperror.Validation("type", "Type de génération non supporté: "+string(t.Type))
	}
}

func decodeVariant[T service.GenerationRequest](body []byte) (service.GenerationRequest, error) {
	var r T
	if err := decode(body, &r); err != nil {
		return nil, err
	}
	return r, nil
}

// Generate godoc
// @Summary Generate a cover letter, CV optimization, interview prep or CV analysis
// @Tags generation
// @Accept json
// @Produce json
// @Router /groq/generate [post]
func Generate(svc service.GenerationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := decodeGeneration(c.Body())
		if err != nil {
			return respondError(c, err)
		}

		res, err := svc.Generate(c.UserContext(), req)
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, fiber.Map{
			"content":  res.Content,
			"provider": res.Provider,
			"model":    res.Model,
		})
	}
}
