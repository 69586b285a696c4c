package services

import (
	"context"
	"encoding/base64"
	"math"
	"net/http"
	"strings"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/logger"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/models"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/utils"
)

// Concept is one classifier detection, confidence in 0..1.
type Concept struct {
	Name       string
	Confidence float64
}

// VisionClassifier abstracts the external image classifier so the concrete
// provider can be swapped without touching the rest of the pipeline.
type VisionClassifier interface {
	DetectConcepts(ctx context.Context, image []byte) ([]Concept, error)
}

// FoodSearcher is the resolver slice the bridge needs.
type FoodSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]models.Food, error)
}

const (
	maxDetectedConcepts  = 5
	minConceptConfidence = 0.5
	defaultQuantityGrams = 100.0
)

// ImageRecognitionService turns a food photo into detected foods with
// nutrition totals.
type ImageRecognitionService struct {
	classifier VisionClassifier
	resolver   FoodSearcher
	log        *logger.Logger
}

func NewImageRecognitionService(classifier VisionClassifier, resolver FoodSearcher, log *logger.Logger) *ImageRecognitionService {
	return &ImageRecognitionService{
		classifier: classifier,
		resolver:   resolver,
		log:        log.With("service", "ImageRecognitionService"),
	}
}

type DetectedFood struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Carbs    float64 `json:"carbs"`
	Calories float64 `json:"calories"`
}

type ImageAnalysis struct {
	Foods         []DetectedFood `json:"foods"`
	TotalCarbs    float64        `json:"totalCarbs"`
	TotalCalories float64        `json:"totalCalories"`
}

// Analyze classifies the image and enriches the detected concepts with
// nutrition data. A classifier failure fails the whole call; a concept that
// resolves to nothing is silently dropped from the result.
func (s *ImageRecognitionService) Analyze(ctx context.Context, imageBase64 string) (*ImageAnalysis, error) {
	if s.classifier == nil {
		return nil, utils.NewAppError(http.StatusServiceUnavailable, "image analysis not configured")
	}

	image, err := decodeImagePayload(imageBase64)
	if err != nil {
		return nil, utils.BadRequest("invalid image payload")
	}

	concepts, err := s.classifier.DetectConcepts(ctx, image)
	if err != nil {
		s.log.Error("classifier call failed", "error", err)
		return nil, utils.NewAppError(http.StatusBadGateway, "image analysis failed")
	}

	if len(concepts) > maxDetectedConcepts {
		concepts = concepts[:maxDetectedConcepts]
	}

	analysis := &ImageAnalysis{Foods: []DetectedFood{}}
	var totalCarbs, totalCalories float64

	for _, concept := range concepts {
		if concept.Confidence <= minConceptConfidence {
			continue
		}

		matches, err := s.resolver.Search(ctx, concept.Name, 1)
		if err != nil || len(matches) == 0 {
			continue
		}
		food := matches[0]

		carbs := food.Carbs * defaultQuantityGrams / 100
		calories := food.Calories * defaultQuantityGrams / 100

		analysis.Foods = append(analysis.Foods, DetectedFood{
			Name:     food.Name,
			Quantity: defaultQuantityGrams,
			Carbs:    round1(carbs),
			Calories: math.Round(calories),
		})
		totalCarbs += carbs
		totalCalories += calories
	}

	analysis.TotalCarbs = round1(totalCarbs)
	analysis.TotalCalories = math.Round(totalCalories)
	return analysis, nil
}

// decodeImagePayload accepts either a bare base64 string or a
// "data:<mime>;base64,<data>" URI.
func decodeImagePayload(payload string) ([]byte, error) {
	if strings.HasPrefix(payload, "data:") {
		parts := strings.SplitN(payload, ",", 2)
		if len(parts) != 2 {
			return nil, base64.CorruptInputError(0)
		}
		payload = parts[1]
	}
	return base64.StdEncoding.DecodeString(payload)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
