package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionService implements VisionClassifier with AWS Rekognition.
type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService(ctx context.Context, region string) (*RekognitionService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// DetectConcepts returns ranked labels for the image. Rekognition reports
// confidence on a 0-100 scale; it is normalized to 0..1 here so callers see
// one confidence contract regardless of provider.
func (r *RekognitionService) DetectConcepts(ctx context.Context, image []byte) ([]Concept, error) {
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(10),
	})
	if err != nil {
		return nil, err
	}

	concepts := make([]Concept, 0, len(out.Labels))
	for _, l := range out.Labels {
		if l.Name == nil {
			continue
		}
		var confidence float64
		if l.Confidence != nil {
			confidence = float64(*l.Confidence) / 100
		}
		concepts = append(concepts, Concept{Name: *l.Name, Confidence: confidence})
	}
	return concepts, nil
}
