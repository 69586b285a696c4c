package services

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"testing"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/models"
)

type fakeClassifier struct {
	concepts []Concept
	err      error
	lastSeen []byte
}

func (f *fakeClassifier) DetectConcepts(_ context.Context, image []byte) ([]Concept, error) {
	f.lastSeen = image
	return f.concepts, f.err
}

type fakeSearcher struct {
	foods map[string][]models.Food
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ int) ([]models.Food, error) {
	return f.foods[query], nil
}

var testImage = base64.StdEncoding.EncodeToString([]byte("not a real jpeg"))

func TestAnalyzeKeepsConfidentResolvableConcepts(t *testing.T) {
	classifier := &fakeClassifier{concepts: []Concept{
		{Name: "apple", Confidence: 0.9},
		{Name: "rock", Confidence: 0.2},
	}}
	searcher := &fakeSearcher{foods: map[string][]models.Food{
		"apple": {{Name: "Pomme, crue", Calories: 52, Carbs: 14, Source: models.SourceCiqual}},
		"rock":  {{Name: "Rocket salad", Calories: 25, Carbs: 2, Source: models.SourceCiqual}},
	}}
	svc := NewImageRecognitionService(classifier, searcher, testLogger())

	analysis, err := svc.Analyze(context.Background(), testImage)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(analysis.Foods) != 1 {
		t.Fatalf("expected low-confidence concept filtered out, got %d foods", len(analysis.Foods))
	}
	f := analysis.Foods[0]
	if f.Name != "Pomme, crue" {
		t.Fatalf("unexpected food: %+v", f)
	}
	if f.Quantity != 100 {
		t.Fatalf("expected default quantity 100, got %v", f.Quantity)
	}
	if f.Calories != 52 || f.Carbs != 14 {
		t.Fatalf("expected per-100g values at default quantity, got %+v", f)
	}
	if analysis.TotalCalories != 52 || analysis.TotalCarbs != 14 {
		t.Fatalf("unexpected totals: %+v", analysis)
	}
}

func TestAnalyzeRoundsValues(t *testing.T) {
	classifier := &fakeClassifier{concepts: []Concept{{Name: "rice", Confidence: 0.8}}}
	searcher := &fakeSearcher{foods: map[string][]models.Food{
		"rice": {{Name: "Riz", Calories: 130.6, Carbs: 28.46, Source: models.SourceCiqual}},
	}}
	svc := NewImageRecognitionService(classifier, searcher, testLogger())

	analysis, err := svc.Analyze(context.Background(), testImage)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	f := analysis.Foods[0]
	if f.Calories != 131 {
		t.Fatalf("expected calories rounded to integer, got %v", f.Calories)
	}
	if f.Carbs != 28.5 {
		t.Fatalf("expected carbs rounded to one decimal, got %v", f.Carbs)
	}
}

func TestAnalyzeDropsUnresolvedConcepts(t *testing.T) {
	classifier := &fakeClassifier{concepts: []Concept{
		{Name: "apple", Confidence: 0.9},
		{Name: "mystery", Confidence: 0.95},
	}}
	searcher := &fakeSearcher{foods: map[string][]models.Food{
		"apple": {{Name: "Pomme, crue", Calories: 52, Carbs: 14, Source: models.SourceCiqual}},
	}}
	svc := NewImageRecognitionService(classifier, searcher, testLogger())

	analysis, err := svc.Analyze(context.Background(), testImage)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(analysis.Foods) != 1 || analysis.Foods[0].Name != "Pomme, crue" {
		t.Fatalf("expected unresolved concept silently dropped, got %+v", analysis.Foods)
	}
}

func TestAnalyzeConsidersTopConceptsOnly(t *testing.T) {
	classifier := &fakeClassifier{concepts: []Concept{
		{Name: "a", Confidence: 0.99},
		{Name: "b", Confidence: 0.98},
		{Name: "c", Confidence: 0.97},
		{Name: "d", Confidence: 0.96},
		{Name: "e", Confidence: 0.95},
		{Name: "apple", Confidence: 0.94},
	}}
	searcher := &fakeSearcher{foods: map[string][]models.Food{
		"apple": {{Name: "Pomme, crue", Calories: 52, Carbs: 14, Source: models.SourceCiqual}},
	}}
	svc := NewImageRecognitionService(classifier, searcher, testLogger())

	analysis, err := svc.Analyze(context.Background(), testImage)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(analysis.Foods) != 0 {
		t.Fatalf("expected sixth concept ignored, got %+v", analysis.Foods)
	}
}

func TestAnalyzeClassifierFailureIsFatal(t *testing.T) {
	classifier := &fakeClassifier{err: errors.New("provider down")}
	svc := NewImageRecognitionService(classifier, &fakeSearcher{}, testLogger())

	_, err := svc.Analyze(context.Background(), testImage)
	if err == nil {
		t.Fatal("expected error when classifier fails")
	}
	if code := appErrCode(t, err); code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", code)
	}
}

func TestAnalyzeRejectsBadPayload(t *testing.T) {
	svc := NewImageRecognitionService(&fakeClassifier{}, &fakeSearcher{}, testLogger())

	_, err := svc.Analyze(context.Background(), "!!! not base64 !!!")
	if code := appErrCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAnalyzeAcceptsDataURI(t *testing.T) {
	classifier := &fakeClassifier{}
	svc := NewImageRecognitionService(classifier, &fakeSearcher{}, testLogger())

	_, err := svc.Analyze(context.Background(), "data:image/jpeg;base64,"+testImage)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if string(classifier.lastSeen) != "not a real jpeg" {
		t.Fatalf("expected decoded payload passed to classifier, got %q", classifier.lastSeen)
	}
}

func TestAnalyzeWithoutClassifierIsUnavailable(t *testing.T) {
	svc := NewImageRecognitionService(nil, &fakeSearcher{}, testLogger())

	_, err := svc.Analyze(context.Background(), testImage)
	if code := appErrCode(t, err); code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
}
