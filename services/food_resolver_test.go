package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/models"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/utils"
)

type fakeNational struct {
	results     []models.Food
	details     map[string]*models.Food
	searchCalls int
}

func (f *fakeNational) Search(_ context.Context, _ string, _ int) []models.Food {
	f.searchCalls++
	return f.results
}

func (f *fakeNational) GetDetails(_ context.Context, id string) *models.Food {
	return f.details[id]
}

type fakePackaged struct {
	results      []models.Food
	byBarcode    map[string]*models.Food
	searchCalls  int
	barcodeCalls int
}

func (f *fakePackaged) Search(_ context.Context, _ string, _ int) []models.Food {
	f.searchCalls++
	return f.results
}

func (f *fakePackaged) GetByBarcode(_ context.Context, barcode string) *models.Food {
	f.barcodeCalls++
	return f.byBarcode[barcode]
}

func (f *fakePackaged) GetDetails(ctx context.Context, id string) *models.Food {
	return f.GetByBarcode(ctx, id)
}

type fakeManualFinder struct {
	entries map[uint]map[string]*models.ManualFood
}

func (f *fakeManualFinder) FindByBarcode(userID uint, barcode string) (*models.ManualFood, error) {
	return f.entries[userID][barcode], nil
}

func namedFoods(source string, names ...string) []models.Food {
	foods := make([]models.Food, 0, len(names))
	for _, n := range names {
		foods = append(foods, models.Food{ID: n, Name: n, Calories: 100, Source: source})
	}
	return foods
}

func appErrCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestResolverSearchNationalResultsComeFirst(t *testing.T) {
	national := &fakeNational{results: namedFoods(models.SourceCiqual, "a", "b")}
	packaged := &fakePackaged{results: namedFoods(models.SourceOpenFoodFacts, "c", "d")}
	r := NewFoodResolver(national, packaged, &fakeManualFinder{}, testLogger())

	foods, err := r.Search(context.Background(), "q", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(foods) != 4 {
		t.Fatalf("expected 4 results, got %d", len(foods))
	}
	for i, want := range []string{models.SourceCiqual, models.SourceCiqual, models.SourceOpenFoodFacts, models.SourceOpenFoodFacts} {
		if foods[i].Source != want {
			t.Fatalf("result %d: expected source %s, got %s", i, want, foods[i].Source)
		}
	}
	if national.searchCalls != 1 || packaged.searchCalls != 1 {
		t.Fatalf("expected one call per provider, got %d/%d", national.searchCalls, packaged.searchCalls)
	}
}

func TestResolverSearchTruncatesToLimit(t *testing.T) {
	national := &fakeNational{results: namedFoods(models.SourceCiqual, "a", "b", "c")}
	packaged := &fakePackaged{results: namedFoods(models.SourceOpenFoodFacts, "d", "e")}
	r := NewFoodResolver(national, packaged, &fakeManualFinder{}, testLogger())

	foods, err := r.Search(context.Background(), "q", 4)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(foods) != 4 {
		t.Fatalf("expected limit truncation to 4, got %d", len(foods))
	}
	// The packaged tail is what gets cut.
	if foods[3].Name != "d" {
		t.Fatalf("expected last kept result %q, got %q", "d", foods[3].Name)
	}
}

func TestResolverGetDetailsRejectsUnknownSource(t *testing.T) {
	r := NewFoodResolver(&fakeNational{}, &fakePackaged{}, &fakeManualFinder{}, testLogger())

	_, err := r.GetDetails(context.Background(), "1", "usda")
	if err == nil {
		t.Fatal("expected error for unknown source")
	}
	if code := appErrCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestResolverGetDetailsMissIsNotFound(t *testing.T) {
	r := NewFoodResolver(&fakeNational{}, &fakePackaged{}, &fakeManualFinder{}, testLogger())

	_, err := r.GetDetails(context.Background(), "1", models.SourceCiqual)
	if err == nil {
		t.Fatal("expected error for missing food")
	}
	if code := appErrCode(t, err); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestResolverGetDetailsRoutesBySource(t *testing.T) {
	national := &fakeNational{details: map[string]*models.Food{
		"20001": {ID: "20001", Name: "Pomme", Source: models.SourceCiqual},
	}}
	packaged := &fakePackaged{byBarcode: map[string]*models.Food{
		"3017620422003": {ID: "3017620422003", Name: "Nutella", Source: models.SourceOpenFoodFacts},
	}}
	r := NewFoodResolver(national, packaged, &fakeManualFinder{}, testLogger())

	food, err := r.GetDetails(context.Background(), "20001", models.SourceCiqual)
	if err != nil || food.Name != "Pomme" {
		t.Fatalf("ciqual route: got %+v, %v", food, err)
	}
	food, err = r.GetDetails(context.Background(), "3017620422003", models.SourceOpenFoodFacts)
	if err != nil || food.Name != "Nutella" {
		t.Fatalf("off route: got %+v, %v", food, err)
	}
}

func TestResolveBarcodeRequiresBarcode(t *testing.T) {
	r := NewFoodResolver(&fakeNational{}, &fakePackaged{}, &fakeManualFinder{}, testLogger())

	_, err := r.ResolveBarcode(context.Background(), 1, "")
	if code := appErrCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty barcode, got %d", code)
	}
}

func TestResolveBarcodeManualEntryWinsForItsOwner(t *testing.T) {
	packaged := &fakePackaged{byBarcode: map[string]*models.Food{
		"123": {ID: "123", Name: "Store cookie", Source: models.SourceOpenFoodFacts},
	}}
	manual := &fakeManualFinder{entries: map[uint]map[string]*models.ManualFood{
		1: {"123": {Name: "Grandma's cookie", Calories: 480, Barcode: "123"}},
	}}
	r := NewFoodResolver(&fakeNational{}, packaged, manual, testLogger())

	// User 1 owns a manual entry for this barcode.
	food, err := r.ResolveBarcode(context.Background(), 1, "123")
	if err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if food.Source != models.SourceManual || food.Name != "Grandma's cookie" {
		t.Fatalf("expected manual entry to win, got %+v", food)
	}
	if packaged.barcodeCalls != 0 {
		t.Fatalf("expected no external call on manual hit, got %d", packaged.barcodeCalls)
	}

	// User 2 has no manual entry and falls through to the external source.
	food, err = r.ResolveBarcode(context.Background(), 2, "123")
	if err != nil {
		t.Fatalf("other user lookup: %v", err)
	}
	if food.Source != models.SourceOpenFoodFacts {
		t.Fatalf("expected external fallthrough, got %+v", food)
	}
}

func TestResolveBarcodeAnonymousSkipsManualLookup(t *testing.T) {
	packaged := &fakePackaged{byBarcode: map[string]*models.Food{
		"123": {ID: "123", Name: "Store cookie", Source: models.SourceOpenFoodFacts},
	}}
	r := NewFoodResolver(&fakeNational{}, packaged, nil, testLogger())

	food, err := r.ResolveBarcode(context.Background(), 0, "123")
	if err != nil {
		t.Fatalf("anonymous lookup: %v", err)
	}
	if food.Source != models.SourceOpenFoodFacts {
		t.Fatalf("expected external result, got %+v", food)
	}
}

func TestResolveBarcodeMissIsNotFound(t *testing.T) {
	r := NewFoodResolver(&fakeNational{}, &fakePackaged{}, &fakeManualFinder{}, testLogger())

	_, err := r.ResolveBarcode(context.Background(), 1, "000")
	if code := appErrCode(t, err); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}
