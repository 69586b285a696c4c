package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/logger"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/models"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/utils"
)

// Ciqual nutrient constituent codes, per-100g basis.
const (
	ciqualCodeEnergyKcal = "328"
	ciqualCodeCarbs      = "31"
	ciqualCodeProtein    = "25"
	ciqualCodeFat        = "40"
)

// CiqualService is the national-database adapter. Lookups are cache-first:
// a cache hit skips the live call entirely, and every successful live result
// is written back to the cache.
type CiqualService struct {
	baseURL string
	client  *http.Client
	cache   *FoodCacheService
	log     *logger.Logger
}

func NewCiqualService(cache *FoodCacheService, log *logger.Logger) *CiqualService {
	return &CiqualService{
		baseURL: "https://ciqual.anses.fr/cms/api/v1",
		client:  &http.Client{Timeout: 5 * time.Second},
		cache:   cache,
		log:     log.With("service", "CiqualService"),
	}
}

// Search resolves a free-text query. Cached matches short-circuit the live
// call; on upstream failure the (empty) cache result is all the caller gets.
func (s *CiqualService) Search(ctx context.Context, query string, limit int) []models.Food {
	cached, err := s.cache.SearchByName(query, limit)
	if err != nil {
		s.log.Warn("cache search failed", "query", query, "error", err)
	}
	if len(cached) > 0 {
		foods := make([]models.Food, 0, len(cached))
		for _, entry := range cached {
			foods = append(foods, entry.Food())
		}
		return foods
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))

	var items []map[string]interface{}
	if err := s.getJSON(ctx, s.baseURL+"/search?"+params.Encode(), &items); err != nil {
		s.log.Warn("search failed", "query", query, "error", err)
		return []models.Food{}
	}

	foods := make([]models.Food, 0, limit)
	for _, item := range items {
		if len(foods) >= limit {
			break
		}
		food := parseCiqualFood(item)
		if food == nil {
			continue
		}
		foods = append(foods, *food)
		if err := s.cache.Upsert(*food); err != nil {
			s.log.Warn("cache upsert failed", "id", food.ID, "error", err)
		}
	}
	return foods
}

// GetDetails resolves a single food by its Ciqual code, cache first.
// Nil means not found or upstream failure.
func (s *CiqualService) GetDetails(ctx context.Context, id string) *models.Food {
	entry, err := s.cache.FindByExternalID(models.SourceCiqual, id)
	if err != nil {
		s.log.Warn("cache lookup failed", "id", id, "error", err)
	}
	if entry != nil {
		food := entry.Food()
		return &food
	}

	var item map[string]interface{}
	if err := s.getJSON(ctx, s.baseURL+"/food/"+url.PathEscape(id), &item); err != nil {
		s.log.Warn("details lookup failed", "id", id, "error", err)
		return nil
	}

	food := parseCiqualFood(item)
	if food == nil {
		return nil
	}
	if err := s.cache.Upsert(*food); err != nil {
		s.log.Warn("cache upsert failed", "id", food.ID, "error", err)
	}
	return food
}

// CommonFoods is a small built-in list for first-launch suggestions, before
// the cache has anything in it.
func (s *CiqualService) CommonFoods() []models.Food {
	common := []models.Food{
		{ID: "pain_blanc", Name: "White bread", Calories: 265, Carbs: 49, Protein: 9, Fat: 3.5},
		{ID: "riz_blanc", Name: "Cooked white rice", Calories: 130, Carbs: 28, Protein: 2.7, Fat: 0.3},
		{ID: "pates", Name: "Cooked pasta", Calories: 131, Carbs: 25, Protein: 5, Fat: 1},
		{ID: "pomme", Name: "Apple", Calories: 52, Carbs: 14, Protein: 0.3, Fat: 0.2},
		{ID: "banane", Name: "Banana", Calories: 89, Carbs: 23, Protein: 1.1, Fat: 0.3},
		{ID: "poulet", Name: "Chicken breast", Calories: 165, Carbs: 0, Protein: 31, Fat: 3.6},
		{ID: "boeuf", Name: "Beef steak", Calories: 250, Carbs: 0, Protein: 26, Fat: 15},
		{ID: "lait", Name: "Semi-skimmed milk", Calories: 46, Carbs: 4.8, Protein: 3.2, Fat: 1.5},
		{ID: "yaourt", Name: "Plain yogurt", Calories: 61, Carbs: 4, Protein: 3.5, Fat: 3.3},
		{ID: "fromage", Name: "Emmental cheese", Calories: 382, Carbs: 1.6, Protein: 28, Fat: 29},
	}
	for i := range common {
		common[i].Source = models.SourceCiqual
	}
	return common
}

func (s *CiqualService) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", offUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ciqual API error %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// parseCiqualFood normalizes one Ciqual item. Nutrient values arrive as a
// constituent list keyed by numeric codes; field names vary by API version.
func parseCiqualFood(item map[string]interface{}) *models.Food {
	id := stringOrNumberField(item, "alim_code", "id")
	name := utils.StringField(item, "alim_nom_fr", "name")

	rawNutrients, ok := item["constituents"].([]interface{})
	if !ok {
		rawNutrients, _ = item["nutrients"].([]interface{})
	}

	var calories, carbs, protein, fat float64
	for _, raw := range rawNutrients {
		nutrient, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		code := stringOrNumberField(nutrient, "const_code", "code")
		value := nonNegative(utils.FloatField(nutrient, "teneur", "value"))

		switch code {
		case ciqualCodeEnergyKcal:
			calories = value
		case ciqualCodeCarbs:
			carbs = value
		case ciqualCodeProtein:
			protein = value
		case ciqualCodeFat:
			fat = value
		}
	}

	if name == "" && calories == 0 && carbs == 0 && protein == 0 && fat == 0 {
		return nil
	}

	return &models.Food{
		ID:       id,
		Name:     name,
		Calories: calories,
		Carbs:    carbs,
		Protein:  protein,
		Fat:      fat,
		Source:   models.SourceCiqual,
	}
}

// stringOrNumberField reads an identifier that some API versions report as a
// string and others as a number.
func stringOrNumberField(obj map[string]interface{}, keys ...string) string {
	if s := utils.StringField(obj, keys...); s != "" {
		return s
	}
	for _, k := range keys {
		if n, ok := obj[k].(float64); ok {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
	}
	return ""
}
