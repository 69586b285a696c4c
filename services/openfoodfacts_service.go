package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/logger"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/models"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/utils"
)

const offUserAgent = "ScanMyCarbs/1.0"

// OpenFoodFactsService is the packaged-product adapter. Transport failures
// degrade to empty/not-found results; they are logged, never returned.
type OpenFoodFactsService struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

func NewOpenFoodFactsService(log *logger.Logger) *OpenFoodFactsService {
	return &OpenFoodFactsService{
		baseURL: "https://world.openfoodfacts.org/api/v2",
		client:  &http.Client{Timeout: 5 * time.Second},
		log:     log.With("service", "OpenFoodFactsService"),
	}
}

type offSearchResponse struct {
	Products []map[string]interface{} `json:"products"`
}

type offProductResponse struct {
	Status  int                    `json:"status"`
	Product map[string]interface{} `json:"product"`
}

// Search queries the free-text search endpoint. Returns an empty slice on
// any transport or decoding failure.
func (s *OpenFoodFactsService) Search(ctx context.Context, query string, limit int) []models.Food {
	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("page_size", fmt.Sprintf("%d", limit))
	params.Set("fields", "code,product_name,brands,nutriments")
	params.Set("json", "1")

	var sr offSearchResponse
	if err := s.getJSON(ctx, s.baseURL+"/search?"+params.Encode(), &sr); err != nil {
		s.log.Warn("search failed", "query", query, "error", err)
		return []models.Food{}
	}

	foods := make([]models.Food, 0, len(sr.Products))
	for _, p := range sr.Products {
		if food := parseOFFProduct(p); food != nil {
			foods = append(foods, *food)
		}
	}
	return foods
}

// SearchAdvancedOptions narrows an advanced search by OFF tag facets.
type SearchAdvancedOptions struct {
	Brands     string
	Categories string
	Labels     string
}

// SearchAdvanced is Search with tag filters and a fixed page size.
func (s *OpenFoodFactsService) SearchAdvanced(ctx context.Context, query string, opts SearchAdvancedOptions) []models.Food {
	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("page_size", "20")
	params.Set("fields", "code,product_name,brands,nutriments")
	params.Set("json", "1")
	if opts.Brands != "" {
		params.Set("brands_tags", opts.Brands)
	}
	if opts.Categories != "" {
		params.Set("categories_tags", opts.Categories)
	}
	if opts.Labels != "" {
		params.Set("labels_tags", opts.Labels)
	}

	var sr offSearchResponse
	if err := s.getJSON(ctx, s.baseURL+"/search?"+params.Encode(), &sr); err != nil {
		s.log.Warn("advanced search failed", "query", query, "error", err)
		return []models.Food{}
	}

	foods := make([]models.Food, 0, len(sr.Products))
	for _, p := range sr.Products {
		if food := parseOFFProduct(p); food != nil {
			foods = append(foods, *food)
		}
	}
	return foods
}

// GetByBarcode looks a product up by its barcode. Nil means not found,
// whether the product is absent or the provider is unreachable.
func (s *OpenFoodFactsService) GetByBarcode(ctx context.Context, barcode string) *models.Food {
	params := url.Values{}
	params.Set("fields", "code,product_name,brands,nutriments")

	var pr offProductResponse
	u := fmt.Sprintf("%s/product/%s?%s", s.baseURL, url.PathEscape(barcode), params.Encode())
	if err := s.getJSON(ctx, u, &pr); err != nil {
		s.log.Warn("barcode lookup failed", "barcode", barcode, "error", err)
		return nil
	}
	if pr.Product == nil {
		return nil
	}
	return parseOFFProduct(pr.Product)
}

// GetDetails resolves a product by id. OFF product ids are barcodes.
func (s *OpenFoodFactsService) GetDetails(ctx context.Context, id string) *models.Food {
	return s.GetByBarcode(ctx, id)
}

// HealthCheck probes the search endpoint with a short timeout.
func (s *OpenFoodFactsService) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	params := url.Values{}
	params.Set("search_terms", "test")
	params.Set("page_size", "1")

	var sr offSearchResponse
	return s.getJSON(ctx, s.baseURL+"/search?"+params.Encode(), &sr) == nil
}

func (s *OpenFoodFactsService) getJSON(ctx context.Context, rawURL string, out interface{}) error {
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
		return fmt.Errorf("openfoodfacts API error %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// parseOFFProduct normalizes one OFF product into canonical form. A record
// with no display name and all-zero macros is invalid and dropped.
func parseOFFProduct(product map[string]interface{}) *models.Food {
	code := utils.StringField(product, "code", "_id")
	name := utils.StringField(product, "product_name", "product_name_fr")
	brand := utils.StringField(product, "brands")

	nutriments, _ := product["nutriments"].(map[string]interface{})

	calories := nonNegative(utils.FloatField(nutriments, "energy-kcal_100g", "energy-kcal"))
	carbs := nonNegative(utils.FloatField(nutriments, "carbohydrates_100g", "carbohydrates"))
	protein := nonNegative(utils.FloatField(nutriments, "proteins_100g", "proteins"))
	fat := nonNegative(utils.FloatField(nutriments, "fat_100g", "fat"))

	if name == "" && calories == 0 && carbs == 0 && protein == 0 && fat == 0 {
		return nil
	}

	displayName := name
	if name != "" && brand != "" {
		displayName = name + " - " + brand
	}

	return &models.Food{
		ID:       code,
		Name:     displayName,
		Brand:    brand,
		Calories: calories,
		Carbs:    carbs,
		Protein:  protein,
		Fat:      fat,
		Source:   models.SourceOpenFoodFacts,
		Barcode:  code,
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
