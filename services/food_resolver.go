package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/logger"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/models"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/utils"
)

// NationalSource is the text-search-oriented nutrition provider.
type NationalSource interface {
	Search(ctx context.Context, query string, limit int) []models.Food
	GetDetails(ctx context.Context, id string) *models.Food
}

// PackagedSource is the barcode-oriented nutrition provider.
type PackagedSource interface {
	Search(ctx context.Context, query string, limit int) []models.Food
	GetByBarcode(ctx context.Context, barcode string) *models.Food
	GetDetails(ctx context.Context, id string) *models.Food
}

// ManualFoodFinder looks up a user's own food entries by barcode.
type ManualFoodFinder interface {
	FindByBarcode(userID uint, barcode string) (*models.ManualFood, error)
}

// FoodResolver orchestrates the cache-backed national adapter, the packaged
// product adapter and the user's manual foods to answer food queries.
type FoodResolver struct {
	national NationalSource
	packaged PackagedSource
	manual   ManualFoodFinder
	log      *logger.Logger
}

func NewFoodResolver(national NationalSource, packaged PackagedSource, manual ManualFoodFinder, log *logger.Logger) *FoodResolver {
	return &FoodResolver{
		national: national,
		packaged: packaged,
		manual:   manual,
		log:      log.With("service", "FoodResolver"),
	}
}

// Search queries both providers concurrently and concatenates the results,
// national-database hits first, truncated to limit. The same food appearing
// from both providers is not deduplicated; that mirrors the product's
// observed behavior and is documented rather than fixed here.
func (r *FoodResolver) Search(ctx context.Context, query string, limit int) ([]models.Food, error) {
	var nationalResults, packagedResults []models.Food

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		nationalResults = r.national.Search(gctx, query, limit)
		return nil
	})
	g.Go(func() error {
		packagedResults = r.packaged.Search(gctx, query, limit)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	combined := make([]models.Food, 0, len(nationalResults)+len(packagedResults))
	combined = append(combined, nationalResults...)
	combined = append(combined, packagedResults...)
	if len(combined) > limit {
		combined = combined[:limit]
	}
	return combined, nil
}

// GetDetails routes an id lookup to the matching adapter. An unknown source
// is an input error, not a lookup miss.
func (r *FoodResolver) GetDetails(ctx context.Context, id, source string) (*models.Food, error) {
	var food *models.Food
	switch source {
	case models.SourceCiqual:
		food = r.national.GetDetails(ctx, id)
	case models.SourceOpenFoodFacts:
		food = r.packaged.GetDetails(ctx, id)
	default:
		return nil, utils.BadRequest("invalid source")
	}

	if food == nil {
		return nil, utils.NotFound("food not found")
	}
	return food, nil
}

// ResolveBarcode answers a barcode scan. The user's own manual entries take
// precedence over any external source; userID 0 means no authenticated user
// and skips the manual lookup.
func (r *FoodResolver) ResolveBarcode(ctx context.Context, userID uint, barcode string) (*models.Food, error) {
	if barcode == "" {
		return nil, utils.BadRequest("barcode required")
	}

	if userID != 0 {
		manual, err := r.manual.FindByBarcode(userID, barcode)
		if err != nil {
			return nil, err
		}
		if manual != nil {
			food := manual.Food()
			return &food, nil
		}
	}

	food := r.packaged.GetByBarcode(ctx, barcode)
	if food == nil {
		return nil, utils.NotFound("product not found")
	}
	return food, nil
}
