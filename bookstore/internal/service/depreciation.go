package service

import (
	"context"
	"math"

	"github.com/Astemirdum/bookstore-service/bookstore/internal/errs"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/model"
)

// depreciationBaseValue is the starting value of every asset in the
// depreciation formula. The asset's own ApproxValue does not take part.
const depreciationBaseValue = 1000.0

func (s *Service) CalculateDepreciation(_ context.Context, payload model.CalculateDepreciationPayload) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, ok := s.repo.GetBookAsset(payload.BookAssetID)
	if !ok {
		return 0, errs.NotFound("Book asset not found")
	}
	return depreciate(asset.DepreciationRate, payload.Years), nil
}

func depreciate(ratePercent float64, years uint64) float64 {
	return depreciationBaseValue * math.Pow(1-ratePercent/100, float64(years))
}
