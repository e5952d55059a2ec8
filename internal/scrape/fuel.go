package scrape

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/bunkerwatch/internal/logger"
	"github.com/seenimoa/bunkerwatch/pkg/models"
)

// FuelPrices fetches the page for one fuel grade and extracts its price
// rows in document order. A fetch failure or missing table degrades the
// grade to an empty result so the remaining grades still run.
func (s *Scraper) FuelPrices(ctx context.Context, fuel models.FuelType) Result[models.FuelPriceRecord] {
	// The grade rides along as a navigation fragment, mirroring how the
	// site links its per-fuel tables.
	url := fmt.Sprintf("%s#%s", s.baseURL, fuel)

	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		logger.L().Warn().Str("fuel", string(fuel)).Err(err).Msg("fuel price fetch failed, category empty")
		return fetchFailed[models.FuelPriceRecord](err)
	}

	table, found := fuelTable(doc, fuel)
	if !found {
		logger.L().Warn().Str("fuel", string(fuel)).Msg("price table not found")
		return blockMissing[models.FuelPriceRecord]("price table not found for " + string(fuel))
	}

	var records []models.FuelPriceRecord
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		port := portName(row)
		if port == "" {
			return
		}

		cells := row.Find("td")
		if cells.Length() < 5 {
			logger.L().Debug().
				Str("fuel", string(fuel)).
				Str("port", port).
				Int("cells", cells.Length()).
				Msg("skipping short row")
			return
		}

		// Columns in fixed order: price, change, high, low, spread.
		records = append(records, models.FuelPriceRecord{
			FuelType:   fuel,
			Port:       port,
			PriceUSDMT: cleanNumeric(cells.Eq(0).Text()),
			Change:     cleanNumeric(cells.Eq(1).Text()),
			High:       cleanNumeric(cells.Eq(2).Text()),
			Low:        cleanNumeric(cells.Eq(3).Text()),
			Spread:     cleanNumeric(cells.Eq(4).Text()),
		})
	})

	logger.L().Info().Str("fuel", string(fuel)).Int("records", len(records)).Msg("fuel prices extracted")
	return ok(records)
}
