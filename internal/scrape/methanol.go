package scrape

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/bunkerwatch/internal/logger"
	"github.com/seenimoa/bunkerwatch/pkg/models"
)

// MethanolPrices extracts the methanol bunker price rows from the
// pre-fetched main page. The prices live in a named block rather than a
// per-fuel table.
func (s *Scraper) MethanolPrices(doc *goquery.Document) Result[models.MethanolRecord] {
	table, found := blockTable(doc, s.methanolBlock)
	if !found {
		logger.L().Warn().Str("block", s.methanolBlock).Msg("methanol price block not found")
		return blockMissing[models.MethanolRecord]("methanol block " + s.methanolBlock + " not found")
	}

	var records []models.MethanolRecord
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		port := portName(row)
		if port == "" {
			return
		}

		cells := row.Find("td.price")
		if cells.Length() < 3 {
			logger.L().Debug().Str("port", port).Int("cells", cells.Length()).Msg("skipping short methanol row")
			return
		}

		// Positional mapping: the page lists MEOH-VLSFOe, MEOH-MGOe,
		// Gray Methanol in that cell order. The indices are layout-
		// sensitive; do not reorder without re-verifying the markup.
		records = append(records, models.MethanolRecord{
			Port:              port,
			GrayMethanolUSDMT: cleanNumeric(cells.Eq(2).Text()),
			MeOHVLSFOeUSDMTe:  cleanNumeric(cells.Eq(0).Text()),
			MeOHMGOeUSDMTe:    cleanNumeric(cells.Eq(1).Text()),
		})
	})

	logger.L().Info().Int("records", len(records)).Msg("methanol prices extracted")
	return ok(records)
}
