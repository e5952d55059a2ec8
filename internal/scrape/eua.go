package scrape

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/bunkerwatch/internal/logger"
	"github.com/seenimoa/bunkerwatch/pkg/models"
)

// ComplianceCosts extracts the single EUA (EU ETS) compliance-cost row from
// the pre-fetched main page. The five fields come from one row atomically:
// a short or missing row yields zero records, never a partial one.
func (s *Scraper) ComplianceCosts(doc *goquery.Document) Result[models.ComplianceCostRecord] {
	table, found := blockTable(doc, s.euaBlock)
	if !found {
		logger.L().Warn().Str("block", s.euaBlock).Msg("EUA price block not found")
		return blockMissing[models.ComplianceCostRecord]("EUA block " + s.euaBlock + " not found")
	}

	row := table.Find("tbody tr").First()
	if row.Length() == 0 {
		logger.L().Warn().Str("block", s.euaBlock).Msg("EUA table has no data row")
		return ok[models.ComplianceCostRecord](nil)
	}

	cells := row.Find("td.price")
	if cells.Length() < 5 {
		logger.L().Warn().Int("cells", cells.Length()).Msg("EUA row too short, skipping")
		return ok[models.ComplianceCostRecord](nil)
	}

	// Columns in fixed order: EUR, USD, then VLSFO/MGO/HFO equivalents.
	record := models.ComplianceCostRecord{
		EUAEUR:        cleanNumeric(cells.Eq(0).Text()),
		EUAUSD:        cleanNumeric(cells.Eq(1).Text()),
		EUAVLSFOUSDMT: cleanNumeric(cells.Eq(2).Text()),
		EUAMGOUSDMT:   cleanNumeric(cells.Eq(3).Text()),
		EUAHFOUSDMT:   cleanNumeric(cells.Eq(4).Text()),
	}

	logger.L().Info().Msg("EUA compliance costs extracted")
	return ok([]models.ComplianceCostRecord{record})
}
