// Package collector orchestrates one scrape cycle: fetch, extract,
// timestamp, aggregate, persist. Categories run sequentially and are
// isolated from each other; the cycle always runs to completion even when
// individual categories come back empty.
package collector

import (
	"context"
	"time"

	"github.com/seenimoa/bunkerwatch/internal/config"
	"github.com/seenimoa/bunkerwatch/internal/logger"
	"github.com/seenimoa/bunkerwatch/internal/scrape"
	"github.com/seenimoa/bunkerwatch/internal/storage"
	"github.com/seenimoa/bunkerwatch/pkg/models"
	"github.com/seenimoa/bunkerwatch/pkg/utils"
)

// Collector runs scrape cycles against a single source.
type Collector struct {
	scraper   *scrape.Scraper
	sink      storage.Sink
	output    config.OutputConfig
	fuelTypes []models.FuelType
	now       func() time.Time
}

// Option configures the collector.
type Option func(*Collector)

// WithClock overrides the clock used to compute the cycle timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) { c.now = now }
}

// New creates a collector. fuelTypes sets the fixed iteration order for
// fuel-price extraction; pass models.FuelTypes for the standard order.
func New(s *scrape.Scraper, sink storage.Sink, output config.OutputConfig, fuelTypes []models.FuelType, opts ...Option) *Collector {
	c := &Collector{
		scraper:   s,
		sink:      sink,
		output:    output,
		fuelTypes: fuelTypes,
		now:       utils.NowUTC,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Summary reports the per-category and total record counts of one cycle.
type Summary struct {
	Timestamp       string
	FuelPrices      int
	MethanolPrices  int
	ComplianceCosts int
}

// Total returns the number of records persisted across all categories.
func (s Summary) Total() int {
	return s.FuelPrices + s.MethanolPrices + s.ComplianceCosts
}

// Run executes one full cycle. The timestamp is computed once up front and
// stamped onto every record so rows from all categories correlate. Category
// failures degrade to empty collections; Run only returns an error when a
// sink write fails. Sink writes are per-file with no cross-file
// transactionality, so a failing later write can leave earlier files
// already updated.
func (c *Collector) Run(ctx context.Context) (Summary, error) {
	timestamp := utils.CycleTimestamp(c.now())
	logger.L().Info().Str("timestamp", timestamp).Msg("starting scrape cycle")

	// Main page first: methanol and compliance costs share one document.
	var methanol scrape.Result[models.MethanolRecord]
	var compliance scrape.Result[models.ComplianceCostRecord]

	doc, err := c.scraper.MainPage(ctx)
	if err != nil {
		logger.L().Warn().Err(err).Msg("main page fetch failed, methanol and EUA categories empty")
		methanol = scrape.Result[models.MethanolRecord]{Status: scrape.StatusFetchFailed, Reason: err.Error()}
		compliance = scrape.Result[models.ComplianceCostRecord]{Status: scrape.StatusFetchFailed, Reason: err.Error()}
	} else {
		methanol = c.scraper.MethanolPrices(doc)
		compliance = c.scraper.ComplianceCosts(doc)
	}

	// Fuel grades in fixed order, each with its own fetch so one failing
	// grade does not block the others.
	var fuelPrices []models.FuelPriceRecord
	for _, fuel := range c.fuelTypes {
		res := c.scraper.FuelPrices(ctx, fuel)
		fuelPrices = append(fuelPrices, res.Records...)
	}

	for i := range fuelPrices {
		fuelPrices[i].Timestamp = timestamp
	}
	for i := range methanol.Records {
		methanol.Records[i].Timestamp = timestamp
	}
	for i := range compliance.Records {
		compliance.Records[i].Timestamp = timestamp
	}

	summary := Summary{
		Timestamp:       timestamp,
		FuelPrices:      len(fuelPrices),
		MethanolPrices:  methanol.Count(),
		ComplianceCosts: compliance.Count(),
	}

	if err := c.persist(fuelPrices, methanol.Records, compliance.Records); err != nil {
		return summary, err
	}

	logger.L().Info().
		Str("timestamp", timestamp).
		Int("fuel_prices", summary.FuelPrices).
		Int("methanol_prices", summary.MethanolPrices).
		Int("compliance_costs", summary.ComplianceCosts).
		Int("total", summary.Total()).
		Msg("scrape cycle complete")
	return summary, nil
}

// persist appends each non-empty category to its sink file.
func (c *Collector) persist(
	fuel []models.FuelPriceRecord,
	methanol []models.MethanolRecord,
	compliance []models.ComplianceCostRecord,
) error {
	fuelRows := make([][]string, 0, len(fuel))
	for _, r := range fuel {
		fuelRows = append(fuelRows, r.Row())
	}
	if err := c.sink.Append(c.output.FuelPath(), models.FuelPriceHeader, fuelRows); err != nil {
		return err
	}

	methanolRows := make([][]string, 0, len(methanol))
	for _, r := range methanol {
		methanolRows = append(methanolRows, r.Row())
	}
	if err := c.sink.Append(c.output.MethanolPath(), models.MethanolHeader, methanolRows); err != nil {
		return err
	}

	complianceRows := make([][]string, 0, len(compliance))
	for _, r := range compliance {
		complianceRows = append(complianceRows, r.Row())
	}
	return c.sink.Append(c.output.EUAPath(), models.ComplianceCostHeader, complianceRows)
}
