package models

import "strconv"

// FuelType identifies a bunker fuel grade tracked on the prices page.
type FuelType string

const (
	VLSFO  FuelType = "VLSFO"
	MGO    FuelType = "MGO"
	IFO380 FuelType = "IFO380"
)

// FuelTypes is the fixed iteration order for a scrape cycle.
var FuelTypes = []FuelType{VLSFO, MGO, IFO380}

// CSV headers, one per category. The sink files are append-only and carry
// no schema version, so column order must stay identical across cycles.
var (
	FuelPriceHeader      = []string{"timestamp", "fuel_type", "port", "price_usd_mt", "change", "high", "low", "spread"}
	MethanolHeader       = []string{"timestamp", "port", "gray_methanol_usd_mt", "meoh_vlsfoe_usd_mte", "meoh_mgoe_usd_mte"}
	ComplianceCostHeader = []string{"timestamp", "eua_eur", "eua_usd", "eua_vlsfo_usd_mt", "eua_mgo_usd_mt", "eua_hfo_usd_mt"}
)

// FuelPriceRecord is one port's quote for a single fuel grade.
type FuelPriceRecord struct {
	Timestamp  string   `json:"timestamp"`
	FuelType   FuelType `json:"fuel_type"`
	Port       string   `json:"port"`
	PriceUSDMT float64  `json:"price_usd_mt"`
	Change     float64  `json:"change"`
	High       float64  `json:"high"`
	Low        float64  `json:"low"`
	Spread     float64  `json:"spread"`
}

// Row returns the record in FuelPriceHeader column order.
func (r FuelPriceRecord) Row() []string {
	return []string{
		r.Timestamp,
		string(r.FuelType),
		r.Port,
		ftoa(r.PriceUSDMT),
		ftoa(r.Change),
		ftoa(r.High),
		ftoa(r.Low),
		ftoa(r.Spread),
	}
}

// MethanolRecord is one port's methanol bunker quote, including the
// conventional-fuel equivalent prices per metric tonne equivalent.
type MethanolRecord struct {
	Timestamp          string  `json:"timestamp"`
	Port               string  `json:"port"`
	GrayMethanolUSDMT  float64 `json:"gray_methanol_usd_mt"`
	MeOHVLSFOeUSDMTe   float64 `json:"meoh_vlsfoe_usd_mte"`
	MeOHMGOeUSDMTe     float64 `json:"meoh_mgoe_usd_mte"`
}

// Row returns the record in MethanolHeader column order.
func (r MethanolRecord) Row() []string {
	return []string{
		r.Timestamp,
		r.Port,
		ftoa(r.GrayMethanolUSDMT),
		ftoa(r.MeOHVLSFOeUSDMTe),
		ftoa(r.MeOHMGOeUSDMTe),
	}
}

// ComplianceCostRecord is the EU ETS (EUA) compliance cost row: the
// allowance price in EUR and USD plus per-fuel cost equivalents.
// At most one is produced per cycle.
type ComplianceCostRecord struct {
	Timestamp     string  `json:"timestamp"`
	EUAEUR        float64 `json:"eua_eur"`
	EUAUSD        float64 `json:"eua_usd"`
	EUAVLSFOUSDMT float64 `json:"eua_vlsfo_usd_mt"`
	EUAMGOUSDMT   float64 `json:"eua_mgo_usd_mt"`
	EUAHFOUSDMT   float64 `json:"eua_hfo_usd_mt"`
}

// Row returns the record in ComplianceCostHeader column order.
func (r ComplianceCostRecord) Row() []string {
	return []string{
		r.Timestamp,
		ftoa(r.EUAEUR),
		ftoa(r.EUAUSD),
		ftoa(r.EUAVLSFOUSDMT),
		ftoa(r.EUAMGOUSDMT),
		ftoa(r.EUAHFOUSDMT),
	}
}

// ftoa formats a float with the shortest representation that round-trips.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
