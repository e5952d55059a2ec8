package collector

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/bunkerwatch/internal/config"
	"github.com/seenimoa/bunkerwatch/internal/scrape"
	"github.com/seenimoa/bunkerwatch/internal/storage"
	"github.com/seenimoa/bunkerwatch/pkg/models"
)

// stubFetcher serves canned HTML per URL; URLs in failURLs error instead.
type stubFetcher struct {
	docs     map[string]string
	failURLs map[string]bool
	calls    []string
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (*goquery.Document, error) {
	s.calls = append(s.calls, url)
	if s.failURLs[url] {
		return nil, errors.New("simulated fetch failure")
	}
	html, ok := s.docs[url]
	if !ok {
		return nil, errors.New("no fixture for " + url)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

const baseURL = "http://base/prices"

func fuelPage(fuel, port, price string) string {
	return `<table class="price-table ` + fuel + `"><tbody>
		<tr>
			<th class="port"><a>` + port + `</a></th>
			<td>` + price + `</td><td>1.0</td><td>2.0</td><td>3.0</td><td>4.0</td>
		</tr>
	</tbody></table>`
}

const mainPage = `<html><body>
<div id="block_1053"><table class="price-table sm"><tbody>
	<tr>
		<th class="port">Singapore</th>
		<td class="price">655.0</td><td class="price">701.5</td><td class="price">340.0</td>
	</tr>
</tbody></table></div>
<div id="block_1070"><table class="price-table sm"><tbody>
	<tr>
		<th class="port">EUA</th>
		<td class="price">75.2</td><td class="price">81.9</td><td class="price">255.1</td>
		<td class="price">262.3</td><td class="price">249.8</td>
	</tr>
</tbody></table></div>
</body></html>`

// recordingSink captures Append calls in order.
type recordingSink struct {
	appends []appendCall
	err     error
}

type appendCall struct {
	path   string
	header []string
	rows   [][]string
}

func (s *recordingSink) Append(path string, header []string, rows [][]string) error {
	s.appends = append(s.appends, appendCall{path, header, rows})
	return s.err
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	}
}

func newTestCollector(f *stubFetcher, sink storage.Sink, dir string) *Collector {
	s := scrape.New(f, baseURL, "block_1053", "block_1070")
	output := config.OutputConfig{
		Dir:          dir,
		FuelFile:     "fuel.csv",
		MethanolFile: "meoh.csv",
		EUAFile:      "eua.csv",
	}
	return New(s, sink, output, models.FuelTypes, WithClock(fixedClock()))
}

func TestRunFullCycle(t *testing.T) {
	f := &stubFetcher{docs: map[string]string{
		baseURL:            mainPage,
		baseURL + "#VLSFO": fuelPage("VLSFO", "Singapore", "563.5"),
		baseURL + "#MGO":   fuelPage("MGO", "Rotterdam", "745.0"),
		baseURL + "#IFO380": fuelPage("IFO380", "Fujairah", "480.0"),
	}}
	sink := &recordingSink{}

	summary, err := newTestCollector(f, sink, t.TempDir()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if summary.FuelPrices != 3 || summary.MethanolPrices != 1 || summary.ComplianceCosts != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Total() != 5 {
		t.Fatalf("total = %d, want 5", summary.Total())
	}
	if summary.Timestamp != "01/02/2026 12:00" {
		t.Fatalf("timestamp = %q", summary.Timestamp)
	}

	// One append per category, fuel first.
	if len(sink.appends) != 3 {
		t.Fatalf("got %d sink appends, want 3", len(sink.appends))
	}
	fuelRows := sink.appends[0].rows
	if len(fuelRows) != 3 {
		t.Fatalf("fuel rows = %d, want 3", len(fuelRows))
	}

	// Fuel grades persist in fixed order VLSFO, MGO, IFO380.
	wantOrder := []string{"VLSFO", "MGO", "IFO380"}
	for i, want := range wantOrder {
		if fuelRows[i][1] != want {
			t.Errorf("fuel row %d grade = %q, want %q", i, fuelRows[i][1], want)
		}
	}

	// Every row in every category carries the identical cycle timestamp.
	for _, call := range sink.appends {
		for _, row := range call.rows {
			if row[0] != "01/02/2026 12:00" {
				t.Errorf("row in %s has timestamp %q", call.path, row[0])
			}
		}
	}
}

func TestRunMissingFuelTableDoesNotBlockSiblings(t *testing.T) {
	f := &stubFetcher{docs: map[string]string{
		baseURL: mainPage,
		// VLSFO page is served but has no price table.
		baseURL + "#VLSFO":  `<html><body><p>temporarily unavailable</p></body></html>`,
		baseURL + "#MGO":    fuelPage("MGO", "Rotterdam", "745.0"),
		baseURL + "#IFO380": fuelPage("IFO380", "Fujairah", "480.0"),
	}}
	sink := &recordingSink{}

	summary, err := newTestCollector(f, sink, t.TempDir()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if summary.FuelPrices != 2 {
		t.Fatalf("fuel prices = %d, want 2 (MGO + IFO380 only)", summary.FuelPrices)
	}
	fuelRows := sink.appends[0].rows
	for _, row := range fuelRows {
		if row[1] == "VLSFO" {
			t.Error("VLSFO record present despite missing table")
		}
	}
	// The other categories still produced data.
	if summary.MethanolPrices != 1 || summary.ComplianceCosts != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestRunFetchFailureIsolatedPerCategory(t *testing.T) {
	f := &stubFetcher{
		docs: map[string]string{
			baseURL:             mainPage,
			baseURL + "#MGO":    fuelPage("MGO", "Rotterdam", "745.0"),
			baseURL + "#IFO380": fuelPage("IFO380", "Fujairah", "480.0"),
		},
		failURLs: map[string]bool{baseURL + "#VLSFO": true},
	}
	sink := &recordingSink{}

	summary, err := newTestCollector(f, sink, t.TempDir()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if summary.FuelPrices != 2 {
		t.Fatalf("fuel prices = %d, want 2", summary.FuelPrices)
	}
	if summary.MethanolPrices != 1 || summary.ComplianceCosts != 1 {
		t.Fatalf("sibling categories affected: %+v", summary)
	}
}

func TestRunMainPageFailureEmptiesSharedCategories(t *testing.T) {
	f := &stubFetcher{
		docs: map[string]string{
			baseURL + "#VLSFO":  fuelPage("VLSFO", "Singapore", "563.5"),
			baseURL + "#MGO":    fuelPage("MGO", "Rotterdam", "745.0"),
			baseURL + "#IFO380": fuelPage("IFO380", "Fujairah", "480.0"),
		},
		failURLs: map[string]bool{baseURL: true},
	}
	sink := &recordingSink{}

	summary, err := newTestCollector(f, sink, t.TempDir()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if summary.MethanolPrices != 0 || summary.ComplianceCosts != 0 {
		t.Fatalf("summary = %+v, want empty methanol and EUA", summary)
	}
	if summary.FuelPrices != 3 {
		t.Fatalf("fuel prices = %d, want 3 (fuel categories unaffected)", summary.FuelPrices)
	}
}

func TestRunSinkErrorPropagates(t *testing.T) {
	f := &stubFetcher{docs: map[string]string{
		baseURL:             mainPage,
		baseURL + "#VLSFO":  fuelPage("VLSFO", "Singapore", "563.5"),
		baseURL + "#MGO":    fuelPage("MGO", "Rotterdam", "745.0"),
		baseURL + "#IFO380": fuelPage("IFO380", "Fujairah", "480.0"),
	}}
	sinkErr := errors.New("disk full")
	sink := &recordingSink{err: sinkErr}

	_, err := newTestCollector(f, sink, t.TempDir()).Run(context.Background())
	if !errors.Is(err, sinkErr) {
		t.Fatalf("got error %v, want sink error", err)
	}
}

func TestRunWritesCSVFiles(t *testing.T) {
	dir := t.TempDir()
	f := &stubFetcher{docs: map[string]string{
		baseURL:             mainPage,
		baseURL + "#VLSFO":  fuelPage("VLSFO", "Singapore", "563.5"),
		baseURL + "#MGO":    fuelPage("MGO", "Rotterdam", "745.0"),
		baseURL + "#IFO380": fuelPage("IFO380", "Fujairah", "480.0"),
	}}

	c := newTestCollector(f, storage.CSVSink{}, dir)
	if _, err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	fuelFile, err := os.Open(dir + "/fuel.csv")
	if err != nil {
		t.Fatalf("fuel sink not written: %v", err)
	}
	defer fuelFile.Close()

	rows, err := csv.NewReader(fuelFile).ReadAll()
	if err != nil {
		t.Fatalf("read fuel csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("fuel csv has %d rows, want header + 3", len(rows))
	}
	for i, col := range models.FuelPriceHeader {
		if rows[0][i] != col {
			t.Errorf("header column %d = %q, want %q", i, rows[0][i], col)
		}
	}
	if rows[1][2] != "Singapore" || rows[1][3] != "563.5" {
		t.Errorf("first data row = %v", rows[1])
	}

	for _, name := range []string{"meoh.csv", "eua.csv"} {
		if _, err := os.Stat(dir + "/" + name); err != nil {
			t.Errorf("sink %s not written: %v", name, err)
		}
	}
}
