package collector_test

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	. "github.com/wayming/fdc/collector"
)

func TestBuildRecords(t *testing.T) {
	bars := []Bar{
		{
			Date:       "2024-01-02",
			Open:       Float(187.15),
			High:       Float(188.44),
			Low:        Float(183.89),
			Close:      Float(185.64),
			Volume:     Int(82488700),
			Dividend:   Float(0.24),
			SplitRatio: Float(4),
		},
		{
			Date:  "2024-01-03",
			Open:  Float(184.22),
			Close: Float(184.25),
			// Dividend and SplitRatio unknown for this bar.
		},
	}
	ratios := RatioSnapshot{
		OperatingMargin: Float(0.302),
		ROE:             Float(1.56),
	}

	records := BuildRecords("AAPL", bars, ratios)
	if len(records) != 2 {
		t.Fatalf("BuildRecords() returned %d records, want 2", len(records))
	}

	first := records[0]
	if first.Symbol != "AAPL" {
		t.Errorf("symbol = %s, want AAPL", first.Symbol)
	}
	if first.Date != time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) {
		t.Errorf("date = %v, want 2024-01-02", first.Date)
	}
	if !first.Dividends.Valid || first.Dividends.Value != 0.24 {
		t.Errorf("dividends = %+v, want 0.24", first.Dividends)
	}

	// The snapshot is attached identically to every bar of the fetch.
	for idx, record := range records {
		if !record.OperatingMargin.Valid || record.OperatingMargin.Value != 0.302 {
			t.Errorf("record %d operating margin = %+v, want 0.302", idx, record.OperatingMargin)
		}
		if !record.ROE.Valid || record.ROE.Value != 1.56 {
			t.Errorf("record %d roe = %+v, want 1.56", idx, record.ROE)
		}
		if record.PE.Valid {
			t.Errorf("record %d p_e should be unknown", idx)
		}
	}

	// Defaults for missing actions: 0 dividend, 1.0 split ratio.
	second := records[1]
	if !second.Dividends.Valid || second.Dividends.Value != 0 {
		t.Errorf("missing dividend = %+v, want 0", second.Dividends)
	}
	if !second.StockSplits.Valid || second.StockSplits.Value != 1.0 {
		t.Errorf("missing split ratio = %+v, want 1.0", second.StockSplits)
	}
	if second.Volume.Valid {
		t.Errorf("missing volume should stay unknown, got %+v", second.Volume)
	}
}

func TestBuildRecords_AllUnknownRatios(t *testing.T) {
	bars := []Bar{{Date: "2024-01-02", Close: Float(12.5), Volume: Int(1000)}}

	records := BuildRecords("XYZ1W", bars, RatioSnapshot{})
	if len(records) != 1 {
		t.Fatalf("BuildRecords() returned %d records, want 1", len(records))
	}

	record := records[0]
	if !record.Close.Valid || record.Close.Value != 12.5 {
		t.Errorf("close = %+v, want 12.5", record.Close)
	}
	if !record.Volume.Valid || record.Volume.Value != 1000 {
		t.Errorf("volume = %+v, want 1000", record.Volume)
	}

	// Every ratio must bind as NULL, never zero.
	row := record.Row()
	if len(row) != len(RecordColumns()) {
		t.Fatalf("Row() length = %d, want %d", len(row), len(RecordColumns()))
	}
	for idx, col := range RecordColumns() {
		switch col {
		case "symbol", "date", "close", "volume", "dividends", "stock_splits":
			continue
		}
		if row[idx] != nil {
			t.Errorf("column %s = %v, want NULL", col, row[idx])
		}
	}
}

func TestBuildRecords_DropsUnparsableDates(t *testing.T) {
	bars := []Bar{
		{Date: "2024-01-02", Close: Float(1)},
		{Date: "not-a-date", Close: Float(2)},
		{Date: "2024-01-03T00:00:00", Close: Float(3)},
	}
	records := BuildRecords("MSFT", bars, RatioSnapshot{})
	if len(records) != 2 {
		t.Fatalf("BuildRecords() returned %d records, want 2", len(records))
	}
}

func TestBuildRecords_Deterministic(t *testing.T) {
	bars := []Bar{{Date: "2024-01-02", Open: Float(1), Close: Float(2)}}
	ratios := RatioSnapshot{EPS: Float(6.1)}

	a := BuildRecords("AAPL", bars, ratios)
	b := BuildRecords("AAPL", bars, ratios)
	if !reflect.DeepEqual(a, b) {
		t.Error("BuildRecords() is not deterministic for identical input")
	}
}

func TestNullableCoercion(t *testing.T) {
	jsonText := `{
		"date": "2024-01-02",
		"open": "187.15",
		"high": null,
		"close": 185.64,
		"volume": "82488700.0",
		"dividend": "garbage"
	}`

	var bar Bar
	if err := json.Unmarshal([]byte(jsonText), &bar); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !bar.Open.Valid || bar.Open.Value != 187.15 {
		t.Errorf("quoted open = %+v, want 187.15", bar.Open)
	}
	if bar.High.Valid {
		t.Errorf("null high should be unknown, got %+v", bar.High)
	}
	if bar.Low.Valid {
		t.Errorf("missing low should be unknown, got %+v", bar.Low)
	}
	if !bar.Close.Valid || bar.Close.Value != 185.64 {
		t.Errorf("close = %+v, want 185.64", bar.Close)
	}
	if !bar.Volume.Valid || bar.Volume.Value != 82488700 {
		t.Errorf("float volume = %+v, want 82488700", bar.Volume)
	}
	if bar.Dividend.Valid {
		t.Errorf("unparsable dividend should be unknown, got %+v", bar.Dividend)
	}
}
