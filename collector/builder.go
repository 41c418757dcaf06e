package collector

import "time"

var barDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// BuildRecords merges one fetched time series with the snapshot of financial
// ratios into one FinancialRecord per bar. It is a pure function: no
// connection handles, no logging, deterministic output for a given input.
//
// Bars whose date cannot be parsed are dropped because the date is half of
// the persistence key. A missing dividend maps to 0 and a missing split
// ratio to 1.0; every ratio stays NULL when unknown.
func BuildRecords(symbol string, bars []Bar, ratios RatioSnapshot) []FinancialRecord {
	records := make([]FinancialRecord, 0, len(bars))
	for _, bar := range bars {
		date, ok := parseBarDate(bar.Date)
		if !ok {
			continue
		}

		record := FinancialRecord{
			Symbol:      symbol,
			Date:        date,
			Open:        bar.Open,
			High:        bar.High,
			Low:         bar.Low,
			Close:       bar.Close,
			Volume:      bar.Volume,
			Dividends:   bar.Dividend,
			StockSplits: bar.SplitRatio,

			OperatingMargin:  ratios.OperatingMargin,
			GrossMargin:      ratios.GrossMargin,
			NetProfitMargin:  ratios.NetProfitMargin,
			ROA:              ratios.ROA,
			ROE:              ratios.ROE,
			EBITDA:           ratios.EBITDA,
			CurrentRatio:     ratios.CurrentRatio,
			QuickRatio:       ratios.QuickRatio,
			OperatingCash:    ratios.OperatingCash,
			WorkingCapital:   ratios.WorkingCapital,
			PE:               ratios.PE,
			PB:               ratios.PB,
			PS:               ratios.PS,
			DividendYield:    ratios.DividendYield,
			EPS:              ratios.EPS,
			DebtToAsset:      ratios.DebtToAsset,
			DebtToEquity:     ratios.DebtToEquity,
			InterestCoverage: ratios.InterestCoverage,
		}
		if !record.Dividends.Valid {
			record.Dividends = Float(0)
		}
		if !record.StockSplits.Valid {
			record.StockSplits = Float(1.0)
		}
		records = append(records, record)
	}
	return records
}

func parseBarDate(text string) (time.Time, bool) {
	for _, layout := range barDateLayouts {
		if date, err := time.Parse(layout, text); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}
