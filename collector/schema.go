package collector

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/wayming/fdc/config"
)

// Nullable is an optional float column value. The provider serialises
// numbers inconsistently (number, quoted number, null, missing), so the
// coercion lives here instead of being scattered over the record mapping.
// An invalid Nullable is written to the database as NULL, never as zero.
type Nullable struct {
	Value float64
	Valid bool
}

func Float(v float64) Nullable {
	return Nullable{Value: v, Valid: true}
}

func (n *Nullable) UnmarshalJSON(data []byte) error {
	text := string(bytes.TrimSpace(data))
	if text == "null" {
		*n = Nullable{}
		return nil
	}
	text = strings.Trim(text, `"`)
	if text == "" {
		*n = Nullable{}
		return nil
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		*n = Nullable{}
		return nil
	}
	*n = Nullable{Value: value, Valid: true}
	return nil
}

// Arg returns the bind value for a database write, nil when unknown.
func (n Nullable) Arg() any {
	if !n.Valid {
		return nil
	}
	return n.Value
}

// NullableInt is the integer counterpart of Nullable, used for volumes. The
// provider occasionally delivers volumes in float notation; those are
// truncated. Unparsable values become NULL rather than raising.
type NullableInt struct {
	Value int64
	Valid bool
}

func Int(v int64) NullableInt {
	return NullableInt{Value: v, Valid: true}
}

func (n *NullableInt) UnmarshalJSON(data []byte) error {
	text := string(bytes.TrimSpace(data))
	if text == "null" {
		*n = NullableInt{}
		return nil
	}
	text = strings.Trim(text, `"`)
	if text == "" {
		*n = NullableInt{}
		return nil
	}
	if value, err := strconv.ParseInt(text, 10, 64); err == nil {
		*n = NullableInt{Value: value, Valid: true}
		return nil
	}
	if value, err := strconv.ParseFloat(text, 64); err == nil {
		*n = NullableInt{Value: int64(value), Valid: true}
		return nil
	}
	*n = NullableInt{}
	return nil
}

func (n NullableInt) Arg() any {
	if !n.Valid {
		return nil
	}
	return n.Value
}

// Bar is one historical price observation as delivered by the provider.
type Bar struct {
	Date       string      `json:"date"`
	Open       Nullable    `json:"open"`
	High       Nullable    `json:"high"`
	Low        Nullable    `json:"low"`
	Close      Nullable    `json:"close"`
	Volume     NullableInt `json:"volume"`
	Dividend   Nullable    `json:"dividend"`
	SplitRatio Nullable    `json:"split_ratio"`
}

type HistoryResponse struct {
	Results []Bar `json:"results"`
}

// RatioSnapshot carries the scalar financial health metrics of a company as
// of fetch time. The snapshot is not historical; it is attached verbatim to
// every bar of the same fetch, which is a known data quality caveat inherited
// from the upstream feed.
type RatioSnapshot struct {
	OperatingMargin  Nullable `json:"operatingMargins"`
	GrossMargin      Nullable `json:"grossMargins"`
	NetProfitMargin  Nullable `json:"profitMargins"`
	ROA              Nullable `json:"returnOnAssets"`
	ROE              Nullable `json:"returnOnEquity"`
	EBITDA           Nullable `json:"ebitda"`
	CurrentRatio     Nullable `json:"currentRatio"`
	QuickRatio       Nullable `json:"quickRatio"`
	OperatingCash    Nullable `json:"operatingCashflow"`
	WorkingCapital   Nullable `json:"workingCapital"`
	PE               Nullable `json:"forwardPE"`
	PB               Nullable `json:"priceToBook"`
	PS               Nullable `json:"priceToSales"`
	DividendYield    Nullable `json:"dividendYield"`
	EPS              Nullable `json:"trailingEps"`
	DebtToAsset      Nullable `json:"debtToAssets"`
	DebtToEquity     Nullable `json:"debtToEquity"`
	InterestCoverage Nullable `json:"interestCoverage"`
}

type RatiosResponse struct {
	Results []RatioSnapshot `json:"results"`
}

// FinancialRecord is the unit of persistence, one row of the fact table keyed
// by (symbol, date). The db tags drive both the upsert column list and the
// bind value order.
type FinancialRecord struct {
	Symbol string    `db:"symbol"`
	Date   time.Time `db:"date"`

	Open        Nullable    `db:"open"`
	High        Nullable    `db:"high"`
	Low         Nullable    `db:"low"`
	Close       Nullable    `db:"close"`
	Volume      NullableInt `db:"volume"`
	Dividends   Nullable    `db:"dividends"`
	StockSplits Nullable    `db:"stock_splits"`

	OperatingMargin  Nullable `db:"operating_margin"`
	GrossMargin      Nullable `db:"gross_margin"`
	NetProfitMargin  Nullable `db:"net_profit_margin"`
	ROA              Nullable `db:"roa"`
	ROE              Nullable `db:"roe"`
	EBITDA           Nullable `db:"ebitda"`
	CurrentRatio     Nullable `db:"current_ratio"`
	QuickRatio       Nullable `db:"quick_ratio"`
	OperatingCash    Nullable `db:"operating_cash_flow"`
	WorkingCapital   Nullable `db:"working_capital"`
	PE               Nullable `db:"p_e"`
	PB               Nullable `db:"p_b"`
	PS               Nullable `db:"p_s"`
	DividendYield    Nullable `db:"dividend_yield"`
	EPS              Nullable `db:"eps"`
	DebtToAsset      Nullable `db:"debt_to_asset"`
	DebtToEquity     Nullable `db:"debt_to_equity"`
	InterestCoverage Nullable `db:"interest_coverage_ratio"`
}

var recordColumns = structColumns(reflect.TypeOf(FinancialRecord{}))

// RecordColumns returns the fact table columns in struct declaration order.
func RecordColumns() []string {
	return recordColumns
}

// RecordKeyColumns returns the composite unique key of the fact table.
func RecordKeyColumns() []string {
	return []string{"symbol", "date"}
}

// Row returns the bind values of the record in RecordColumns order.
func (r *FinancialRecord) Row() []any {
	value := reflect.ValueOf(r).Elem()
	row := make([]any, 0, value.NumField())
	for idx := 0; idx < value.NumField(); idx++ {
		switch field := value.Field(idx).Interface().(type) {
		case string:
			row = append(row, field)
		case time.Time:
			row = append(row, field)
		case Nullable:
			row = append(row, field.Arg())
		case NullableInt:
			row = append(row, field.Arg())
		default:
			panic(fmt.Sprintf("unsupported field type %T in FinancialRecord", field))
		}
	}
	return row
}

func structColumns(t reflect.Type) []string {
	columns := make([]string, 0, t.NumField())
	for idx := 0; idx < t.NumField(); idx++ {
		tag := t.Field(idx).Tag.Get("db")
		if tag == "" {
			panic("FinancialRecord field " + t.Field(idx).Name + " has no db tag")
		}
		columns = append(columns, tag)
	}
	return columns
}

// CreateFactTableSQL returns the DDL of the fact table. Every non-key column
// is nullable so that a failed ratio lookup never blocks price bar insertion.
func CreateFactTableSQL() string {
	var cols []string
	for _, col := range RecordColumns() {
		switch col {
		case "symbol":
			cols = append(cols, "symbol TEXT NOT NULL")
		case "date":
			cols = append(cols, "date TIMESTAMP NOT NULL")
		case "volume":
			cols = append(cols, "volume BIGINT")
		default:
			cols = append(cols, col+" DOUBLE PRECISION")
		}
	}
	return "CREATE TABLE IF NOT EXISTS " + config.TABLE_FACT_TRACKERS +
		" (" + strings.Join(cols, ", ") +
		", PRIMARY KEY (symbol, date))"
}

func CreateDimTableSQL() string {
	return "CREATE TABLE IF NOT EXISTS " + config.TABLE_DIM_TRACKERS +
		" (symbol TEXT PRIMARY KEY, delisted BOOLEAN NOT NULL DEFAULT FALSE)"
}
