package collector

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

const historyPath = "/api/v1/equity/price/historical"
const ratiosPath = "/api/v1/equity/fundamental/metrics"

type FetchResult struct {
	Bars   []Bar
	Ratios RatioSnapshot
}

// IMetricFetcher retrieves the time series and ratio snapshot of one symbol
// at one window tier. A nil decision means success; otherwise the decision
// carries the classified failure.
type IMetricFetcher interface {
	Fetch(symbol string, window TimeWindow) (*FetchResult, *RetryDecision)
}

type YFFetcher struct {
	reader     IHttpReader
	baseURL    string
	classifier *Classifier
	logger     *log.Logger
}

func NewYFFetcher(reader IHttpReader, baseURL string, classifier *Classifier, logger *log.Logger) *YFFetcher {
	return &YFFetcher{
		reader:     reader,
		baseURL:    baseURL,
		classifier: classifier,
		logger:     logger,
	}
}

func (f *YFFetcher) Fetch(symbol string, window TimeWindow) (*FetchResult, *RetryDecision) {
	bars, err := f.History(symbol, window)
	if err != nil {
		decision := f.classifier.Classify(err, window)
		return nil, &decision
	}
	if len(bars) == 0 {
		decision := f.classifier.NoData(window)
		return nil, &decision
	}

	result := &FetchResult{Bars: bars}

	// The ratio snapshot is best effort. Warrant style instruments carry no
	// fundamentals at all, so the call is skipped for them; for everything
	// else a failed lookup degrades to an all-unknown snapshot instead of
	// failing the symbol.
	if !isWarrantSymbol(symbol) {
		ratios, err := f.Ratios(symbol)
		if err != nil {
			f.logger.Printf("Ratio snapshot unavailable for %s, keeping price bars only. Error: %v", symbol, err)
		} else {
			result.Ratios = ratios
		}
	}

	return result, nil
}

// History fetches the daily bars of one symbol for the requested window.
func (f *YFFetcher) History(symbol string, window TimeWindow) ([]Bar, error) {
	params := map[string]string{
		"symbol":   symbol,
		"provider": "yfinance",
		"interval": "1d",
		"period":   string(window),
		"sort":     "asc",
	}

	textJSON, err := f.reader.Read(f.baseURL+historyPath, params)
	if err != nil {
		return nil, err
	}

	var response HistoryResponse
	if err := json.Unmarshal([]byte(textJSON), &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history response for %s: %v", symbol, err)
	}
	return response.Results, nil
}

// Ratios fetches the point-in-time ratio snapshot of one symbol.
func (f *YFFetcher) Ratios(symbol string) (RatioSnapshot, error) {
	params := map[string]string{
		"symbol":   symbol,
		"provider": "yfinance",
	}

	textJSON, err := f.reader.Read(f.baseURL+ratiosPath, params)
	if err != nil {
		return RatioSnapshot{}, err
	}

	var response RatiosResponse
	if err := json.Unmarshal([]byte(textJSON), &response); err != nil {
		return RatioSnapshot{}, fmt.Errorf("failed to unmarshal ratios response for %s: %v", symbol, err)
	}
	if len(response.Results) == 0 {
		return RatioSnapshot{}, fmt.Errorf("empty ratios response for %s", symbol)
	}
	return response.Results[0], nil
}

func isWarrantSymbol(symbol string) bool {
	return strings.HasSuffix(strings.ToUpper(symbol), "W")
}
