package collector

import (
	"errors"
	"reflect"

	"github.com/wayming/fdc/config"
	"github.com/wayming/fdc/dbloader"
)

// SymbolSource supplies the working set of active symbols. The delisted flag
// is maintained by the verify pass only; the collection engine itself never
// mutates it.
type SymbolSource struct {
	db dbloader.DBLoader
}

func NewSymbolSource(db dbloader.DBLoader) *SymbolSource {
	return &SymbolSource{db: db}
}

// ActiveSymbols reads the not-delisted symbols once per run. A failure here
// is infrastructure level and propagates: no useful work can proceed without
// the symbol universe.
func (s *SymbolSource) ActiveSymbols() ([]string, error) {
	type queryResult struct {
		Symbol string
	}

	sqlText := "SELECT symbol FROM " + config.TABLE_DIM_TRACKERS + " WHERE delisted = FALSE"
	results, err := s.db.RunQuery(sqlText, reflect.TypeOf(queryResult{}))
	if err != nil {
		return nil, errors.New("Failed to run query [" + sqlText + "]. Error: " + err.Error())
	}
	queryResults, ok := results.([]queryResult)
	if !ok {
		return nil, errors.New("failed to assert the slice of queryResults")
	}

	symbols := make([]string, 0, len(queryResults))
	for _, row := range queryResults {
		symbols = append(symbols, row.Symbol)
	}
	return symbols, nil
}
