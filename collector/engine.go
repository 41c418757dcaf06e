package collector

import (
	"errors"
	"os"
	"reflect"

	"github.com/wayming/fdc/cache"
	"github.com/wayming/fdc/config"
	"github.com/wayming/fdc/dbloader"
	"github.com/wayming/fdc/fdclogger"
)

// Collect is the entry point of a full collection run: read the active
// symbol universe once, then sweep it through the degrading window tiers.
// isContinue resumes from the cached retry sets of an interrupted run
// instead of starting over.
func Collect(cfg config.Config, isContinue bool) (RunSummary, error) {
	factory, err := NewCollectWorkerFactory(cfg)
	if err != nil {
		return RunSummary{}, err
	}

	cm := cache.NewCacheManager()
	if err := cm.Connect(); err != nil {
		return RunSummary{}, err
	}
	defer cm.Disconnect()

	executor := NewParallelExecutor(factory, cfg.Parallel, config.LogDir)
	scheduler := NewPassScheduler(
		Windows(cfg.Windows), executor, cm, &fdclogger.LoggerInstance.Logger)

	if isContinue {
		return scheduler.Resume()
	}

	symbols, err := loadActiveSymbols(cfg)
	if err != nil {
		return RunSummary{}, err
	}
	if len(symbols) == 0 {
		fdclogger.LoggerInstance.Println("No active symbol found.")
		return RunSummary{}, nil
	}
	return scheduler.Run(symbols)
}

// CollectForSymbol runs the multi-pass engine for a single symbol, without
// touching the cached retry sets of a full run.
func CollectForSymbol(cfg config.Config, symbol string) (RunSummary, error) {
	if symbol == "" {
		return RunSummary{}, errors.New("no symbol specified")
	}
	factory, err := NewCollectWorkerFactory(cfg)
	if err != nil {
		return RunSummary{}, err
	}
	executor := NewParallelExecutor(factory, 1, config.LogDir)
	scheduler := NewPassScheduler(
		Windows(cfg.Windows), executor, nil, &fdclogger.LoggerInstance.Logger)
	return scheduler.Run([]string{symbol})
}

// Verify sweeps the full dimension table, including already delisted
// symbols, and refreshes the delisted flag of each.
func Verify(cfg config.Config) error {
	factory, err := NewVerifyWorkerFactory(cfg)
	if err != nil {
		return err
	}

	db := dbloader.NewPGLoader(cfg.Schema, &fdclogger.LoggerInstance.Logger)
	if err := connectFromEnv(db); err != nil {
		return err
	}
	defer db.Disconnect()

	symbols, err := allSymbols(db)
	if err != nil {
		return err
	}
	if len(symbols) == 0 {
		fdclogger.LoggerInstance.Println("No symbol found to verify.")
		return nil
	}

	executor := NewParallelExecutor(factory, cfg.Parallel, config.LogDir)
	tiers := Windows(cfg.Windows)
	results := executor.RunPass(symbols, tiers[0])
	for _, result := range results {
		if result.Status != STATUS_SUCCESS {
			fdclogger.LoggerInstance.Printf("Failed to verify %s: %s", result.Symbol, result.Reason)
		}
	}
	return nil
}

// RequeueInvalid moves the permanently failed symbols back into the pending
// set so a later continued run retries them from the widest tier. Returns
// the number of requeued symbols.
func RequeueInvalid(cfg config.Config) (int64, error) {
	cm := cache.NewCacheManager()
	if err := cm.Connect(); err != nil {
		return 0, err
	}
	defer cm.Disconnect()
	return RequeueInvalidSymbols(cm)
}

func RequeueInvalidSymbols(cm cache.ICacheManager) (int64, error) {
	count, err := cm.GetLength(config.CACHE_KEY_SYMBOLS_INVALID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}
	if err := cm.MoveSet(config.CACHE_KEY_SYMBOLS_INVALID, config.CACHE_KEY_SYMBOLS); err != nil {
		return 0, err
	}
	fdclogger.LoggerInstance.Printf("Requeued %d invalid symbols", count)
	return count, nil
}

// ClearCache removes every symbol tracking set of this engine.
func ClearCache(cfg config.Config) error {
	cm := cache.NewCacheManager()
	if err := cm.Connect(); err != nil {
		return err
	}
	defer cm.Disconnect()

	if err := cm.DeleteSet(config.CACHE_KEY_SYMBOLS); err != nil {
		return err
	}
	if err := cm.DeleteSet(config.CACHE_KEY_SYMBOLS_INVALID); err != nil {
		return err
	}
	for _, tier := range cfg.Windows {
		if err := cm.DeleteSet(RetryKey(TimeWindow(tier))); err != nil {
			return err
		}
	}
	return nil
}

// DropSchema drops the whole collection schema.
func DropSchema(cfg config.Config) error {
	db := dbloader.NewPGLoader(cfg.Schema, &fdclogger.LoggerInstance.Logger)
	if err := connectFromEnv(db); err != nil {
		return err
	}
	defer db.Disconnect()
	return db.DropSchema(cfg.Schema)
}

func loadActiveSymbols(cfg config.Config) ([]string, error) {
	db := dbloader.NewPGLoader(cfg.Schema, &fdclogger.LoggerInstance.Logger)
	if err := connectFromEnv(db); err != nil {
		return nil, err
	}
	defer db.Disconnect()

	source := NewSymbolSource(db)
	symbols, err := source.ActiveSymbols()
	if err != nil {
		return nil, err
	}
	fdclogger.LoggerInstance.Printf("Loaded %d active symbols", len(symbols))
	return symbols, nil
}

func allSymbols(db dbloader.DBLoader) ([]string, error) {
	type queryResult struct {
		Symbol string
	}
	sqlText := "SELECT symbol FROM " + config.TABLE_DIM_TRACKERS
	results, err := db.RunQuery(sqlText, reflect.TypeOf(queryResult{}))
	if err != nil {
		return nil, err
	}
	rows, ok := results.([]queryResult)
	if !ok {
		return nil, errors.New("failed to assert the slice of queryResults")
	}
	symbols := make([]string, 0, len(rows))
	for _, row := range rows {
		symbols = append(symbols, row.Symbol)
	}
	return symbols, nil
}

func connectFromEnv(db dbloader.DBLoader) error {
	return db.Connect(os.Getenv("PGHOST"),
		os.Getenv("PGPORT"),
		os.Getenv("PGUSER"),
		os.Getenv("PGPASSWORD"),
		os.Getenv("PGDATABASE"))
}
