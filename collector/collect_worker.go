package collector

import (
	"log"
	"os"

	"golang.org/x/time/rate"

	"github.com/wayming/fdc/config"
	"github.com/wayming/fdc/dbloader"
)

// CollectWorker processes one symbol at a time: fetch, build, upsert. It
// owns its database connection for its whole lifetime; connections are never
// shared between concurrent workers.
type CollectWorker struct {
	fetcher IMetricFetcher
	sink    IRecordSink
	db      dbloader.DBLoader
	logger  *log.Logger
}

func NewCollectWorker(fetcher IMetricFetcher, sink IRecordSink, db dbloader.DBLoader, logger *log.Logger) *CollectWorker {
	return &CollectWorker{
		fetcher: fetcher,
		sink:    sink,
		db:      db,
		logger:  logger,
	}
}

func (w *CollectWorker) Init() error {
	if w.db == nil {
		return nil
	}
	if err := w.db.Connect(os.Getenv("PGHOST"),
		os.Getenv("PGPORT"),
		os.Getenv("PGUSER"),
		os.Getenv("PGPASSWORD"),
		os.Getenv("PGDATABASE")); err != nil {
		return err
	}
	if sink, ok := w.sink.(*PGSink); ok {
		return sink.EnsureTables()
	}
	return nil
}

func (w *CollectWorker) Do(symbol string, window TimeWindow) PassResult {
	result, decision := w.fetcher.Fetch(symbol, window)
	if decision != nil {
		if decision.Cause != nil {
			w.logger.Printf("Fetch failed for %s at window %s: %v", symbol, window, decision.Cause)
		}
		if decision.Action == ACTION_RETRY {
			return PassResult{
				Symbol:     symbol,
				Status:     STATUS_RETRY,
				Reason:     decision.Reason,
				NextWindow: decision.Window,
			}
		}
		return PassResult{
			Symbol: symbol,
			Status: STATUS_FAILED,
			Reason: decision.Reason,
		}
	}

	records := BuildRecords(symbol, result.Bars, result.Ratios)
	rows, err := w.sink.Upsert(records)
	if err != nil {
		w.logger.Printf("Failed to persist records for %s: %v", symbol, err)
		return PassResult{
			Symbol: symbol,
			Status: STATUS_FAILED,
			Reason: REASON_PERSISTENCE,
		}
	}

	w.logger.Printf("Committed %d rows for %s at window %s", rows, symbol, window)
	return PassResult{
		Symbol: symbol,
		Status: STATUS_SUCCESS,
		Rows:   rows,
	}
}

func (w *CollectWorker) Done() error {
	if w.db != nil {
		w.db.Disconnect()
	}
	return nil
}

// CollectWorkerFactory builds one CollectWorker per pool goroutine. The rate
// limiter is shared by every worker so the pool observes one provider budget;
// the database loader is constructed per worker.
type CollectWorkerFactory struct {
	cfg        config.Config
	tiers      []TimeWindow
	classifier *Classifier
	limiter    *rate.Limiter
}

func NewCollectWorkerFactory(cfg config.Config) (*CollectWorkerFactory, error) {
	tiers := Windows(cfg.Windows)
	classifier, err := NewClassifier(tiers, cfg.PeriodErrorPatterns)
	if err != nil {
		return nil, err
	}
	return &CollectWorkerFactory{
		cfg:        cfg,
		tiers:      tiers,
		classifier: classifier,
		limiter:    NewRateLimiter(cfg.RequestsPerSecond),
	}, nil
}

func (f *CollectWorkerFactory) MakeWorker(goID string, logger *log.Logger) IWorker {
	client := NewLocalClient()
	if f.cfg.ProxyURL != "" {
		if proxied, err := NewProxyClient(f.cfg.ProxyURL); err == nil {
			client = proxied
		} else {
			logger.Printf("Failed to create proxy client, using local client. Error: %v", err)
		}
	}

	reader := NewHttpReader(client, f.limiter)
	fetcher := NewYFFetcher(reader, f.cfg.ProviderURL, f.classifier, logger)
	db := dbloader.NewPGLoader(f.cfg.Schema, logger)
	sink := NewPGSink(db, f.cfg.BatchSize, logger)

	return NewCollectWorker(fetcher, sink, db, logger)
}
