package collector

import (
	"log"
	"os"

	"golang.org/x/time/rate"

	"github.com/wayming/fdc/config"
	"github.com/wayming/fdc/dbloader"
)

// VerifyWorker probes whether a symbol still trades and maintains the
// delisted flag of the dimension table. It is the only writer of that flag;
// the collection passes read it and nothing else.
type VerifyWorker struct {
	fetcher *YFFetcher
	db      dbloader.DBLoader
	tiers   []TimeWindow
	logger  *log.Logger
}

func NewVerifyWorker(fetcher *YFFetcher, db dbloader.DBLoader, tiers []TimeWindow, logger *log.Logger) *VerifyWorker {
	return &VerifyWorker{
		fetcher: fetcher,
		db:      db,
		tiers:   tiers,
		logger:  logger,
	}
}

func (w *VerifyWorker) Init() error {
	return w.db.Connect(os.Getenv("PGHOST"),
		os.Getenv("PGPORT"),
		os.Getenv("PGUSER"),
		os.Getenv("PGPASSWORD"),
		os.Getenv("PGDATABASE"))
}

// Do probes the symbol at the given window, warrants at the narrowest tier
// since they never carry long histories. A wide probe can be rejected for an
// instrument that simply has a short history, so a failure there is retried
// at the narrowest tier; only an empty or failed narrow probe marks the
// symbol delisted.
func (w *VerifyWorker) Do(symbol string, window TimeWindow) PassResult {
	probe := window
	if isWarrantSymbol(symbol) {
		probe = Narrowest(w.tiers)
	}

	bars, err := w.fetcher.History(symbol, probe)
	if err != nil && probe != Narrowest(w.tiers) {
		w.logger.Printf("History probe failed for %s at window %s, reprobing at %s: %v",
			symbol, probe, Narrowest(w.tiers), err)
		bars, err = w.fetcher.History(symbol, Narrowest(w.tiers))
	}
	delisted := err != nil || len(bars) == 0
	if err != nil {
		w.logger.Printf("History probe failed for %s: %v", symbol, err)
	}

	sqlText := "UPDATE " + config.TABLE_DIM_TRACKERS + " SET delisted = $1 WHERE symbol = $2"
	if err := w.db.Exec(sqlText, delisted, symbol); err != nil {
		w.logger.Printf("Failed to update delisted flag for %s: %v", symbol, err)
		return PassResult{Symbol: symbol, Status: STATUS_FAILED, Reason: REASON_PERSISTENCE}
	}

	w.logger.Printf("Verified %s: delisted=%v", symbol, delisted)
	return PassResult{Symbol: symbol, Status: STATUS_SUCCESS}
}

func (w *VerifyWorker) Done() error {
	w.db.Disconnect()
	return nil
}

type VerifyWorkerFactory struct {
	cfg        config.Config
	tiers      []TimeWindow
	classifier *Classifier
	limiter    *rate.Limiter
}

func NewVerifyWorkerFactory(cfg config.Config) (*VerifyWorkerFactory, error) {
	tiers := Windows(cfg.Windows)
	classifier, err := NewClassifier(tiers, cfg.PeriodErrorPatterns)
	if err != nil {
		return nil, err
	}
	return &VerifyWorkerFactory{
		cfg:        cfg,
		tiers:      tiers,
		classifier: classifier,
		limiter:    NewRateLimiter(cfg.RequestsPerSecond),
	}, nil
}

func (f *VerifyWorkerFactory) MakeWorker(goID string, logger *log.Logger) IWorker {
	reader := NewHttpReader(NewLocalClient(), f.limiter)
	fetcher := NewYFFetcher(reader, f.cfg.ProviderURL, f.classifier, logger)
	db := dbloader.NewPGLoader(f.cfg.Schema, logger)
	return NewVerifyWorker(fetcher, db, f.tiers, logger)
}
