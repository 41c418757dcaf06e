package collector

import (
	"log"

	"github.com/wayming/fdc/config"
	"github.com/wayming/fdc/dbloader"
)

type IRecordSink interface {
	Upsert(records []FinancialRecord) (int64, error)
}

// PGSink upserts financial records into the fact table. Records are flushed
// in transactions bounded by the configured batch size; one record sequence
// normally belongs to one symbol so a crash can never lose a committed batch
// and a re-run simply overwrites the same keys.
type PGSink struct {
	db        dbloader.DBLoader
	batchSize int
	logger    *log.Logger
}

func NewPGSink(db dbloader.DBLoader, batchSize int, logger *log.Logger) *PGSink {
	if batchSize <= 0 {
		batchSize = config.Default().BatchSize
	}
	return &PGSink{
		db:        db,
		batchSize: batchSize,
		logger:    logger,
	}
}

// EnsureTables creates the fact and dimension tables when they do not exist.
func (s *PGSink) EnsureTables() error {
	if err := s.db.Exec(CreateDimTableSQL()); err != nil {
		return err
	}
	return s.db.Exec(CreateFactTableSQL())
}

// Upsert writes the records and returns the number of committed rows. A
// batch boundary is reached at a symbol change or after batchSize rows,
// whichever comes first. A failed batch is rolled back by the loader, logged
// with its key range, and skipped; the remaining batches are still written.
func (s *PGSink) Upsert(records []FinancialRecord) (int64, error) {
	var committed int64
	var batch [][]any
	var batchFirst, batchLast *FinancialRecord

	flush := func() {
		if len(batch) == 0 {
			return
		}
		count, err := s.db.UpsertBatch(
			config.TABLE_FACT_TRACKERS, RecordColumns(), RecordKeyColumns(), batch)
		if err != nil {
			s.logger.Printf("Skipped batch of %d rows for keys (%s, %s)..(%s, %s). Error: %v",
				len(batch),
				batchFirst.Symbol, batchFirst.Date.Format("2006-01-02"),
				batchLast.Symbol, batchLast.Date.Format("2006-01-02"),
				err)
		} else {
			committed += count
		}
		batch = nil
		batchFirst, batchLast = nil, nil
	}

	for idx := range records {
		record := &records[idx]
		if batchLast != nil && (batchLast.Symbol != record.Symbol || len(batch) >= s.batchSize) {
			flush()
		}
		if batchFirst == nil {
			batchFirst = record
		}
		batchLast = record
		batch = append(batch, record.Row())
	}
	flush()

	return committed, nil
}
