package collector

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/wayming/fdc/fdclogger"
)

type Status int

const (
	STATUS_SUCCESS Status = iota
	STATUS_RETRY
	STATUS_FAILED
)

// PassResult is the outcome of one symbol attempt within one pass.
type PassResult struct {
	Symbol     string
	Status     Status
	Reason     FailureReason
	NextWindow TimeWindow
	Rows       int64
}

type IWorker interface {
	Init() error
	Do(symbol string, window TimeWindow) PassResult
	Done() error
}

// IWorkerFactory builds one worker per goroutine. Each worker owns its own
// connection resources; nothing is shared between siblings except the
// response channel.
type IWorkerFactory interface {
	MakeWorker(goID string, logger *log.Logger) IWorker
}

// ParallelExecutor fans one pass out across a bounded pool of workers. Every
// symbol is attempted exactly once per pass and a failing work unit never
// cancels its siblings.
type ParallelExecutor struct {
	factory  IWorkerFactory
	parallel int
	logDir   string
}

func NewParallelExecutor(factory IWorkerFactory, parallel int, logDir string) *ParallelExecutor {
	if parallel < 1 {
		parallel = 1
	}
	return &ParallelExecutor{
		factory:  factory,
		parallel: parallel,
		logDir:   logDir,
	}
}

func (pe *ParallelExecutor) workerRoutine(
	goID string,
	window TimeWindow,
	inChan chan string,
	outChan chan PassResult,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	logger, closeLog := pe.workerLogger(goID)
	defer closeLog()

	logMessage := func(text string) {
		logger.Println("[Go" + goID + "] " + text)
	}
	logMessage("Begin")

	worker := pe.factory.MakeWorker(goID, logger)
	if err := worker.Init(); err != nil {
		// A dead worker leaves the channel alone so healthy siblings pick up
		// its share of the pass. Symbols nobody consumed are accounted for by
		// RunPass once every worker has exited.
		logMessage(err.Error())
		return
	}

	for symbol := range inChan {
		logMessage("Begin processing [" + symbol + "]")
		result := worker.Do(symbol, window)
		outChan <- result
		logMessage("End processing [" + symbol + "]")
	}

	if err := worker.Done(); err != nil {
		logMessage(err.Error())
	}
	logMessage("Finish")
}

// RunPass processes every symbol once at the given window tier and returns
// the per-symbol results merged from all workers.
func (pe *ParallelExecutor) RunPass(symbols []string, window TimeWindow) []PassResult {
	if len(symbols) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	inChan := make(chan string, len(symbols))
	outChan := make(chan PassResult, len(symbols))

	for _, symbol := range symbols {
		inChan <- symbol
	}
	close(inChan)

	workers := pe.parallel
	if workers > len(symbols) {
		workers = len(symbols)
	}
	fdclogger.LoggerInstance.Printf(
		"Pass begin: %d symbols at window %s with %d workers", len(symbols), window, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go pe.workerRoutine(strconv.Itoa(i), window, inChan, outChan, &wg)
	}

	go func() {
		wg.Wait()
		close(outChan)
	}()

	results := make([]PassResult, 0, len(symbols))
	for result := range outChan {
		if result.Status != STATUS_SUCCESS {
			fdclogger.LoggerInstance.Printf(
				"Symbol %s did not succeed at window %s: %s", result.Symbol, window, result.Reason)
		}
		results = append(results, result)
	}

	// Symbols still queued after every worker exited were never attempted,
	// which only happens when no worker survived Init. They are reported as
	// failed so the pass still accounts for every symbol exactly once.
	if len(results) < len(symbols) {
		attempted := make(map[string]bool, len(results))
		for _, result := range results {
			attempted[result.Symbol] = true
		}
		for _, symbol := range symbols {
			if attempted[symbol] {
				continue
			}
			fdclogger.LoggerInstance.Printf(
				"Symbol %s was not attempted at window %s, no worker available", symbol, window)
			results = append(results, PassResult{
				Symbol: symbol,
				Status: STATUS_FAILED,
				Reason: REASON_UNEXPECTED,
			})
		}
	}
	return results
}

// workerLogger opens a per-goroutine log file so that concurrent workers do
// not interleave within one file. Falls back to the shared logger when the
// file cannot be created.
func (pe *ParallelExecutor) workerLogger(goID string) (*log.Logger, func()) {
	if pe.logDir == "" {
		return &fdclogger.LoggerInstance.Logger, func() {}
	}
	os.MkdirAll(pe.logDir, 0755)
	name := filepath.Join(pe.logDir, "fdc.log."+goID)
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return &fdclogger.LoggerInstance.Logger, func() {}
	}
	return log.New(file, "fdc: ", log.Ldate|log.Ltime), func() { file.Close() }
}
