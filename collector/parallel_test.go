package collector_test

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"testing"

	. "github.com/wayming/fdc/collector"
)

// countingWorker records every symbol it processes.
type countingWorker struct {
	mu      *sync.Mutex
	seen    map[string]int
	initErr error
	failFor map[string]bool
}

func (w *countingWorker) Init() error {
	return w.initErr
}

func (w *countingWorker) Do(symbol string, window TimeWindow) PassResult {
	w.mu.Lock()
	w.seen[symbol]++
	w.mu.Unlock()

	if w.failFor[symbol] {
		return PassResult{Symbol: symbol, Status: STATUS_FAILED, Reason: REASON_UNEXPECTED}
	}
	return PassResult{Symbol: symbol, Status: STATUS_SUCCESS, Rows: 1}
}

func (w *countingWorker) Done() error {
	return nil
}

type countingWorkerFactory struct {
	mu      sync.Mutex
	seen    map[string]int
	failFor map[string]bool

	// initErrs[i] is handed to the i-th worker made; workers beyond the
	// slice initialise cleanly.
	initErrs []error

	made int32
}

func (f *countingWorkerFactory) MakeWorker(goID string, logger *log.Logger) IWorker {
	idx := int(atomic.AddInt32(&f.made, 1)) - 1
	var initErr error
	if idx < len(f.initErrs) {
		initErr = f.initErrs[idx]
	}
	return &countingWorker{
		mu:      &f.mu,
		seen:    f.seen,
		initErr: initErr,
		failFor: f.failFor,
	}
}

func TestParallelExecutor_RunPass(t *testing.T) {
	symbols := []string{"AAPL", "MSFT", "GOOG", "AMZN", "META", "NVDA", "TSLA"}
	factory := &countingWorkerFactory{
		seen:    make(map[string]int),
		failFor: map[string]bool{"MSFT": true},
	}

	executor := NewParallelExecutor(factory, 3, t.TempDir())
	results := executor.RunPass(symbols, "5y")

	if len(results) != len(symbols) {
		t.Fatalf("RunPass() returned %d results, want %d", len(results), len(symbols))
	}

	// Every symbol attempted exactly once, even with a failing sibling.
	for _, symbol := range symbols {
		if factory.seen[symbol] != 1 {
			t.Errorf("symbol %s attempted %d times, want 1", symbol, factory.seen[symbol])
		}
	}

	succeeded, failed := 0, 0
	for _, result := range results {
		switch result.Status {
		case STATUS_SUCCESS:
			succeeded++
		case STATUS_FAILED:
			failed++
		}
	}
	if succeeded != 6 || failed != 1 {
		t.Errorf("results = %d succeeded / %d failed, want 6/1", succeeded, failed)
	}

	if factory.made != 3 {
		t.Errorf("workers made = %d, want 3", factory.made)
	}
}

func TestParallelExecutor_WorkerCapAtSymbolCount(t *testing.T) {
	factory := &countingWorkerFactory{seen: make(map[string]int)}

	executor := NewParallelExecutor(factory, 10, t.TempDir())
	results := executor.RunPass([]string{"AAPL", "MSFT"}, "1y")

	if len(results) != 2 {
		t.Fatalf("RunPass() returned %d results, want 2", len(results))
	}
	if factory.made != 2 {
		t.Errorf("workers made = %d, want 2 for 2 symbols", factory.made)
	}
}

func TestParallelExecutor_DeadWorkerLeavesWorkToSiblings(t *testing.T) {
	// One worker fails Init while its sibling is healthy. The sibling must
	// receive and process every symbol; a dead worker never consumes work.
	symbols := []string{"AAPL", "MSFT", "GOOG", "AMZN", "META", "NVDA"}
	factory := &countingWorkerFactory{
		seen:     make(map[string]int),
		initErrs: []error{errors.New("connection refused")},
	}

	executor := NewParallelExecutor(factory, 2, t.TempDir())
	results := executor.RunPass(symbols, "5y")

	if len(results) != len(symbols) {
		t.Fatalf("RunPass() returned %d results, want %d", len(results), len(symbols))
	}
	for _, result := range results {
		if result.Status != STATUS_SUCCESS {
			t.Errorf("result = %+v, want success from the healthy sibling", result)
		}
	}
	for _, symbol := range symbols {
		if factory.seen[symbol] != 1 {
			t.Errorf("symbol %s attempted %d times, want 1", symbol, factory.seen[symbol])
		}
	}
}

func TestParallelExecutor_AllWorkersDead(t *testing.T) {
	// With no surviving worker nothing is processed, but every symbol is
	// still accounted for in the pass results.
	symbols := []string{"AAPL", "MSFT", "GOOG"}
	factory := &countingWorkerFactory{
		seen: make(map[string]int),
		initErrs: []error{
			errors.New("connection refused"),
			errors.New("connection refused"),
		},
	}

	executor := NewParallelExecutor(factory, 2, t.TempDir())
	results := executor.RunPass(symbols, "5y")

	if len(results) != len(symbols) {
		t.Fatalf("RunPass() returned %d results, want %d", len(results), len(symbols))
	}
	for _, result := range results {
		if result.Status != STATUS_FAILED || result.Reason != REASON_UNEXPECTED {
			t.Errorf("result = %+v, want unexpected failure", result)
		}
	}
	if len(factory.seen) != 0 {
		t.Errorf("symbols processed by dead workers: %v", factory.seen)
	}
}

func TestParallelExecutor_EmptyPass(t *testing.T) {
	factory := &countingWorkerFactory{seen: make(map[string]int)}
	executor := NewParallelExecutor(factory, 3, t.TempDir())
	if results := executor.RunPass(nil, "5y"); len(results) != 0 {
		t.Errorf("RunPass(nil) returned %d results, want 0", len(results))
	}
}
