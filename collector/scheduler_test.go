package collector_test

import (
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/wayming/fdc/cache"
	. "github.com/wayming/fdc/collector"
	"github.com/wayming/fdc/config"
	"github.com/wayming/fdc/testcommon"
)

// scriptedExecutor replays canned per-symbol results and records the windows
// and symbol sets of every pass it runs.
type scriptedExecutor struct {
	// script maps window -> symbol -> result for that attempt.
	script map[TimeWindow]map[string]PassResult

	passWindows []TimeWindow
	passSymbols [][]string
}

func (e *scriptedExecutor) RunPass(symbols []string, window TimeWindow) []PassResult {
	e.passWindows = append(e.passWindows, window)
	e.passSymbols = append(e.passSymbols, append([]string(nil), symbols...))

	results := make([]PassResult, 0, len(symbols))
	for _, symbol := range symbols {
		if result, ok := e.script[window][symbol]; ok {
			result.Symbol = symbol
			results = append(results, result)
		} else {
			results = append(results, PassResult{Symbol: symbol, Status: STATUS_SUCCESS})
		}
	}
	return results
}

func TestPassScheduler_Run(t *testing.T) {
	executor := &scriptedExecutor{
		script: map[TimeWindow]map[string]PassResult{
			"5y": {
				"AAPL":  {Status: STATUS_SUCCESS, Rows: 1250},
				"XYZ1W": {Status: STATUS_RETRY, Reason: REASON_PERIOD_UNSUPPORTED, NextWindow: "5d"},
				"DEAD":  {Status: STATUS_RETRY, Reason: REASON_NO_DATA, NextWindow: "1y"},
			},
			"1y": {
				"DEAD": {Status: STATUS_RETRY, Reason: REASON_NO_DATA, NextWindow: "5d"},
			},
			"5d": {
				"XYZ1W": {Status: STATUS_SUCCESS, Rows: 5},
				"DEAD":  {Status: STATUS_FAILED, Reason: REASON_NO_DATA},
			},
		},
	}

	scheduler := NewPassScheduler(testTiers, executor, nil, testcommon.TestLogger(t.Name()))
	summary, err := scheduler.Run([]string{"AAPL", "XYZ1W", "DEAD"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Passes != 3 {
		t.Errorf("passes = %d, want 3", summary.Passes)
	}
	if summary.Succeeded != 2 {
		t.Errorf("succeeded = %d, want 2", summary.Succeeded)
	}
	if summary.Rows != 1255 {
		t.Errorf("rows = %d, want 1255", summary.Rows)
	}
	if reason, ok := summary.Permanent["DEAD"]; !ok || reason != REASON_NO_DATA {
		t.Errorf("permanent failures = %v, want DEAD with no_data", summary.Permanent)
	}

	// Pass 2 runs only the symbol rescheduled at 1y; XYZ1W skipped straight
	// to 5d and must not be attempted at 1y.
	if len(executor.passSymbols[1]) != 1 || executor.passSymbols[1][0] != "DEAD" {
		t.Errorf("pass 2 symbols = %v, want [DEAD]", executor.passSymbols[1])
	}
	if len(executor.passSymbols[2]) != 2 {
		t.Errorf("pass 3 symbols = %v, want XYZ1W and DEAD", executor.passSymbols[2])
	}
}

func TestPassScheduler_NoWindowRetriedTwice(t *testing.T) {
	// Every attempt asks for a retry; the run must still finish within the
	// tier count with no tier visited twice.
	executor := &scriptedExecutor{
		script: map[TimeWindow]map[string]PassResult{
			"5y": {"X": {Status: STATUS_RETRY, Reason: REASON_NO_DATA, NextWindow: "1y"}},
			"1y": {"X": {Status: STATUS_RETRY, Reason: REASON_NO_DATA, NextWindow: "5d"}},
			"5d": {"X": {Status: STATUS_FAILED, Reason: REASON_NO_DATA}},
		},
	}

	scheduler := NewPassScheduler(testTiers, executor, nil, testcommon.TestLogger(t.Name()))
	summary, err := scheduler.Run([]string{"X"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Passes != 3 {
		t.Errorf("passes = %d, want 3", summary.Passes)
	}
	want := []TimeWindow{"5y", "1y", "5d"}
	for idx, window := range want {
		if executor.passWindows[idx] != window {
			t.Errorf("pass %d window = %v, want %v", idx+1, executor.passWindows[idx], window)
		}
	}
}

func TestPassScheduler_CycleGuard(t *testing.T) {
	// A classification that does not move the symbol to a narrower tier is
	// forced one tier down instead of looping.
	executor := &scriptedExecutor{
		script: map[TimeWindow]map[string]PassResult{
			"5y": {"X": {Status: STATUS_RETRY, Reason: REASON_PERIOD_UNSUPPORTED, NextWindow: "5y"}},
			"1y": {"X": {Status: STATUS_SUCCESS, Rows: 10}},
		},
	}

	scheduler := NewPassScheduler(testTiers, executor, nil, testcommon.TestLogger(t.Name()))
	summary, err := scheduler.Run([]string{"X"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Passes != 2 || summary.Succeeded != 1 {
		t.Errorf("summary = %+v, want success on the second pass", summary)
	}
	if executor.passWindows[1] != "1y" {
		t.Errorf("second pass window = %v, want 1y", executor.passWindows[1])
	}
}

// duplicatingExecutor reports the same symbol twice with different retry
// targets within one pass.
type duplicatingExecutor struct {
	scriptedExecutor
}

func (e *duplicatingExecutor) RunPass(symbols []string, window TimeWindow) []PassResult {
	e.passWindows = append(e.passWindows, window)
	e.passSymbols = append(e.passSymbols, append([]string(nil), symbols...))

	if window == "5y" {
		return []PassResult{
			{Symbol: "X", Status: STATUS_RETRY, Reason: REASON_NO_DATA, NextWindow: "1y"},
			{Symbol: "X", Status: STATUS_RETRY, Reason: REASON_PERIOD_UNSUPPORTED, NextWindow: "5d"},
		}
	}
	results := make([]PassResult, 0, len(symbols))
	for _, symbol := range symbols {
		results = append(results, PassResult{Symbol: symbol, Status: STATUS_SUCCESS})
	}
	return results
}

func TestPassScheduler_TieBreakPrefersNarrowerWindow(t *testing.T) {
	executor := &duplicatingExecutor{}

	scheduler := NewPassScheduler(testTiers, executor, nil, testcommon.TestLogger(t.Name()))
	summary, err := scheduler.Run([]string{"X"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// The symbol must surface once, at the narrower of the two targets.
	if summary.Passes != 2 {
		t.Fatalf("passes = %d, want 2", summary.Passes)
	}
	if executor.passWindows[1] != "5d" {
		t.Errorf("second pass window = %v, want 5d", executor.passWindows[1])
	}
	if len(executor.passSymbols[1]) != 1 || executor.passSymbols[1][0] != "X" {
		t.Errorf("second pass symbols = %v, want [X]", executor.passSymbols[1])
	}
}

func TestPassScheduler_Run_MirrorsPendingSet(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	// The full symbol set lands in the pending cache set before the first
	// pass and is cleared once that pass finished, so a kill mid-pass leaves
	// a resumable set behind.
	cm := cache.NewMockICacheManager(mockCtrl)
	cm.EXPECT().AddToSet(config.CACHE_KEY_SYMBOLS, "AAPL").Return(nil)
	cm.EXPECT().AddToSet(config.CACHE_KEY_SYMBOLS, "MSFT").Return(nil)
	cm.EXPECT().DeleteSet(config.CACHE_KEY_SYMBOLS).Return(nil)

	executor := &scriptedExecutor{}
	scheduler := NewPassScheduler(testTiers, executor, cm, testcommon.TestLogger(t.Name()))
	summary, err := scheduler.Run([]string{"AAPL", "MSFT"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Passes != 1 || summary.Succeeded != 2 {
		t.Errorf("summary = %+v, want one pass with two successes", summary)
	}
}

func TestPassScheduler_Resume(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	cm := cache.NewMockICacheManager(mockCtrl)
	cm.EXPECT().GetAllFromSet(config.CACHE_KEY_SYMBOLS).Return(nil, nil)
	cm.EXPECT().GetAllFromSet(RetryKey("1y")).Return([]string{"XYZ1W"}, nil)
	cm.EXPECT().GetAllFromSet(RetryKey("5d")).Return(nil, nil)
	cm.EXPECT().DeleteSet(RetryKey("1y")).Return(nil)

	executor := &scriptedExecutor{
		script: map[TimeWindow]map[string]PassResult{
			"1y": {"XYZ1W": {Status: STATUS_SUCCESS, Rows: 5}},
		},
	}

	scheduler := NewPassScheduler(testTiers, executor, cm, testcommon.TestLogger(t.Name()))
	summary, err := scheduler.Resume()
	if err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if summary.Passes != 1 || summary.Succeeded != 1 || summary.Rows != 5 {
		t.Errorf("summary = %+v, want one pass with one success", summary)
	}
	if executor.passWindows[0] != "1y" {
		t.Errorf("resumed pass window = %v, want 1y", executor.passWindows[0])
	}
}
