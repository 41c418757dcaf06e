package collector

import (
	"errors"
	"log"

	"github.com/wayming/fdc/cache"
	"github.com/wayming/fdc/config"
)

type IPassExecutor interface {
	RunPass(symbols []string, window TimeWindow) []PassResult
}

// RunSummary aggregates one whole multi-pass run.
type RunSummary struct {
	Passes    int
	Succeeded int
	Rows      int64
	Permanent map[string]FailureReason
}

// PassScheduler drives the collection engine through the window tiers. Pass
// one runs the full symbol set at the widest tier; each later pass runs only
// the symbols rescheduled at that tier. A window is never visited twice per
// run, so every symbol is attempted at most once per tier and the run always
// terminates.
//
// The retry sets are mirrored into cache sets keyed per target window so that
// a killed run can be resumed; idempotent upserts make re-running committed
// symbols safe.
type PassScheduler struct {
	tiers    []TimeWindow
	executor IPassExecutor
	cm       cache.ICacheManager
	logger   *log.Logger
}

func NewPassScheduler(tiers []TimeWindow, executor IPassExecutor, cm cache.ICacheManager, logger *log.Logger) *PassScheduler {
	return &PassScheduler{
		tiers:    tiers,
		executor: executor,
		cm:       cm,
		logger:   logger,
	}
}

func RetryKey(window TimeWindow) string {
	return config.CACHE_KEY_RETRY_PREFIX + string(window)
}

// Run sweeps the full symbol set starting at the widest tier. The set is
// mirrored into the pending cache set so that a run killed during the first
// pass can still be resumed.
func (s *PassScheduler) Run(symbols []string) (RunSummary, error) {
	if len(s.tiers) == 0 {
		return RunSummary{}, errors.New("no window tiers configured")
	}
	for _, symbol := range symbols {
		s.cacheAdd(config.CACHE_KEY_SYMBOLS, symbol)
	}
	pending := map[TimeWindow][]string{
		s.tiers[0]: symbols,
	}
	return s.run(pending)
}

// Resume seeds the pending sets from the cached retry sets of an earlier,
// interrupted run and continues from there.
func (s *PassScheduler) Resume() (RunSummary, error) {
	if s.cm == nil {
		return RunSummary{}, errors.New("cannot resume without a cache manager")
	}
	pending := make(map[TimeWindow][]string)
	for idx, tier := range s.tiers {
		members, err := s.cm.GetAllFromSet(s.seedKey(idx, tier))
		if err != nil {
			return RunSummary{}, err
		}
		if len(members) > 0 {
			pending[tier] = members
		}
	}
	return s.run(pending)
}

// seedKey is the cache set backing the pending symbols of one tier: the
// widest tier is fed by the full pending set, every later tier by its retry
// set.
func (s *PassScheduler) seedKey(idx int, tier TimeWindow) string {
	if idx == 0 {
		return config.CACHE_KEY_SYMBOLS
	}
	return RetryKey(tier)
}

func (s *PassScheduler) run(pending map[TimeWindow][]string) (RunSummary, error) {
	summary := RunSummary{
		Permanent: make(map[string]FailureReason),
	}

	for idx, tier := range s.tiers {
		symbols := pending[tier]
		delete(pending, tier)
		if len(symbols) == 0 {
			continue
		}

		summary.Passes++
		s.logger.Printf("Pass %d: %d symbols at window %s", summary.Passes, len(symbols), tier)

		results := s.executor.RunPass(symbols, tier)
		for _, result := range results {
			switch result.Status {
			case STATUS_SUCCESS:
				summary.Succeeded++
				summary.Rows += result.Rows
			case STATUS_RETRY:
				target := result.NextWindow
				if WindowIndex(s.tiers, target) <= idx {
					// Defend against a classification that does not move the
					// symbol forward; without this the run could cycle.
					next, ok := NextNarrower(s.tiers, tier)
					if !ok {
						summary.Permanent[result.Symbol] = result.Reason
						s.cacheAdd(config.CACHE_KEY_SYMBOLS_INVALID, result.Symbol)
						continue
					}
					target = next
				}
				s.addRetry(pending, result.Symbol, target)
			case STATUS_FAILED:
				summary.Permanent[result.Symbol] = result.Reason
				s.cacheAdd(config.CACHE_KEY_SYMBOLS_INVALID, result.Symbol)
			}
		}

		s.cacheDelete(s.seedKey(idx, tier))
	}

	for symbol, reason := range summary.Permanent {
		s.logger.Printf("Symbol %s failed permanently: %s", symbol, reason)
	}
	s.logger.Printf("Run complete: %d passes, %d symbols succeeded, %d rows, %d permanent failures",
		summary.Passes, summary.Succeeded, summary.Rows, len(summary.Permanent))
	return summary, nil
}

// addRetry queues symbol at the target tier. When the symbol is already
// queued at another tier the narrower of the two wins, failing safe toward
// the most permissive retry.
func (s *PassScheduler) addRetry(pending map[TimeWindow][]string, symbol string, target TimeWindow) {
	for tier, symbols := range pending {
		for i, queued := range symbols {
			if queued != symbol {
				continue
			}
			if IsNarrower(s.tiers, target, tier) {
				pending[tier] = append(symbols[:i], symbols[i+1:]...)
				s.cacheRemoveAdd(tier, target, symbol)
				pending[target] = append(pending[target], symbol)
			}
			return
		}
	}
	pending[target] = append(pending[target], symbol)
	s.cacheAdd(RetryKey(target), symbol)
}

func (s *PassScheduler) cacheAdd(key string, member string) {
	if s.cm == nil {
		return
	}
	if err := s.cm.AddToSet(key, member); err != nil {
		s.logger.Printf("Failed to track %s in cache set %s. Error: %v", member, key, err)
	}
}

func (s *PassScheduler) cacheDelete(key string) {
	if s.cm == nil {
		return
	}
	if err := s.cm.DeleteSet(key); err != nil {
		s.logger.Printf("Failed to delete cache set %s. Error: %v", key, err)
	}
}

func (s *PassScheduler) cacheRemoveAdd(from TimeWindow, to TimeWindow, symbol string) {
	if s.cm == nil {
		return
	}
	if err := s.cm.RemoveFromSet(RetryKey(from), symbol); err != nil {
		s.logger.Printf("Failed to untrack %s from cache set %s. Error: %v", symbol, RetryKey(from), err)
	}
	s.cacheAdd(RetryKey(to), symbol)
}
