package collector

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type FailureReason string

const (
	REASON_PERIOD_UNSUPPORTED FailureReason = "period_unsupported"
	REASON_NO_DATA            FailureReason = "no_data"
	REASON_SYMBOL_NOT_FOUND   FailureReason = "symbol_not_found"
	REASON_UNEXPECTED         FailureReason = "unexpected"
	REASON_PERSISTENCE        FailureReason = "persistence"
)

type Action int

const (
	ACTION_RETRY Action = iota
	ACTION_FAIL
)

// RetryDecision is the classified outcome of a failed fetch. ACTION_RETRY
// carries the window tier the symbol should be rescheduled at; ACTION_FAIL
// removes the symbol from the run.
type RetryDecision struct {
	Action Action
	Window TimeWindow
	Reason FailureReason
	Cause  error
}

// Classifier turns raw provider errors into retry decisions. The matching
// rules are built from configured patterns so that orchestration code never
// inspects provider wording itself.
type Classifier struct {
	tiers    []TimeWindow
	patterns []*regexp.Regexp
}

func NewClassifier(tiers []TimeWindow, patterns []string) (*Classifier, error) {
	if len(tiers) == 0 {
		return nil, errors.New("no window tiers configured")
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile period error pattern %q: %v", p, err)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("period error pattern %q has no capture group for the allowed periods", p)
		}
		compiled = append(compiled, re)
	}
	return &Classifier{tiers: tiers, patterns: compiled}, nil
}

// Classify maps a provider error raised at the given window to a retry
// decision.
//
// A period-mismatch error embeds the list of periods the provider does offer
// for the symbol. The symbol is rescheduled at the widest remaining tier that
// list contains, so a symbol rejected at 5y lands at 1y when the provider
// offers broad periods, or directly at the narrowest tier when it only offers
// the short ones. Anything unrecognised is a permanent failure for this run.
func (c *Classifier) Classify(err error, window TimeWindow) RetryDecision {
	var serverErr HttpServerError
	if errors.As(err, &serverErr) && serverErr.StatusCode() == HTTP_ERROR_NOT_FOUND {
		return RetryDecision{Action: ACTION_FAIL, Reason: REASON_SYMBOL_NOT_FOUND, Cause: err}
	}

	for _, re := range c.patterns {
		match := re.FindStringSubmatch(err.Error())
		if match == nil {
			continue
		}

		allowed := parseAllowedPeriods(match[1])
		idx := WindowIndex(c.tiers, window)
		if idx < 0 {
			idx = 0
		}
		for _, tier := range c.tiers[idx+1:] {
			if allowed[tier] {
				return RetryDecision{
					Action: ACTION_RETRY,
					Window: tier,
					Reason: REASON_PERIOD_UNSUPPORTED,
					Cause:  err,
				}
			}
		}

		if len(allowed) == 0 {
			// The wording matched but the allowed list did not parse. Retry
			// one tier down rather than discarding the symbol.
			if next, ok := NextNarrower(c.tiers, window); ok {
				return RetryDecision{
					Action: ACTION_RETRY,
					Window: next,
					Reason: REASON_PERIOD_UNSUPPORTED,
					Cause:  err,
				}
			}
		}
		return RetryDecision{Action: ACTION_FAIL, Reason: REASON_PERIOD_UNSUPPORTED, Cause: err}
	}

	return RetryDecision{Action: ACTION_FAIL, Reason: REASON_UNEXPECTED, Cause: err}
}

// NoData classifies an empty time series: retry one tier down, or give up at
// the narrowest tier.
func (c *Classifier) NoData(window TimeWindow) RetryDecision {
	if next, ok := NextNarrower(c.tiers, window); ok {
		return RetryDecision{Action: ACTION_RETRY, Window: next, Reason: REASON_NO_DATA}
	}
	return RetryDecision{Action: ACTION_FAIL, Reason: REASON_NO_DATA}
}

// parseAllowedPeriods extracts period tokens from text such as
// `'1d', '5d', '1mo', '1y'`.
func parseAllowedPeriods(list string) map[TimeWindow]bool {
	allowed := make(map[TimeWindow]bool)
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		tok = strings.Trim(tok, `'"`)
		if tok != "" {
			allowed[TimeWindow(tok)] = true
		}
	}
	return allowed
}
