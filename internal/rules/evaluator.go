// Package rules evaluates a candidate trade against the active trading rule.
// Everything here is pure: no I/O, no stored state, and no panics on bad
// input. Malformed numbers become explicit validation reasons or zero values,
// never NaN. The caller re-runs Evaluate on every field edit.
package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"ledger-core/pkg/i18n"
)

// Whole number, or exactly two decimals. Anything else is a format error.
var pricePattern = regexp.MustCompile(`^\d+(\.\d{2})?$`)

var minPrice = decimal.NewFromInt(1)

// ValidatePriceField checks one raw price string. Empty input is "not yet
// entered": not OK, but with no reason so the UI stays quiet.
func ValidatePriceField(raw string) PriceValidation {
	if raw == "" {
		return PriceValidation{}
	}
	if !pricePattern.MatchString(raw) {
		return PriceValidation{Reason: ReasonBadFormat}
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return PriceValidation{Reason: ReasonBadFormat}
	}
	if v.LessThan(minPrice) {
		return PriceValidation{Reason: ReasonBelowMinimum}
	}
	return PriceValidation{OK: true}
}

// parseAmount reads a monetary form field. Empty, whitespace or unparseable
// input counts as zero so the evaluator stays total.
func parseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// Evaluate maps (rule, candidate, day trade count) to a Result.
//
// With no rule the three verdicts stay nil. With a rule, rewardOk compares
// profit against the reward floor, riskOk compares loss against the risk
// ceiling, and the messages come out in a fixed order: target not met, risk
// exceeded, then the informational ratio line (always appended when the rule
// has one). Comparisons use the raw values; display rounding is not applied.
func Evaluate(rule *TradingRule, cand Candidate, dayTradeCount int) Result {
	profit := parseAmount(cand.ProfitAmount)
	loss := parseAmount(cand.LossAmount)
	brokerage := parseAmount(cand.Brokerage)

	res := Result{
		Net:              profit.Sub(loss).Sub(brokerage),
		MaxTradesReached: dayTradeCount >= MaxTradesPerDay,
		EntryPriceError:  priceError(cand.TradeEntry),
		ExitPriceError:   priceError(cand.TradeExit),
	}

	if rule == nil {
		return res
	}

	rewardOk := profit.GreaterThanOrEqual(rule.Reward)
	riskOk := loss.LessThanOrEqual(rule.Risk)
	rrOk := rewardOk && riskOk
	res.RewardOk = &rewardOk
	res.RiskOk = &riskOk
	res.RROk = &rrOk
	res.BigLoss = loss.GreaterThan(rule.Risk)

	if profit.IsPositive() && !rewardOk {
		res.Messages = append(res.Messages,
			fmt.Sprintf(i18n.M().TradeTargetNotMet, profit.String(), rule.Reward.String()))
	}
	if loss.IsPositive() && !riskOk {
		res.Messages = append(res.Messages,
			fmt.Sprintf(i18n.M().TradeRiskExceeded, loss.String(), rule.Risk.String()))
	}
	if rule.Ratio != "" {
		res.Messages = append(res.Messages, fmt.Sprintf(i18n.M().TradeRatioInfo, rule.Ratio))
	}

	return res
}

// CanSubmit is the advisory client gate: both prices valid, exactly one of
// profit/loss positive, non-empty trade logic, and the day cap not reached.
// The journal store re-checks all of this server-side and its verdict wins.
func CanSubmit(cand Candidate, entry, exit PriceValidation, maxTradesReached bool) bool {
	if !entry.OK || !exit.OK || maxTradesReached {
		return false
	}
	if strings.TrimSpace(cand.TradeLogic) == "" {
		return false
	}
	profit := parseAmount(cand.ProfitAmount)
	loss := parseAmount(cand.LossAmount)
	return profit.IsPositive() != loss.IsPositive()
}

// ApplyProfit sets the profit field and clears the loss field when the new
// profit is positive. Paired with ApplyLoss it keeps the two mutually
// exclusive at edit time.
func ApplyProfit(cand Candidate, raw string) Candidate {
	cand.ProfitAmount = raw
	if parseAmount(raw).IsPositive() {
		cand.LossAmount = ""
	}
	return cand
}

// ApplyLoss mirrors ApplyProfit for the loss field.
func ApplyLoss(cand Candidate, raw string) Candidate {
	cand.LossAmount = raw
	if parseAmount(raw).IsPositive() {
		cand.ProfitAmount = ""
	}
	return cand
}

func priceError(raw string) *string {
	v := ValidatePriceField(raw)
	if v.OK || v.Reason == "" {
		return nil
	}
	var msg string
	switch v.Reason {
	case ReasonBelowMinimum:
		msg = i18n.M().PriceBelowMinimum
	default:
		msg = i18n.M().PriceBadFormat
	}
	return &msg
}
