package rules

import "github.com/shopspring/decimal"

// MaxTradesPerDay is the admission cap per category/subcategory/day.
const MaxTradesPerDay = 3

// TradingRule is the active risk/reward policy for one category+subcategory.
// Risk and Reward are independent non-negative bounds; nothing forces
// Reward > Risk. Ratio is informational only and never enters a computation.
type TradingRule struct {
	DepositAmount    decimal.Decimal
	WithdrawalAmount decimal.Decimal
	Risk             decimal.Decimal
	Reward           decimal.Decimal
	Ratio            string
	TradingDays      int
}

// NewRuleFromStored converts stored float figures into an evaluator rule.
func NewRuleFromStored(deposit, withdrawal, risk, reward float64, ratio string, tradingDays int) *TradingRule {
	return &TradingRule{
		DepositAmount:    decimal.NewFromFloat(deposit),
		WithdrawalAmount: decimal.NewFromFloat(withdrawal),
		Risk:             decimal.NewFromFloat(risk),
		Reward:           decimal.NewFromFloat(reward),
		Ratio:            ratio,
		TradingDays:      tradingDays,
	}
}

// Candidate is an in-progress, not-yet-persisted trade entry. All numeric
// fields arrive as raw form strings and are parsed here, never by the caller.
type Candidate struct {
	TradeEntry   string `json:"trade_entry"`
	TradeExit    string `json:"trade_exit"`
	ProfitAmount string `json:"profit_amount"`
	LossAmount   string `json:"loss_amount"`
	Brokerage    string `json:"brokerage"`
	TradeLogic   string `json:"trade_logic"`
	Mistakes     string `json:"mistakes,omitempty"`
	BrokerName   string `json:"broker_name,omitempty"`
	Segment      string `json:"segment,omitempty"`
	Purpose      string `json:"purpose,omitempty"`
}

// Reason tags a failed price validation.
type Reason string

const (
	ReasonBadFormat    Reason = "BAD_FORMAT"
	ReasonBelowMinimum Reason = "BELOW_MINIMUM"
)

// PriceValidation is the outcome of validating one price field. An empty
// field is "not yet entered": never OK, but carries no reason either, so the
// UI shows no error until the user has typed something.
type PriceValidation struct {
	OK     bool
	Reason Reason
}

// Result is the full evaluation of a candidate against the active rule.
// The three verdicts are tri-state: nil means "no rule", and the caller must
// render a neutral state, not a pass or a fail.
type Result struct {
	RewardOk         *bool           `json:"rewardOk"`
	RiskOk           *bool           `json:"riskOk"`
	RROk             *bool           `json:"rrOk"`
	Net              decimal.Decimal `json:"-"`
	Messages         []string        `json:"messages"`
	BigLoss          bool            `json:"bigLoss"`
	MaxTradesReached bool            `json:"maxTradesReached"`
	EntryPriceError  *string         `json:"entryPriceError"`
	ExitPriceError   *string         `json:"exitPriceError"`
}
