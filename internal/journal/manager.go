// Package journal owns the server side of the trade journal: admission
// control, sequence assignment, and day/month aggregation. The evaluator in
// internal/rules is advisory; whatever this package decides is authoritative,
// so a stale client cache can never push the day past the cap.
package journal

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"ledger-core/internal/events"
	"ledger-core/internal/monitor"
	"ledger-core/internal/rules"
	"ledger-core/pkg/cache"
	"ledger-core/pkg/db"
	"ledger-core/pkg/i18n"
)

// ruleCacheTTL bounds staleness for rule lookups that bypass invalidation
// (direct DB edits, seeding).
const ruleCacheTTL = 30 * time.Second

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// RejectError is a submit-time rejection with a stable machine code. These
// are business rejections, not server faults; the API maps them to 4xx.
type RejectError struct {
	Code    string
	Message string
}

func (e *RejectError) Error() string { return e.Message }

// Rejection codes.
const (
	CodeDailyCapReached     = "DAILY_CAP_REACHED"
	CodeInvalidEntryPrice   = "INVALID_ENTRY_PRICE"
	CodeInvalidExitPrice    = "INVALID_EXIT_PRICE"
	CodeTradeLogicRequired  = "TRADE_LOGIC_REQUIRED"
	CodeProfitLossExclusive = "PROFIT_LOSS_EXCLUSIVE"
	CodeInvalidTradeDate    = "INVALID_TRADE_DATE"
)

// Manager coordinates journal writes and reads over the DB.
type Manager struct {
	database  *db.Database
	queries   *db.UserQueries
	bus       *events.Bus
	metrics   *monitor.SystemMetrics
	ruleCache *cache.ShardedRuleCache
}

// NewManager creates a journal manager. bus and metrics may be nil.
func NewManager(database *db.Database, bus *events.Bus, metrics *monitor.SystemMetrics) *Manager {
	return &Manager{
		database:  database,
		queries:   db.NewUserQueries(database.DB),
		bus:       bus,
		metrics:   metrics,
		ruleCache: cache.NewShardedRuleCache(),
	}
}

// DaySummary is the derived per-day journal state.
type DaySummary struct {
	Category         string          `json:"category"`
	Subcategory      string          `json:"subcategory"`
	TradeDate        string          `json:"trade_date"`
	Entries          []db.TradeEntry `json:"entries"`
	TradesCount      int             `json:"trades_count"`
	NetPnl           float64         `json:"net_pnl"`
	MaxTradesReached bool            `json:"max_trades_reached"`
}

// DayRollup is one day's line inside a month summary.
type DayRollup struct {
	TradeDate   string  `json:"trade_date"`
	TradesCount int     `json:"trades_count"`
	NetPnl      float64 `json:"net_pnl"`
}

// MonthSummary aggregates a month of journal activity.
type MonthSummary struct {
	Category    string      `json:"category"`
	Subcategory string      `json:"subcategory"`
	Month       string      `json:"month"`
	Days        []DayRollup `json:"days"`
	TradesCount int         `json:"trades_count"`
	NetPnl      float64     `json:"net_pnl"`
}

// ActiveRule loads the evaluator rule for a category+subcategory, or nil when
// none is configured.
func (m *Manager) ActiveRule(ctx context.Context, userID, category, subcategory string) (*rules.TradingRule, error) {
	key := cache.Key(userID, category, subcategory)
	stored, hit := m.ruleCache.Get(key, ruleCacheTTL)
	if !hit {
		var err error
		stored, err = m.queries.GetTradingRule(ctx, userID, category, subcategory)
		if err != nil {
			return nil, err
		}
		m.ruleCache.Set(key, stored)
	}
	if stored == nil {
		return nil, nil
	}
	return rules.NewRuleFromStored(stored.DepositAmount, stored.WithdrawalAmount,
		stored.Risk, stored.Reward, stored.Ratio, stored.TradingDays), nil
}

// InvalidateRules drops a user's cached rules after a rule write.
func (m *Manager) InvalidateRules(userID string) {
	m.ruleCache.DeleteUser(userID)
}

// Evaluate runs the pure evaluator against the stored rule and the current
// day count. Used by the dry-run endpoint; nothing is persisted.
func (m *Manager) Evaluate(ctx context.Context, userID, category, subcategory, tradeDate string, cand rules.Candidate) (rules.Result, error) {
	if err := validTradeDate(tradeDate); err != nil {
		return rules.Result{}, err
	}
	rule, err := m.ActiveRule(ctx, userID, category, subcategory)
	if err != nil {
		return rules.Result{}, err
	}
	count, err := m.queries.DayTradeCount(ctx, userID, category, subcategory, tradeDate)
	if err != nil {
		return rules.Result{}, err
	}
	return rules.Evaluate(rule, cand, count), nil
}

// SubmitTrade validates a candidate, admits it against the day cap inside a
// transaction, assigns the next sequence number, and persists the row.
// Rule violations (reward not met, risk exceeded) never block; only format,
// required-field, and cap failures do.
func (m *Manager) SubmitTrade(ctx context.Context, userID, category, subcategory, tradeDate string, cand rules.Candidate) (*db.TradeEntry, rules.Result, error) {
	if err := validTradeDate(tradeDate); err != nil {
		return nil, rules.Result{}, err
	}
	if v := rules.ValidatePriceField(cand.TradeEntry); !v.OK {
		return nil, rules.Result{}, reject(CodeInvalidEntryPrice, priceMessage(v))
	}
	if v := rules.ValidatePriceField(cand.TradeExit); !v.OK {
		return nil, rules.Result{}, reject(CodeInvalidExitPrice, priceMessage(v))
	}
	if strings.TrimSpace(cand.TradeLogic) == "" {
		return nil, rules.Result{}, reject(CodeTradeLogicRequired, i18n.M().TradeLogicRequired)
	}

	profit := amountOrZero(cand.ProfitAmount)
	loss := amountOrZero(cand.LossAmount)
	// Mutual exclusivity re-checked at submit time: paired setters keep the
	// fields exclusive in the UI, but candidates can arrive by other paths.
	if (profit > 0) == (loss > 0) {
		return nil, rules.Result{}, reject(CodeProfitLossExclusive, i18n.M().ProfitLossExclusive)
	}

	rule, err := m.ActiveRule(ctx, userID, category, subcategory)
	if err != nil {
		return nil, rules.Result{}, err
	}

	dbStart := time.Now()
	tx, err := m.database.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, rules.Result{}, fmt.Errorf("begin submit tx: %w", err)
	}
	defer tx.Rollback()

	count, maxSeq, err := db.CountTradesForDay(ctx, tx, userID, category, subcategory, tradeDate)
	if err != nil {
		return nil, rules.Result{}, err
	}
	if count >= rules.MaxTradesPerDay {
		if m.metrics != nil {
			m.metrics.IncrementTradeRejections()
		}
		msg := fmt.Sprintf(i18n.M().DailyCapReached, category, subcategory, tradeDate)
		log.Printf(i18n.M().TradeRejected, msg)
		return nil, rules.Result{}, reject(CodeDailyCapReached, msg)
	}

	result := rules.Evaluate(rule, cand, count)

	entry := db.TradeEntry{
		ID:           uuid.NewString(),
		UserID:       userID,
		Category:     category,
		Subcategory:  subcategory,
		TradeDate:    tradeDate,
		SequenceNo:   maxSeq + 1,
		EntryPrice:   amountOrZero(cand.TradeEntry),
		ExitPrice:    amountOrZero(cand.TradeExit),
		ProfitAmount: profit,
		LossAmount:   loss,
		Brokerage:    amountOrZero(cand.Brokerage),
		NetAmount:    result.Net.InexactFloat64(),
		TradeLogic:   strings.TrimSpace(cand.TradeLogic),
		Mistakes:     cand.Mistakes,
		BrokerName:   cand.BrokerName,
		Segment:      cand.Segment,
		Purpose:      cand.Purpose,
		CreatedAt:    time.Now(),
	}
	if err := db.InsertTradeEntry(ctx, tx, entry); err != nil {
		return nil, rules.Result{}, err
	}
	if err := tx.Commit(); err != nil {
		return nil, rules.Result{}, fmt.Errorf("commit submit tx: %w", err)
	}

	if m.metrics != nil {
		m.metrics.DBLatency.RecordDuration(time.Since(dbStart))
		m.metrics.IncrementTrades()
	}
	log.Printf(i18n.M().TradeRecorded, entry.SequenceNo, category, subcategory, tradeDate, entry.NetAmount)
	if result.BigLoss {
		log.Println(i18n.M().TradeBigLossAlert)
	}

	if m.bus != nil {
		m.bus.Publish(events.EventTradeAdded, events.JournalUpdate{
			Topic:       events.EventTradeAdded,
			JournalID:   entry.ID,
			Category:    category,
			Subcategory: subcategory,
			TradeDate:   tradeDate,
			SequenceNo:  entry.SequenceNo,
			NetAmount:   entry.NetAmount,
			TradesCount: count + 1,
		})
	}

	return &entry, result, nil
}

// DeleteTrade removes a journal row and announces the change.
func (m *Manager) DeleteTrade(ctx context.Context, userID, id string) error {
	if err := m.queries.DeleteTradeEntry(ctx, userID, id); err != nil {
		return err
	}
	log.Printf(i18n.M().TradeDeleted, id)
	if m.bus != nil {
		m.bus.Publish(events.EventTradeDeleted, events.JournalUpdate{
			Topic:     events.EventTradeDeleted,
			JournalID: id,
		})
	}
	return nil
}

// DaySummary returns the day's entries with count and net P&L.
func (m *Manager) DaySummary(ctx context.Context, userID, category, subcategory, tradeDate string) (*DaySummary, error) {
	if err := validTradeDate(tradeDate); err != nil {
		return nil, err
	}
	entries, err := m.queries.ListTradesForDay(ctx, userID, category, subcategory, tradeDate)
	if err != nil {
		return nil, err
	}
	sum := &DaySummary{
		Category:    category,
		Subcategory: subcategory,
		TradeDate:   tradeDate,
		Entries:     entries,
		TradesCount: len(entries),
	}
	for _, e := range entries {
		sum.NetPnl += e.NetAmount
	}
	sum.MaxTradesReached = sum.TradesCount >= rules.MaxTradesPerDay
	return sum, nil
}

// MonthSummary rolls a month of entries up into per-day lines and totals.
func (m *Manager) MonthSummary(ctx context.Context, userID, category, subcategory, month string) (*MonthSummary, error) {
	if !monthPattern.MatchString(month) {
		return nil, reject(CodeInvalidTradeDate, "month must be YYYY-MM")
	}
	entries, err := m.queries.ListTradesForMonth(ctx, userID, category, subcategory, month)
	if err != nil {
		return nil, err
	}

	sum := &MonthSummary{
		Category:    category,
		Subcategory: subcategory,
		Month:       month,
		TradesCount: len(entries),
	}
	for _, e := range entries {
		sum.NetPnl += e.NetAmount
		if n := len(sum.Days); n > 0 && sum.Days[n-1].TradeDate == e.TradeDate {
			sum.Days[n-1].TradesCount++
			sum.Days[n-1].NetPnl += e.NetAmount
			continue
		}
		sum.Days = append(sum.Days, DayRollup{
			TradeDate:   e.TradeDate,
			TradesCount: 1,
			NetPnl:      e.NetAmount,
		})
	}
	return sum, nil
}

// MonthOf computes the YYYY-MM key for a YYYY-MM-DD date.
func MonthOf(tradeDate string) string {
	if len(tradeDate) < 7 {
		return tradeDate
	}
	return tradeDate[:7]
}

func validTradeDate(tradeDate string) error {
	if _, err := time.Parse("2006-01-02", tradeDate); err != nil {
		return reject(CodeInvalidTradeDate, "trade_date must be YYYY-MM-DD")
	}
	return nil
}

func reject(code, msg string) *RejectError {
	return &RejectError{Code: code, Message: msg}
}

func priceMessage(v rules.PriceValidation) string {
	if v.Reason == rules.ReasonBelowMinimum {
		return i18n.M().PriceBelowMinimum
	}
	return i18n.M().PriceBadFormat
}

func amountOrZero(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
