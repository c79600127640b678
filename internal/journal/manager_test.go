package journal

import (
	"context"
	"errors"
	"testing"

	"ledger-core/internal/events"
	"ledger-core/internal/rules"
	"ledger-core/pkg/db"
)

func newTestManager(t *testing.T) (*Manager, *db.Database) {
	t.Helper()
	database, err := db.New(":memory:")
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := db.ApplyMigrations(database); err != nil {
		t.Fatalf("ApplyMigrations: %v", err)
	}
	return NewManager(database, events.NewBus(), nil), database
}

func validCandidate(profit string) rules.Candidate {
	return rules.Candidate{
		TradeEntry:   "230.30",
		TradeExit:    "235.00",
		ProfitAmount: profit,
		Brokerage:    "10",
		TradeLogic:   "breakout retest",
	}
}

func TestSubmitTradeAssignsSequenceAndEnforcesCap(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	for i := 1; i <= rules.MaxTradesPerDay; i++ {
		entry, _, err := mgr.SubmitTrade(ctx, "u1", "equity", "intraday", "2026-08-03", validCandidate("200"))
		if err != nil {
			t.Fatalf("trade %d rejected: %v", i, err)
		}
		if entry.SequenceNo != i {
			t.Fatalf("trade %d got sequence %d", i, entry.SequenceNo)
		}
	}

	_, _, err := mgr.SubmitTrade(ctx, "u1", "equity", "intraday", "2026-08-03", validCandidate("200"))
	var rej *RejectError
	if !errors.As(err, &rej) || rej.Code != CodeDailyCapReached {
		t.Fatalf("fourth trade: want DAILY_CAP_REACHED, got %v", err)
	}

	// Other days and subcategories are unaffected by the cap.
	if _, _, err := mgr.SubmitTrade(ctx, "u1", "equity", "intraday", "2026-08-04", validCandidate("200")); err != nil {
		t.Fatalf("next day rejected: %v", err)
	}
	if _, _, err := mgr.SubmitTrade(ctx, "u1", "equity", "swing", "2026-08-03", validCandidate("200")); err != nil {
		t.Fatalf("other subcategory rejected: %v", err)
	}

	// And other users too.
	if _, _, err := mgr.SubmitTrade(ctx, "u2", "equity", "intraday", "2026-08-03", validCandidate("200")); err != nil {
		t.Fatalf("other user rejected: %v", err)
	}
}

func TestSubmitTradeRejections(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		date     string
		mutate   func(*rules.Candidate)
		wantCode string
	}{
		{"bad entry price", "2026-08-03", func(c *rules.Candidate) { c.TradeEntry = "230.3" }, CodeInvalidEntryPrice},
		{"exit below minimum", "2026-08-03", func(c *rules.Candidate) { c.TradeExit = "0.50" }, CodeInvalidExitPrice},
		{"missing trade logic", "2026-08-03", func(c *rules.Candidate) { c.TradeLogic = "  " }, CodeTradeLogicRequired},
		{"neither profit nor loss", "2026-08-03", func(c *rules.Candidate) { c.ProfitAmount = "0" }, CodeProfitLossExclusive},
		{"both profit and loss", "2026-08-03", func(c *rules.Candidate) { c.LossAmount = "50" }, CodeProfitLossExclusive},
		{"bad date", "03-08-2026", func(c *rules.Candidate) {}, CodeInvalidTradeDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := validCandidate("200")
			tt.mutate(&cand)
			_, _, err := mgr.SubmitTrade(ctx, "u1", "equity", "intraday", tt.date, cand)
			var rej *RejectError
			if !errors.As(err, &rej) {
				t.Fatalf("want RejectError, got %v", err)
			}
			if rej.Code != tt.wantCode {
				t.Fatalf("code = %s, want %s", rej.Code, tt.wantCode)
			}
		})
	}
}

func TestSubmitTradeEvaluatesAgainstStoredRule(t *testing.T) {
	mgr, database := newTestManager(t)
	ctx := context.Background()

	queries := db.NewUserQueries(database.DB)
	if err := queries.UpsertTradingRule(ctx, db.TradingRule{
		ID: "r1", UserID: "u1", Category: "equity", Subcategory: "intraday",
		Risk: 150, Reward: 300, Ratio: "2:1",
	}); err != nil {
		t.Fatalf("UpsertTradingRule: %v", err)
	}

	entry, result, err := mgr.SubmitTrade(ctx, "u1", "equity", "intraday", "2026-08-03", validCandidate("200"))
	if err != nil {
		t.Fatalf("SubmitTrade: %v", err)
	}
	if entry.NetAmount != 190 {
		t.Fatalf("net = %v, want 190", entry.NetAmount)
	}
	// Rule violations are advisory: the trade persisted even though the
	// reward target was missed.
	if result.RewardOk == nil || *result.RewardOk {
		t.Fatal("rewardOk should be false for profit 200 against reward 300")
	}
	if len(result.Messages) == 0 {
		t.Fatal("expected advisory messages")
	}
}

func TestSubmitTradeFlagsBigLoss(t *testing.T) {
	mgr, database := newTestManager(t)
	ctx := context.Background()

	queries := db.NewUserQueries(database.DB)
	if err := queries.UpsertTradingRule(ctx, db.TradingRule{
		ID: "r1", UserID: "u1", Category: "equity", Subcategory: "intraday",
		Risk: 150, Reward: 300,
	}); err != nil {
		t.Fatalf("UpsertTradingRule: %v", err)
	}

	cand := validCandidate("")
	cand.LossAmount = "500"
	entry, result, err := mgr.SubmitTrade(ctx, "u1", "equity", "intraday", "2026-08-03", cand)
	if err != nil {
		t.Fatalf("big loss must not block the submit: %v", err)
	}
	if !result.BigLoss {
		t.Fatal("loss 500 against risk 150 should flag bigLoss")
	}
	if result.RiskOk == nil || *result.RiskOk {
		t.Fatal("bigLoss implies riskOk false")
	}
	// -500 - 10 brokerage
	if entry.NetAmount != -510 {
		t.Fatalf("net = %v, want -510", entry.NetAmount)
	}
}

func TestDaySummary(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	if _, _, err := mgr.SubmitTrade(ctx, "u1", "fno", "options", "2026-08-03", validCandidate("500")); err != nil {
		t.Fatalf("SubmitTrade: %v", err)
	}
	loser := validCandidate("")
	loser.LossAmount = "150"
	if _, _, err := mgr.SubmitTrade(ctx, "u1", "fno", "options", "2026-08-03", loser); err != nil {
		t.Fatalf("SubmitTrade: %v", err)
	}

	sum, err := mgr.DaySummary(ctx, "u1", "fno", "options", "2026-08-03")
	if err != nil {
		t.Fatalf("DaySummary: %v", err)
	}
	if sum.TradesCount != 2 {
		t.Fatalf("trades_count = %d, want 2", sum.TradesCount)
	}
	// (500-10) + (-150-10)
	if sum.NetPnl != 330 {
		t.Fatalf("net_pnl = %v, want 330", sum.NetPnl)
	}
	if sum.MaxTradesReached {
		t.Fatal("cap not reached at two trades")
	}
}

func TestMonthSummaryRollsUpByDay(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	for _, date := range []string{"2026-08-03", "2026-08-03", "2026-08-05"} {
		if _, _, err := mgr.SubmitTrade(ctx, "u1", "equity", "intraday", date, validCandidate("100")); err != nil {
			t.Fatalf("SubmitTrade(%s): %v", date, err)
		}
	}
	// Outside the month, must not appear.
	if _, _, err := mgr.SubmitTrade(ctx, "u1", "equity", "intraday", "2026-09-01", validCandidate("100")); err != nil {
		t.Fatalf("SubmitTrade: %v", err)
	}

	sum, err := mgr.MonthSummary(ctx, "u1", "equity", "intraday", "2026-08")
	if err != nil {
		t.Fatalf("MonthSummary: %v", err)
	}
	if sum.TradesCount != 3 {
		t.Fatalf("trades_count = %d, want 3", sum.TradesCount)
	}
	if len(sum.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(sum.Days))
	}
	if sum.Days[0].TradeDate != "2026-08-03" || sum.Days[0].TradesCount != 2 {
		t.Fatalf("first rollup wrong: %+v", sum.Days[0])
	}
	if sum.NetPnl != 270 {
		t.Fatalf("net_pnl = %v, want 270", sum.NetPnl)
	}
}

func TestDeleteTrade(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	entry, _, err := mgr.SubmitTrade(ctx, "u1", "equity", "intraday", "2026-08-03", validCandidate("200"))
	if err != nil {
		t.Fatalf("SubmitTrade: %v", err)
	}
	if err := mgr.DeleteTrade(ctx, "u1", entry.ID); err != nil {
		t.Fatalf("DeleteTrade: %v", err)
	}
	if err := mgr.DeleteTrade(ctx, "u1", entry.ID); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
	// Another user cannot delete someone else's row.
	entry2, _, err := mgr.SubmitTrade(ctx, "u1", "equity", "intraday", "2026-08-03", validCandidate("200"))
	if err != nil {
		t.Fatalf("SubmitTrade: %v", err)
	}
	if err := mgr.DeleteTrade(ctx, "u2", entry2.ID); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("cross-user delete: want ErrNotFound, got %v", err)
	}
}
