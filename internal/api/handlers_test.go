package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ledger-core/internal/events"
	"ledger-core/internal/journal"
	"ledger-core/internal/monitor"
	"ledger-core/pkg/db"
)

func newTestAPIServer(t *testing.T) (*httptest.Server, *db.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.New(":memory:")
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	if err := db.ApplyMigrations(database); err != nil {
		t.Fatalf("ApplyMigrations: %v", err)
	}

	bus := events.NewBus()
	metrics := monitor.NewSystemMetrics()
	journalMgr := journal.NewManager(database, bus, metrics)

	server := NewServer(bus, database, journalMgr, metrics, Options{
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		ResetCodeTTL:   15 * time.Minute,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		Meta:           SystemMeta{Version: "test", Language: "en"},
	})

	httpServer := httptest.NewServer(server.Router)

	cleanup := func() {
		httpServer.Close()
		_ = database.Close()
	}
	return httpServer, database, cleanup
}

func doJSONRequest(t *testing.T, client *http.Client, method, url, token string, payload any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func registerAndLogin(t *testing.T, client *http.Client, baseURL string) string {
	t.Helper()
	var regResp struct {
		UserID string `json:"user_id"`
	}
	status := doJSONRequest(t, client, http.MethodPost, baseURL+"/api/auth/register", "", map[string]string{
		"username": "tester",
		"email":    "tester@example.com",
		"password": "StrongPass123!",
	}, &regResp)
	if status != http.StatusCreated {
		t.Fatalf("register status=%d resp=%+v", status, regResp)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	status = doJSONRequest(t, client, http.MethodPost, baseURL+"/api/auth/login", "", map[string]string{
		"email":    "tester@example.com",
		"password": "StrongPass123!",
	}, &loginResp)
	if status != http.StatusOK || loginResp.Token == "" {
		t.Fatalf("login failed status=%d resp=%+v", status, loginResp)
	}
	return loginResp.Token
}

func TestRegisterValidation(t *testing.T) {
	ts, _, cleanup := newTestAPIServer(t)
	defer cleanup()
	client := ts.Client()

	var resp struct {
		Code string `json:"code"`
	}
	status := doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{
		"email":    "not-an-email",
		"password": "x",
	}, &resp)
	if status != http.StatusBadRequest || resp.Code != "INVALID_EMAIL" {
		t.Fatalf("expected 400 INVALID_EMAIL, got status=%d code=%s", status, resp.Code)
	}

	registerAndLogin(t, client, ts.URL)
	status = doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{
		"email":    "tester@example.com",
		"password": "AnotherPass!",
	}, &resp)
	if status != http.StatusConflict || resp.Code != "EMAIL_ALREADY_REGISTERED" {
		t.Fatalf("expected 409 EMAIL_ALREADY_REGISTERED, got status=%d code=%s", status, resp.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts, _, cleanup := newTestAPIServer(t)
	defer cleanup()

	var resp struct {
		Code string `json:"code"`
	}
	status := doJSONRequest(t, ts.Client(), http.MethodGet, ts.URL+"/api/rules", "", nil, &resp)
	if status != http.StatusUnauthorized || resp.Code != "MISSING_TOKEN" {
		t.Fatalf("expected 401 MISSING_TOKEN, got status=%d code=%s", status, resp.Code)
	}
}

func TestForgotPasswordFlow(t *testing.T) {
	ts, database, cleanup := newTestAPIServer(t)
	defer cleanup()
	client := ts.Client()
	registerAndLogin(t, client, ts.URL)

	// Unknown emails get the same answer as known ones.
	var forgotResp struct {
		Status string `json:"status"`
	}
	status := doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/auth/forgot", "", map[string]string{
		"email": "nobody@example.com",
	}, &forgotResp)
	if status != http.StatusOK || forgotResp.Status != "code_sent" {
		t.Fatalf("forgot (unknown) status=%d resp=%+v", status, forgotResp)
	}

	status = doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/auth/forgot", "", map[string]string{
		"email": "tester@example.com",
	}, &forgotResp)
	if status != http.StatusOK || forgotResp.Status != "code_sent" {
		t.Fatalf("forgot status=%d resp=%+v", status, forgotResp)
	}

	// The emailed code is only logged, so plant one with a known value.
	ctx := context.Background()
	user, err := database.GetUserByEmail(ctx, "tester@example.com")
	if err != nil || user == nil {
		t.Fatalf("load user: %v", err)
	}
	codeHash, err := hashPassword("424242")
	if err != nil {
		t.Fatalf("hash code: %v", err)
	}
	if err := database.CreatePasswordReset(ctx, db.PasswordReset{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CodeHash:  codeHash,
		ExpiresAt: time.Now().Add(15 * time.Minute),
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("create reset: %v", err)
	}

	var errResp struct {
		Code string `json:"code"`
	}
	status = doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/auth/forgot/verify", "", map[string]string{
		"email": "tester@example.com",
		"code":  "000000",
	}, &errResp)
	if status != http.StatusUnauthorized || errResp.Code != "INVALID_RESET_CODE" {
		t.Fatalf("wrong code: expected 401 INVALID_RESET_CODE, got status=%d code=%s", status, errResp.Code)
	}

	var verifyResp struct {
		ResetToken string `json:"reset_token"`
	}
	status = doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/auth/forgot/verify", "", map[string]string{
		"email": "tester@example.com",
		"code":  "424242",
	}, &verifyResp)
	if status != http.StatusOK || verifyResp.ResetToken == "" {
		t.Fatalf("verify status=%d resp=%+v", status, verifyResp)
	}

	var resetResp struct {
		Status string `json:"status"`
	}
	status = doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/auth/forgot/reset", "", map[string]string{
		"reset_token":  verifyResp.ResetToken,
		"new_password": "BrandNewPass456!",
	}, &resetResp)
	if status != http.StatusOK || resetResp.Status != "password_changed" {
		t.Fatalf("reset status=%d resp=%+v", status, resetResp)
	}

	// Step four: the old password is dead, the new one works.
	var loginResp struct {
		Token string `json:"token"`
	}
	status = doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"email":    "tester@example.com",
		"password": "StrongPass123!",
	}, &loginResp)
	if status != http.StatusUnauthorized {
		t.Fatalf("old password still accepted, status=%d", status)
	}
	status = doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"email":    "tester@example.com",
		"password": "BrandNewPass456!",
	}, &loginResp)
	if status != http.StatusOK || loginResp.Token == "" {
		t.Fatalf("new password login status=%d", status)
	}

	// The reset token is single-use.
	status = doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/auth/forgot/reset", "", map[string]string{
		"reset_token":  verifyResp.ResetToken,
		"new_password": "YetAnother789!",
	}, &errResp)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected used token to be rejected, status=%d", status)
	}
}

func TestRuleUpsertAndGet(t *testing.T) {
	ts, _, cleanup := newTestAPIServer(t)
	defer cleanup()
	client := ts.Client()
	token := registerAndLogin(t, client, ts.URL)

	var missing struct {
		Rule *db.TradingRule `json:"rule"`
	}
	status := doJSONRequest(t, client, http.MethodGet, ts.URL+"/api/rules/stock/intraday", token, nil, &missing)
	if status != http.StatusOK {
		t.Fatalf("get missing rule status=%d", status)
	}
	if missing.Rule != nil {
		t.Fatalf("expected null rule, got %+v", missing.Rule)
	}

	var rule db.TradingRule
	status = doJSONRequest(t, client, http.MethodPut, ts.URL+"/api/rules/stock/intraday", token, map[string]any{
		"deposit_amount": 10000,
		"risk":           150,
		"reward":         300,
		"ratio":          "2:1",
		"trading_days":   20,
	}, &rule)
	if status != http.StatusOK {
		t.Fatalf("upsert rule status=%d", status)
	}
	if rule.Risk != 150 || rule.Reward != 300 || rule.Ratio != "2:1" {
		t.Fatalf("stored rule mismatch: %+v", rule)
	}

	status = doJSONRequest(t, client, http.MethodPut, ts.URL+"/api/rules/stock/intraday", token, map[string]any{
		"risk":   -1,
		"reward": 300,
	}, &missing)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative risk, got %d", status)
	}

	var list struct {
		Rules []db.TradingRule `json:"rules"`
	}
	status = doJSONRequest(t, client, http.MethodGet, ts.URL+"/api/rules", token, nil, &list)
	if status != http.StatusOK || len(list.Rules) != 1 {
		t.Fatalf("list rules status=%d len=%d", status, len(list.Rules))
	}
}

func putTestRule(t *testing.T, client *http.Client, baseURL, token string) {
	t.Helper()
	status := doJSONRequest(t, client, http.MethodPut, baseURL+"/api/rules/stock/intraday", token, map[string]any{
		"risk":   150,
		"reward": 300,
		"ratio":  "2:1",
	}, nil)
	if status != http.StatusOK {
		t.Fatalf("put rule status=%d", status)
	}
}

func TestTradeSubmitAndDailyCap(t *testing.T) {
	ts, _, cleanup := newTestAPIServer(t)
	defer cleanup()
	client := ts.Client()
	token := registerAndLogin(t, client, ts.URL)
	putTestRule(t, client, ts.URL, token)

	submit := func(logic string) (int, map[string]json.RawMessage) {
		var resp map[string]json.RawMessage
		status := doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/trades", token, map[string]any{
			"category":      "stock",
			"subcategory":   "intraday",
			"trade_date":    "2026-08-03",
			"trade_entry":   "250",
			"trade_exit":    "255.50",
			"profit_amount": "200",
			"brokerage":     "10",
			"trade_logic":   logic,
		}, &resp)
		return status, resp
	}

	for i := 1; i <= 3; i++ {
		status, resp := submit(fmt.Sprintf("breakout #%d", i))
		if status != http.StatusCreated {
			t.Fatalf("trade %d status=%d resp=%v", i, status, resp)
		}
		var trade struct {
			SequenceNo int `json:"sequence_no"`
		}
		if err := json.Unmarshal(resp["trade"], &trade); err != nil {
			t.Fatalf("decode trade: %v", err)
		}
		if trade.SequenceNo != i {
			t.Fatalf("expected sequence %d, got %d", i, trade.SequenceNo)
		}
		if i == 1 {
			var eval struct {
				RewardOk *bool    `json:"rewardOk"`
				RiskOk   *bool    `json:"riskOk"`
				Net      float64  `json:"net"`
				Messages []string `json:"messages"`
			}
			if err := json.Unmarshal(resp["evaluation"], &eval); err != nil {
				t.Fatalf("decode evaluation: %v", err)
			}
			if eval.RewardOk == nil || *eval.RewardOk {
				t.Fatalf("profit 200 below reward 300 should fail the target, got %+v", eval.RewardOk)
			}
			if eval.RiskOk == nil || !*eval.RiskOk {
				t.Fatalf("no loss should pass the risk bound, got %+v", eval.RiskOk)
			}
			if eval.Net != 190 {
				t.Fatalf("expected net 190, got %v", eval.Net)
			}
			if len(eval.Messages) != 2 {
				t.Fatalf("expected target + ratio messages, got %v", eval.Messages)
			}
		}
	}

	var errResp struct {
		Code string `json:"code"`
	}
	status := doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/trades", token, map[string]any{
		"category":      "stock",
		"subcategory":   "intraday",
		"trade_date":    "2026-08-03",
		"trade_entry":   "250",
		"trade_exit":    "251",
		"profit_amount": "50",
		"trade_logic":   "one too many",
	}, &errResp)
	if status != http.StatusConflict || errResp.Code != "DAILY_CAP_REACHED" {
		t.Fatalf("expected 409 DAILY_CAP_REACHED, got status=%d code=%s", status, errResp.Code)
	}

	var day struct {
		TradesCount      int     `json:"trades_count"`
		NetPnl           float64 `json:"net_pnl"`
		MaxTradesReached bool    `json:"max_trades_reached"`
	}
	status = doJSONRequest(t, client, http.MethodGet,
		ts.URL+"/api/trades/day?category=stock&subcategory=intraday&date=2026-08-03", token, nil, &day)
	if status != http.StatusOK {
		t.Fatalf("day summary status=%d", status)
	}
	if day.TradesCount != 3 || !day.MaxTradesReached {
		t.Fatalf("day summary mismatch: %+v", day)
	}
	if day.NetPnl != 570 {
		t.Fatalf("expected net 570 over 3 trades, got %v", day.NetPnl)
	}
}

func TestEvaluateIsDryRun(t *testing.T) {
	ts, _, cleanup := newTestAPIServer(t)
	defer cleanup()
	client := ts.Client()
	token := registerAndLogin(t, client, ts.URL)
	putTestRule(t, client, ts.URL, token)

	var eval struct {
		RewardOk *bool   `json:"rewardOk"`
		Net      float64 `json:"net"`
	}
	status := doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/trades/evaluate", token, map[string]any{
		"category":      "stock",
		"subcategory":   "intraday",
		"trade_date":    "2026-08-03",
		"trade_entry":   "250",
		"trade_exit":    "260",
		"profit_amount": "400",
		"brokerage":     "10",
		"trade_logic":   "gap up",
	}, &eval)
	if status != http.StatusOK {
		t.Fatalf("evaluate status=%d", status)
	}
	if eval.RewardOk == nil || !*eval.RewardOk {
		t.Fatalf("profit 400 over reward 300 should pass, got %+v", eval.RewardOk)
	}
	if eval.Net != 390 {
		t.Fatalf("expected net 390, got %v", eval.Net)
	}

	var day struct {
		TradesCount int `json:"trades_count"`
	}
	status = doJSONRequest(t, client, http.MethodGet,
		ts.URL+"/api/trades/day?category=stock&subcategory=intraday&date=2026-08-03", token, nil, &day)
	if status != http.StatusOK || day.TradesCount != 0 {
		t.Fatalf("dry run persisted a trade: status=%d count=%d", status, day.TradesCount)
	}
}

func TestTradeRejections(t *testing.T) {
	ts, _, cleanup := newTestAPIServer(t)
	defer cleanup()
	client := ts.Client()
	token := registerAndLogin(t, client, ts.URL)

	cases := []struct {
		name     string
		payload  map[string]any
		wantCode string
	}{
		{
			name: "both profit and loss",
			payload: map[string]any{
				"trade_entry": "250", "trade_exit": "255",
				"profit_amount": "100", "loss_amount": "50",
				"trade_logic": "confused",
			},
			wantCode: "PROFIT_LOSS_EXCLUSIVE",
		},
		{
			name: "neither profit nor loss",
			payload: map[string]any{
				"trade_entry": "250", "trade_exit": "255",
				"trade_logic": "flat",
			},
			wantCode: "PROFIT_LOSS_EXCLUSIVE",
		},
		{
			name: "one decimal entry price",
			payload: map[string]any{
				"trade_entry": "230.3", "trade_exit": "255",
				"profit_amount": "100", "trade_logic": "bad price",
			},
			wantCode: "INVALID_ENTRY_PRICE",
		},
		{
			name: "missing trade logic",
			payload: map[string]any{
				"trade_entry": "250", "trade_exit": "255",
				"profit_amount": "100",
			},
			wantCode: "TRADE_LOGIC_REQUIRED",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := map[string]any{
				"category":    "stock",
				"subcategory": "intraday",
				"trade_date":  "2026-08-03",
			}
			for k, v := range tc.payload {
				payload[k] = v
			}
			var resp struct {
				Code string `json:"code"`
			}
			status := doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/trades", token, payload, &resp)
			if status != http.StatusBadRequest || resp.Code != tc.wantCode {
				t.Fatalf("expected 400 %s, got status=%d code=%s", tc.wantCode, status, resp.Code)
			}
		})
	}
}

func TestExpensesRunningTotal(t *testing.T) {
	ts, _, cleanup := newTestAPIServer(t)
	defer cleanup()
	client := ts.Client()
	token := registerAndLogin(t, client, ts.URL)

	for i, amount := range []float64{120, 80.5} {
		status := doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/expenses", token, map[string]any{
			"title":    fmt.Sprintf("hosting %d", i),
			"amount":   amount,
			"category": "site",
			"spent_on": "2026-08-10",
		}, nil)
		if status != http.StatusCreated {
			t.Fatalf("create expense status=%d", status)
		}
	}

	var list struct {
		Expenses []struct {
			Amount       float64 `json:"amount"`
			RunningTotal float64 `json:"running_total"`
		} `json:"expenses"`
		Total float64 `json:"total"`
	}
	status := doJSONRequest(t, client, http.MethodGet, ts.URL+"/api/expenses?month=2026-08", token, nil, &list)
	if status != http.StatusOK || len(list.Expenses) != 2 {
		t.Fatalf("list expenses status=%d len=%d", status, len(list.Expenses))
	}
	if list.Expenses[0].RunningTotal != 120 || list.Expenses[1].RunningTotal != 200.5 {
		t.Fatalf("running totals wrong: %+v", list.Expenses)
	}
	if list.Total != 200.5 {
		t.Fatalf("expected total 200.5, got %v", list.Total)
	}
}

func TestActressDuplicateName(t *testing.T) {
	ts, _, cleanup := newTestAPIServer(t)
	defer cleanup()
	client := ts.Client()
	token := registerAndLogin(t, client, ts.URL)

	var created db.Actress
	status := doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/actresses", token, map[string]any{
		"name":   "Asuka",
		"rating": 9,
	}, &created)
	if status != http.StatusCreated || created.ID == "" {
		t.Fatalf("create actress status=%d resp=%+v", status, created)
	}

	var errResp struct {
		Code string `json:"code"`
	}
	status = doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/actresses", token, map[string]any{
		"name":   "Asuka",
		"rating": 7,
	}, &errResp)
	if status != http.StatusConflict || errResp.Code != "DUPLICATE_NAME" {
		t.Fatalf("expected 409 DUPLICATE_NAME, got status=%d code=%s", status, errResp.Code)
	}

	status = doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/actresses/"+created.ID+"/images", token, map[string]any{
		"url":     "ftp://not-a-web-url",
		"caption": "nope",
	}, &errResp)
	if status != http.StatusBadRequest || errResp.Code != "INVALID_URL" {
		t.Fatalf("expected 400 INVALID_URL, got status=%d code=%s", status, errResp.Code)
	}

	var img db.ActressImage
	status = doJSONRequest(t, client, http.MethodPost, ts.URL+"/api/actresses/"+created.ID+"/images", token, map[string]any{
		"url":     "https://img.example.com/asuka/1.jpg",
		"caption": "cover",
	}, &img)
	if status != http.StatusCreated || img.ID == "" {
		t.Fatalf("create image status=%d resp=%+v", status, img)
	}
}
