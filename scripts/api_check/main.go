package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// api_check/main.go
//
// Small tool: smoke-check a running ledger-core server end to end.
// Registers a throwaway user, configures a rule, dry-runs an evaluation and
// submits one trade.
//
// Usage:
//
//	go run ./scripts/api_check
//
// Environment:
//
//	CHECK_BASE_URL  (default "http://localhost:8080")
func main() {
	log.Println("=== Ledger API check starting ===")

	baseURL := getenv("CHECK_BASE_URL", "http://localhost:8080")
	client := &http.Client{Timeout: 10 * time.Second}

	email := fmt.Sprintf("check-%d@example.com", time.Now().UnixNano())

	status, body := call(client, "POST", baseURL+"/api/auth/register", "", map[string]any{
		"username": "api-check",
		"email":    email,
		"password": "CheckPass123!",
	})
	must("register", status, http.StatusCreated, body)

	status, body = call(client, "POST", baseURL+"/api/auth/login", "", map[string]any{
		"email":    email,
		"password": "CheckPass123!",
	})
	must("login", status, http.StatusOK, body)
	token, _ := body["token"].(string)
	if token == "" {
		log.Fatalf("login returned no token: %v", body)
	}

	status, body = call(client, "PUT", baseURL+"/api/rules/stock/intraday", token, map[string]any{
		"risk":   150,
		"reward": 300,
		"ratio":  "2:1",
	})
	must("put rule", status, http.StatusOK, body)

	trade := map[string]any{
		"category":      "stock",
		"subcategory":   "intraday",
		"trade_date":    time.Now().Format("2006-01-02"),
		"trade_entry":   "250",
		"trade_exit":    "255.50",
		"profit_amount": "200",
		"brokerage":     "10",
		"trade_logic":   "api check",
	}

	status, body = call(client, "POST", baseURL+"/api/trades/evaluate", token, trade)
	must("evaluate", status, http.StatusOK, body)
	log.Printf("evaluate: net=%v rewardOk=%v messages=%v", body["net"], body["rewardOk"], body["messages"])

	status, body = call(client, "POST", baseURL+"/api/trades", token, trade)
	must("submit", status, http.StatusCreated, body)
	log.Println("=== Ledger API check OK ===")
}

func call(client *http.Client, method, url, token string, payload any) (int, map[string]any) {
	var buf bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			log.Fatalf("encode payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		log.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func must(step string, got, want int, body map[string]any) {
	if got != want {
		log.Fatalf("%s: expected %d, got %d (%v)", step, want, got, body)
	}
	log.Printf("%s: OK", step)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
