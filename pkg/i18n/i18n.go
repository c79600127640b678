package i18n

import (
	"reflect"
	"sync"
)

// Language type
type Language string

const (
	LangEN Language = "en"
	LangHI Language = "hi"
)

// Messages holds all translatable strings
type Messages struct {
	// System
	Starting           string
	ConfigLoaded       string
	UsingDBPath        string
	ServerListening    string
	ShuttingDown       string
	ConfigLoadFailed   string
	DBInitFailed       string
	DBMigrationsFailed string
	APIServerError     string
	CategorySeedFailed string
	CategorySeedDone   string

	// Journal
	TradeRecorded        string
	TradeDeleted         string
	TradeRejected        string
	DailyCapReached      string
	JournalEventDropped  string

	// Rule evaluation (user-facing, rendered by the dashboard)
	TradeTargetNotMet   string
	TradeRiskExceeded   string
	TradeRatioInfo      string
	TradeBigLossAlert   string
	PriceBadFormat      string
	PriceBelowMinimum   string
	TradeLogicRequired  string
	ProfitLossExclusive string

	// Auth
	ResetCodeIssued   string
	ResetCodeInvalid  string
	ResetCodeExpired  string
	PasswordChanged   string

	// Ledger
	ExpenseRecorded string
	LoanRecorded    string
	SummarySaved    string
}

var (
	currentLang Language = LangEN
	mu          sync.RWMutex
	messages    *Messages
)

// English messages
var messagesEN = Messages{
	// System
	Starting:           "Starting ledger-core...",
	ConfigLoaded:       "Config loaded (Port: %s)",
	UsingDBPath:        "Using DB path: %s",
	ServerListening:    "Server listening on :%s",
	ShuttingDown:       "Shutting down gracefully...",
	ConfigLoadFailed:   "Failed to load config: %v",
	DBInitFailed:       "Failed to init database: %v",
	DBMigrationsFailed: "Failed to apply migrations: %v",
	APIServerError:     "API server error: %v",
	CategorySeedFailed: "Failed to seed categories: %v",
	CategorySeedDone:   "Seeded %d trading categories",

	// Journal
	TradeRecorded:       "Trade #%d recorded for %s/%s on %s (net %.2f)",
	TradeDeleted:        "Trade %s deleted",
	TradeRejected:       "Trade rejected: %s",
	DailyCapReached:     "Daily trade limit reached for %s/%s on %s",
	JournalEventDropped: "Journal event dropped (slow subscriber)",

	// Rule evaluation
	TradeTargetNotMet:   "Profit %s is below the reward target %s",
	TradeRiskExceeded:   "Loss %s exceeds the risk limit %s",
	TradeRatioInfo:      "Plan ratio is %s (reward:risk)",
	TradeBigLossAlert:   "Loss crossed the risk limit - stop trading for today",
	PriceBadFormat:      "Price must be a whole number or have exactly two decimals",
	PriceBelowMinimum:   "Price must be at least 1",
	TradeLogicRequired:  "Trade logic is required",
	ProfitLossExclusive: "Enter either a profit or a loss, not both",

	// Auth
	ResetCodeIssued:  "Password reset code issued for user %s",
	ResetCodeInvalid: "Invalid reset code",
	ResetCodeExpired: "Reset code expired, request a new one",
	PasswordChanged:  "Password changed for user %s",

	// Ledger
	ExpenseRecorded: "Expense recorded: %s %.2f",
	LoanRecorded:    "Loan recorded: %s %.2f",
	SummarySaved:    "Monthly summary saved for %s",
}

// Hindi messages
var messagesHI = Messages{
	// System
	Starting:           "ledger-core shuru ho raha hai...",
	ConfigLoaded:       "Config load ho gaya (Port: %s)",
	UsingDBPath:        "DB path: %s",
	ServerListening:    "Server :%s par chal raha hai",
	ShuttingDown:       "Server band ho raha hai...",
	ConfigLoadFailed:   "Config load nahi hua: %v",
	DBInitFailed:       "Database init nahi hua: %v",
	DBMigrationsFailed: "Database migration fail: %v",
	APIServerError:     "API server error: %v",
	CategorySeedFailed: "Category seed fail: %v",
	CategorySeedDone:   "%d trading categories seed ho gayi",

	// Journal
	TradeRecorded:       "Trade #%d record hua %s/%s ke liye %s ko (net %.2f)",
	TradeDeleted:        "Trade %s delete ho gaya",
	TradeRejected:       "Trade reject hua: %s",
	DailyCapReached:     "%s/%s ke liye %s ki daily trade limit poori ho gayi",
	JournalEventDropped: "Journal event drop hua (subscriber slow hai)",

	// Rule evaluation
	TradeTargetNotMet:   "Profit %s reward target %s se kam hai",
	TradeRiskExceeded:   "Loss %s risk limit %s se zyada hai",
	TradeRatioInfo:      "Plan ka ratio %s hai (reward:risk)",
	TradeBigLossAlert:   "Loss risk limit cross kar gaya - aaj trading band karo",
	PriceBadFormat:      "Price poora number ya theek do decimal ka hona chahiye",
	PriceBelowMinimum:   "Price kam se kam 1 hona chahiye",
	TradeLogicRequired:  "Trade logic likhna zaroori hai",
	ProfitLossExclusive: "Profit ya loss mein se ek hi bharo, dono nahi",

	// Auth
	ResetCodeIssued:  "User %s ke liye password reset code bheja gaya",
	ResetCodeInvalid: "Reset code galat hai",
	ResetCodeExpired: "Reset code expire ho gaya, naya maango",
	PasswordChanged:  "User %s ka password badal gaya",

	// Ledger
	ExpenseRecorded: "Kharch record hua: %s %.2f",
	LoanRecorded:    "Loan record hua: %s %.2f",
	SummarySaved:    "%s ka monthly summary save ho gaya",
}

func init() {
	messages = &messagesEN
}

// SetLanguage sets the current language
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()

	currentLang = lang
	switch lang {
	case LangHI:
		messages = &messagesHI
	default:
		messages = &messagesEN
	}
}

// GetLanguage returns the current language
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return currentLang
}

// M returns the current messages
func M() *Messages {
	mu.RLock()
	defer mu.RUnlock()
	return messages
}

// Get returns specific message by key dynamically using reflection
func Get(key string) string {
	msg := M()
	v := reflect.ValueOf(msg).Elem()
	f := v.FieldByName(key)
	if f.IsValid() && f.Kind() == reflect.String {
		return f.String()
	}
	return key
}
