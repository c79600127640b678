package events

// Event enumerates high-level topics inside the bookkeeping core.
type Event string

const (
	EventTradeAdded     Event = "journal.trade_added"
	EventTradeDeleted   Event = "journal.trade_deleted"
	EventExpenseAdded   Event = "expense.added"
	EventSummaryUpdated Event = "summary.updated"
)

// JournalUpdate is the payload published for journal topics and streamed to
// the dashboard over the websocket.
type JournalUpdate struct {
	Topic       Event   `json:"topic"`
	JournalID   string  `json:"journal_id,omitempty"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	TradeDate   string  `json:"trade_date"`
	SequenceNo  int     `json:"sequence_no,omitempty"`
	NetAmount   float64 `json:"net_amount"`
	TradesCount int     `json:"trades_count"`
}

// LedgerUpdate is the payload for expense and summary topics.
type LedgerUpdate struct {
	Topic  Event   `json:"topic"`
	ID     string  `json:"id"`
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}
