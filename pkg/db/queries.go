// Package db provides user-isolated database queries for the bookkeeping suite.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrUserIDRequired = errors.New("user_id is required for data isolation")
	ErrNotFound       = errors.New("record not found")
)

// UserQueries provides user-isolated database queries.
type UserQueries struct {
	db *sql.DB
}

// NewUserQueries creates a new UserQueries instance.
func NewUserQueries(db *sql.DB) *UserQueries {
	return &UserQueries{db: db}
}

// ----------------------------------------
// Trading rules
// ----------------------------------------

// UpsertTradingRule creates or replaces the rule for a category+subcategory.
func (q *UserQueries) UpsertTradingRule(ctx context.Context, r TradingRule) error {
	if r.UserID == "" {
		return ErrUserIDRequired
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO trading_rules (
			id, user_id, category, subcategory, deposit_amount, withdrawal_amount,
			risk, reward, ratio, trading_days, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, category, subcategory) DO UPDATE SET
			deposit_amount = excluded.deposit_amount,
			withdrawal_amount = excluded.withdrawal_amount,
			risk = excluded.risk,
			reward = excluded.reward,
			ratio = excluded.ratio,
			trading_days = excluded.trading_days,
			updated_at = CURRENT_TIMESTAMP
	`, r.ID, r.UserID, r.Category, r.Subcategory, r.DepositAmount, r.WithdrawalAmount,
		r.Risk, r.Reward, r.Ratio, r.TradingDays)
	if err != nil {
		return fmt.Errorf("upsert trading rule: %w", err)
	}
	return nil
}

// GetTradingRule returns the rule for a category+subcategory, or nil when absent.
func (q *UserQueries) GetTradingRule(ctx context.Context, userID, category, subcategory string) (*TradingRule, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	var r TradingRule
	err := q.db.QueryRowContext(ctx, `
		SELECT id, user_id, category, subcategory, deposit_amount, withdrawal_amount,
		       risk, reward, COALESCE(ratio, ''), trading_days, created_at, updated_at
		FROM trading_rules
		WHERE user_id = ? AND category = ? AND subcategory = ?
	`, userID, category, subcategory).Scan(
		&r.ID, &r.UserID, &r.Category, &r.Subcategory, &r.DepositAmount, &r.WithdrawalAmount,
		&r.Risk, &r.Reward, &r.Ratio, &r.TradingDays, &r.CreatedAt, &r.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query trading rule: %w", err)
	}
	return &r, nil
}

// ListTradingRules returns all rules for a user.
func (q *UserQueries) ListTradingRules(ctx context.Context, userID string) ([]TradingRule, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, user_id, category, subcategory, deposit_amount, withdrawal_amount,
		       risk, reward, COALESCE(ratio, ''), trading_days, created_at, updated_at
		FROM trading_rules
		WHERE user_id = ?
		ORDER BY category, subcategory
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query trading rules: %w", err)
	}
	defer rows.Close()

	var res []TradingRule
	for rows.Next() {
		var r TradingRule
		if err := rows.Scan(&r.ID, &r.UserID, &r.Category, &r.Subcategory, &r.DepositAmount,
			&r.WithdrawalAmount, &r.Risk, &r.Reward, &r.Ratio, &r.TradingDays,
			&r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan trading rule: %w", err)
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

// DeleteTradingRule removes a rule; returns ErrNotFound when no row matched.
func (q *UserQueries) DeleteTradingRule(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUserIDRequired
	}
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM trading_rules WHERE user_id = ? AND id = ?
	`, userID, id)
	if err != nil {
		return fmt.Errorf("delete trading rule: %w", err)
	}
	return requireRow(res)
}

// ----------------------------------------
// Trade entries
// ----------------------------------------

// InsertTradeEntry inserts a journal row inside an existing transaction so the
// sequence assignment and the cap check stay atomic.
func InsertTradeEntry(ctx context.Context, tx *sql.Tx, e TradeEntry) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO trade_entries (
			id, user_id, category, subcategory, trade_date, sequence_no,
			entry_price, exit_price, profit_amount, loss_amount, brokerage, net_amount,
			trade_logic, mistakes, broker_name, segment, purpose
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.UserID, e.Category, e.Subcategory, e.TradeDate, e.SequenceNo,
		e.EntryPrice, e.ExitPrice, e.ProfitAmount, e.LossAmount, e.Brokerage, e.NetAmount,
		e.TradeLogic, e.Mistakes, e.BrokerName, e.Segment, e.Purpose)
	if err != nil {
		return fmt.Errorf("insert trade entry: %w", err)
	}
	return nil
}

// CountTradesForDay returns the trade count and the highest sequence number for
// a (category, subcategory, day) tuple, inside an existing transaction.
func CountTradesForDay(ctx context.Context, tx *sql.Tx, userID, category, subcategory, tradeDate string) (count, maxSeq int, err error) {
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(MAX(sequence_no), 0)
		FROM trade_entries
		WHERE user_id = ? AND category = ? AND subcategory = ? AND trade_date = ?
	`, userID, category, subcategory, tradeDate).Scan(&count, &maxSeq)
	if err != nil {
		return 0, 0, fmt.Errorf("count trades for day: %w", err)
	}
	return count, maxSeq, nil
}

// DayTradeCount returns how many trades exist for a (category, subcategory,
// day) tuple. Advisory only; the transactional count in CountTradesForDay is
// what gates admission.
func (q *UserQueries) DayTradeCount(ctx context.Context, userID, category, subcategory, tradeDate string) (int, error) {
	if userID == "" {
		return 0, ErrUserIDRequired
	}
	var count int
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM trade_entries
		WHERE user_id = ? AND category = ? AND subcategory = ? AND trade_date = ?
	`, userID, category, subcategory, tradeDate).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count day trades: %w", err)
	}
	return count, nil
}

// ListTradesForDay returns the day's entries in sequence order.
func (q *UserQueries) ListTradesForDay(ctx context.Context, userID, category, subcategory, tradeDate string) ([]TradeEntry, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, user_id, category, subcategory, trade_date, sequence_no,
		       entry_price, exit_price, profit_amount, loss_amount, brokerage, net_amount,
		       COALESCE(trade_logic, ''), COALESCE(mistakes, ''), COALESCE(broker_name, ''),
		       COALESCE(segment, ''), COALESCE(purpose, ''), created_at
		FROM trade_entries
		WHERE user_id = ? AND category = ? AND subcategory = ? AND trade_date = ?
		ORDER BY sequence_no
	`, userID, category, subcategory, tradeDate)
	if err != nil {
		return nil, fmt.Errorf("query trades for day: %w", err)
	}
	defer rows.Close()
	return scanTradeEntries(rows)
}

// ListTradesForMonth returns all entries whose trade_date falls in a YYYY-MM month.
func (q *UserQueries) ListTradesForMonth(ctx context.Context, userID, category, subcategory, month string) ([]TradeEntry, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, user_id, category, subcategory, trade_date, sequence_no,
		       entry_price, exit_price, profit_amount, loss_amount, brokerage, net_amount,
		       COALESCE(trade_logic, ''), COALESCE(mistakes, ''), COALESCE(broker_name, ''),
		       COALESCE(segment, ''), COALESCE(purpose, ''), created_at
		FROM trade_entries
		WHERE user_id = ? AND category = ? AND subcategory = ? AND trade_date LIKE ? || '-%'
		ORDER BY trade_date, sequence_no
	`, userID, category, subcategory, month)
	if err != nil {
		return nil, fmt.Errorf("query trades for month: %w", err)
	}
	defer rows.Close()
	return scanTradeEntries(rows)
}

// DeleteTradeEntry removes one journal row; returns ErrNotFound when absent.
func (q *UserQueries) DeleteTradeEntry(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUserIDRequired
	}
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM trade_entries WHERE user_id = ? AND id = ?
	`, userID, id)
	if err != nil {
		return fmt.Errorf("delete trade entry: %w", err)
	}
	return requireRow(res)
}

func scanTradeEntries(rows *sql.Rows) ([]TradeEntry, error) {
	var res []TradeEntry
	for rows.Next() {
		var e TradeEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Category, &e.Subcategory, &e.TradeDate,
			&e.SequenceNo, &e.EntryPrice, &e.ExitPrice, &e.ProfitAmount, &e.LossAmount,
			&e.Brokerage, &e.NetAmount, &e.TradeLogic, &e.Mistakes, &e.BrokerName,
			&e.Segment, &e.Purpose, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan trade entry: %w", err)
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

// ----------------------------------------
// Monthly summaries
// ----------------------------------------

// UpsertMonthlySummary creates or replaces the summary row for a month.
func (q *UserQueries) UpsertMonthlySummary(ctx context.Context, s MonthlySummary) error {
	if s.UserID == "" {
		return ErrUserIDRequired
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO monthly_summaries (
			id, user_id, month, income, expense, savings, investment, notes, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, month) DO UPDATE SET
			income = excluded.income,
			expense = excluded.expense,
			savings = excluded.savings,
			investment = excluded.investment,
			notes = excluded.notes,
			updated_at = CURRENT_TIMESTAMP
	`, s.ID, s.UserID, s.Month, s.Income, s.Expense, s.Savings, s.Investment, s.Notes)
	if err != nil {
		return fmt.Errorf("upsert monthly summary: %w", err)
	}
	return nil
}

// ListMonthlySummaries returns all summary rows, newest month first.
func (q *UserQueries) ListMonthlySummaries(ctx context.Context, userID string) ([]MonthlySummary, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, user_id, month, income, expense, savings, investment,
		       COALESCE(notes, ''), created_at, updated_at
		FROM monthly_summaries
		WHERE user_id = ?
		ORDER BY month DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query monthly summaries: %w", err)
	}
	defer rows.Close()

	var res []MonthlySummary
	for rows.Next() {
		var s MonthlySummary
		if err := rows.Scan(&s.ID, &s.UserID, &s.Month, &s.Income, &s.Expense, &s.Savings,
			&s.Investment, &s.Notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan monthly summary: %w", err)
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// DeleteMonthlySummary removes one month's row; ErrNotFound when absent.
func (q *UserQueries) DeleteMonthlySummary(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUserIDRequired
	}
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM monthly_summaries WHERE user_id = ? AND id = ?
	`, userID, id)
	if err != nil {
		return fmt.Errorf("delete monthly summary: %w", err)
	}
	return requireRow(res)
}

// ----------------------------------------
// Loans
// ----------------------------------------

// CreateLoan inserts a loan row.
func (q *UserQueries) CreateLoan(ctx context.Context, l Loan) error {
	if l.UserID == "" {
		return ErrUserIDRequired
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO loans (
			id, user_id, lender, principal, interest_rate, emi_amount, paid_amount,
			start_date, due_date, status, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, l.ID, l.UserID, l.Lender, l.Principal, l.InterestRate, l.EMIAmount, l.PaidAmount,
		l.StartDate, l.DueDate, l.Status, l.Notes)
	if err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

// UpdateLoan replaces the mutable loan fields.
func (q *UserQueries) UpdateLoan(ctx context.Context, l Loan) error {
	if l.UserID == "" {
		return ErrUserIDRequired
	}
	res, err := q.db.ExecContext(ctx, `
		UPDATE loans
		SET lender = ?, principal = ?, interest_rate = ?, emi_amount = ?, paid_amount = ?,
		    start_date = ?, due_date = ?, status = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND id = ?
	`, l.Lender, l.Principal, l.InterestRate, l.EMIAmount, l.PaidAmount,
		l.StartDate, l.DueDate, l.Status, l.Notes, l.UserID, l.ID)
	if err != nil {
		return fmt.Errorf("update loan: %w", err)
	}
	return requireRow(res)
}

// ListLoans returns all loans for a user, active first.
func (q *UserQueries) ListLoans(ctx context.Context, userID string) ([]Loan, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, user_id, lender, principal, interest_rate, emi_amount, paid_amount,
		       COALESCE(start_date, ''), COALESCE(due_date, ''), status,
		       COALESCE(notes, ''), created_at, updated_at
		FROM loans
		WHERE user_id = ?
		ORDER BY status, created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var res []Loan
	for rows.Next() {
		var l Loan
		if err := rows.Scan(&l.ID, &l.UserID, &l.Lender, &l.Principal, &l.InterestRate,
			&l.EMIAmount, &l.PaidAmount, &l.StartDate, &l.DueDate, &l.Status,
			&l.Notes, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		res = append(res, l)
	}
	return res, rows.Err()
}

// DeleteLoan removes a loan row; ErrNotFound when absent.
func (q *UserQueries) DeleteLoan(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUserIDRequired
	}
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM loans WHERE user_id = ? AND id = ?
	`, userID, id)
	if err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	return requireRow(res)
}

// ----------------------------------------
// Expenses (kharch)
// ----------------------------------------

// CreateExpense inserts one expense row.
func (q *UserQueries) CreateExpense(ctx context.Context, e Expense) error {
	if e.UserID == "" {
		return ErrUserIDRequired
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO expenses (id, user_id, title, amount, category, spent_on, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.UserID, e.Title, e.Amount, e.Category, e.SpentOn, e.Notes)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// ListExpensesForMonth returns the month's expenses, oldest first, so the
// caller can show a running total in entry order.
func (q *UserQueries) ListExpensesForMonth(ctx context.Context, userID, month string) ([]Expense, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, user_id, title, amount, COALESCE(category, ''), spent_on,
		       COALESCE(notes, ''), created_at
		FROM expenses
		WHERE user_id = ? AND spent_on LIKE ? || '-%'
		ORDER BY spent_on, created_at
	`, userID, month)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var res []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Amount, &e.Category,
			&e.SpentOn, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

// SumExpensesForMonth returns the month's total spend.
func (q *UserQueries) SumExpensesForMonth(ctx context.Context, userID, month string) (float64, error) {
	if userID == "" {
		return 0, ErrUserIDRequired
	}
	var total float64
	err := q.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = ? AND spent_on LIKE ? || '-%'
	`, userID, month).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}

// DeleteExpense removes one expense row; ErrNotFound when absent.
func (q *UserQueries) DeleteExpense(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUserIDRequired
	}
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM expenses WHERE user_id = ? AND id = ?
	`, userID, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRow(res)
}

// ----------------------------------------
// Media catalog
// ----------------------------------------

// CreateActress inserts a catalog entry.
func (q *UserQueries) CreateActress(ctx context.Context, a Actress) error {
	if a.UserID == "" {
		return ErrUserIDRequired
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO actresses (id, user_id, name, rating, tags, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, a.ID, a.UserID, a.Name, a.Rating, a.Tags, a.Notes)
	if err != nil {
		return fmt.Errorf("insert actress: %w", err)
	}
	return nil
}

// UpdateActress replaces the mutable catalog fields.
func (q *UserQueries) UpdateActress(ctx context.Context, a Actress) error {
	if a.UserID == "" {
		return ErrUserIDRequired
	}
	res, err := q.db.ExecContext(ctx, `
		UPDATE actresses
		SET name = ?, rating = ?, tags = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND id = ?
	`, a.Name, a.Rating, a.Tags, a.Notes, a.UserID, a.ID)
	if err != nil {
		return fmt.Errorf("update actress: %w", err)
	}
	return requireRow(res)
}

// ListActresses returns the catalog sorted by rating then name.
func (q *UserQueries) ListActresses(ctx context.Context, userID string) ([]Actress, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, user_id, name, rating, COALESCE(tags, ''), COALESCE(notes, ''),
		       created_at, updated_at
		FROM actresses
		WHERE user_id = ?
		ORDER BY rating DESC, name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query actresses: %w", err)
	}
	defer rows.Close()

	var res []Actress
	for rows.Next() {
		var a Actress
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Rating, &a.Tags, &a.Notes,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan actress: %w", err)
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

// GetActress returns one catalog entry, or nil when absent.
func (q *UserQueries) GetActress(ctx context.Context, userID, id string) (*Actress, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	var a Actress
	err := q.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, rating, COALESCE(tags, ''), COALESCE(notes, ''),
		       created_at, updated_at
		FROM actresses
		WHERE user_id = ? AND id = ?
	`, userID, id).Scan(&a.ID, &a.UserID, &a.Name, &a.Rating, &a.Tags, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query actress: %w", err)
	}
	return &a, nil
}

// DeleteActress removes a catalog entry and its gallery records.
func (q *UserQueries) DeleteActress(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUserIDRequired
	}
	if _, err := q.db.ExecContext(ctx, `
		DELETE FROM actress_images WHERE user_id = ? AND actress_id = ?
	`, userID, id); err != nil {
		return fmt.Errorf("delete actress images: %w", err)
	}
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM actresses WHERE user_id = ? AND id = ?
	`, userID, id)
	if err != nil {
		return fmt.Errorf("delete actress: %w", err)
	}
	return requireRow(res)
}

// CreateActressImage inserts one gallery record.
func (q *UserQueries) CreateActressImage(ctx context.Context, img ActressImage) error {
	if img.UserID == "" {
		return ErrUserIDRequired
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO actress_images (id, actress_id, user_id, url, caption, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`, img.ID, img.ActressID, img.UserID, img.URL, img.Caption, img.Position)
	if err != nil {
		return fmt.Errorf("insert actress image: %w", err)
	}
	return nil
}

// ListActressImages returns the gallery in display order.
func (q *UserQueries) ListActressImages(ctx context.Context, userID, actressID string) ([]ActressImage, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, actress_id, user_id, url, COALESCE(caption, ''), position, created_at
		FROM actress_images
		WHERE user_id = ? AND actress_id = ?
		ORDER BY position, created_at
	`, userID, actressID)
	if err != nil {
		return nil, fmt.Errorf("query actress images: %w", err)
	}
	defer rows.Close()

	var res []ActressImage
	for rows.Next() {
		var img ActressImage
		if err := rows.Scan(&img.ID, &img.ActressID, &img.UserID, &img.URL, &img.Caption,
			&img.Position, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan actress image: %w", err)
		}
		res = append(res, img)
	}
	return res, rows.Err()
}

// DeleteActressImage removes one gallery record; ErrNotFound when absent.
func (q *UserQueries) DeleteActressImage(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUserIDRequired
	}
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM actress_images WHERE user_id = ? AND id = ?
	`, userID, id)
	if err != nil {
		return fmt.Errorf("delete actress image: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
