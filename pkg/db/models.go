package db

import (
	"context"
	"database/sql"
	"time"
)

// User represents an application user.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PasswordReset tracks one forgot-password attempt. The six digit code is
// stored hashed; reset_token is issued only after the code is verified.
type PasswordReset struct {
	ID         string
	UserID     string
	CodeHash   string
	ResetToken string
	ExpiresAt  time.Time
	UsedAt     *time.Time
	CreatedAt  time.Time
}

// TradingRule is the risk/reward policy for one category+subcategory.
type TradingRule struct {
	ID               string    `json:"id"`
	UserID           string    `json:"-"`
	Category         string    `json:"category"`
	Subcategory      string    `json:"subcategory"`
	DepositAmount    float64   `json:"deposit_amount"`
	WithdrawalAmount float64   `json:"withdrawal_amount"`
	Risk             float64   `json:"risk"`
	Reward           float64   `json:"reward"`
	Ratio            string    `json:"ratio,omitempty"`
	TradingDays      int       `json:"trading_days"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TradeEntry is one persisted journal row. SequenceNo is assigned by the
// journal manager per (user, category, subcategory, trade_date).
type TradeEntry struct {
	ID           string    `json:"journal_id"`
	UserID       string    `json:"-"`
	Category     string    `json:"category"`
	Subcategory  string    `json:"subcategory"`
	TradeDate    string    `json:"trade_date"`
	SequenceNo   int       `json:"sequence_no"`
	EntryPrice   float64   `json:"trade_entry"`
	ExitPrice    float64   `json:"trade_exit"`
	ProfitAmount float64   `json:"profit_amount"`
	LossAmount   float64   `json:"loss_amount"`
	Brokerage    float64   `json:"brokerage"`
	NetAmount    float64   `json:"net_amount"`
	TradeLogic   string    `json:"trade_logic"`
	Mistakes     string    `json:"mistakes,omitempty"`
	BrokerName   string    `json:"broker_name,omitempty"`
	Segment      string    `json:"segment,omitempty"`
	Purpose      string    `json:"purpose,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MonthlySummary is one row of the monthly financial summary page.
type MonthlySummary struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	Month      string    `json:"month"` // YYYY-MM
	Income     float64   `json:"income"`
	Expense    float64   `json:"expense"`
	Savings    float64   `json:"savings"`
	Investment float64   `json:"investment"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Loan statuses.
const (
	LoanActive = "ACTIVE"
	LoanClosed = "CLOSED"
)

// Loan tracks borrowed money and repayment progress.
type Loan struct {
	ID           string    `json:"id"`
	UserID       string    `json:"-"`
	Lender       string    `json:"lender"`
	Principal    float64   `json:"principal"`
	InterestRate float64   `json:"interest_rate"`
	EMIAmount    float64   `json:"emi_amount"`
	PaidAmount   float64   `json:"paid_amount"`
	StartDate    string    `json:"start_date,omitempty"`
	DueDate      string    `json:"due_date,omitempty"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Expense is one site-expense (kharch) row.
type Expense struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category,omitempty"`
	SpentOn   string    `json:"spent_on"` // YYYY-MM-DD
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Actress is one media-catalog favourite.
type Actress struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Tags      string    `json:"tags,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActressImage is one gallery record (a URL, not a stored blob).
type ActressImage struct {
	ID        string    `json:"id"`
	ActressID string    `json:"actress_id"`
	UserID    string    `json:"-"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUser inserts a new user row.
func (d *Database) CreateUser(ctx context.Context, u User) error {
	_, err := d.DB.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP), COALESCE(?, CURRENT_TIMESTAMP))
	`, u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	return err
}

// GetUserByEmail returns the user with the given email, or nil when absent.
func (d *Database) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := d.DB.QueryRowContext(ctx, `
		SELECT id, COALESCE(username, ''), email, password_hash, created_at, updated_at
		FROM users WHERE email = ?
	`, email).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID returns the user with the given id, or nil when absent.
func (d *Database) GetUserByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := d.DB.QueryRowContext(ctx, `
		SELECT id, COALESCE(username, ''), email, password_hash, created_at, updated_at
		FROM users WHERE id = ?
	`, id).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUserIDs returns every user id. Used at startup to seed per-user data.
func (d *Database) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := d.DB.QueryContext(ctx, `SELECT id FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateUserPassword replaces the stored password hash.
func (d *Database) UpdateUserPassword(ctx context.Context, userID, passwordHash string) error {
	_, err := d.DB.ExecContext(ctx, `
		UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, passwordHash, userID)
	return err
}

// CreatePasswordReset inserts a new reset attempt. expires_at is stored in
// UTC so expiry comparisons are independent of the host timezone.
func (d *Database) CreatePasswordReset(ctx context.Context, r PasswordReset) error {
	_, err := d.DB.ExecContext(ctx, `
		INSERT INTO password_resets (id, user_id, code_hash, reset_token, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))
	`, r.ID, r.UserID, r.CodeHash, r.ResetToken, r.ExpiresAt.UTC(), r.CreatedAt)
	return err
}

// GetActivePasswordReset returns the newest unused, unexpired reset for a user.
func (d *Database) GetActivePasswordReset(ctx context.Context, userID string) (*PasswordReset, error) {
	var r PasswordReset
	err := d.DB.QueryRowContext(ctx, `
		SELECT id, user_id, code_hash, COALESCE(reset_token, ''), expires_at, used_at, created_at
		FROM password_resets
		WHERE user_id = ? AND used_at IS NULL AND expires_at > ?
		ORDER BY created_at DESC LIMIT 1
	`, userID, time.Now().UTC()).Scan(&r.ID, &r.UserID, &r.CodeHash, &r.ResetToken, &r.ExpiresAt, &r.UsedAt, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetPasswordResetByToken returns the unused reset matching a verified token.
func (d *Database) GetPasswordResetByToken(ctx context.Context, token string) (*PasswordReset, error) {
	if token == "" {
		return nil, nil
	}
	var r PasswordReset
	err := d.DB.QueryRowContext(ctx, `
		SELECT id, user_id, code_hash, COALESCE(reset_token, ''), expires_at, used_at, created_at
		FROM password_resets
		WHERE reset_token = ? AND used_at IS NULL AND expires_at > ?
	`, token, time.Now().UTC()).Scan(&r.ID, &r.UserID, &r.CodeHash, &r.ResetToken, &r.ExpiresAt, &r.UsedAt, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SetPasswordResetToken stores the token issued after code verification.
func (d *Database) SetPasswordResetToken(ctx context.Context, id, token string) error {
	_, err := d.DB.ExecContext(ctx, `
		UPDATE password_resets SET reset_token = ? WHERE id = ? AND used_at IS NULL
	`, token, id)
	return err
}

// MarkPasswordResetUsed consumes a reset so the code/token cannot be replayed.
func (d *Database) MarkPasswordResetUsed(ctx context.Context, id string) error {
	_, err := d.DB.ExecContext(ctx, `
		UPDATE password_resets SET used_at = CURRENT_TIMESTAMP WHERE id = ?
	`, id)
	return err
}
