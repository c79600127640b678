// Package categories seeds the trading category/subcategory pairs (and their
// optional default rule figures) from a YAML file into the rules table.
package categories

import (
	"context"
	"database/sql"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Config represents one category entry in YAML.
type Config struct {
	Category         string  `yaml:"category"`
	Subcategory      string  `yaml:"subcategory"`
	DepositAmount    float64 `yaml:"deposit_amount"`
	WithdrawalAmount float64 `yaml:"withdrawal_amount"`
	Risk             float64 `yaml:"risk"`
	Reward           float64 `yaml:"reward"`
	Ratio            string  `yaml:"ratio"`
	TradingDays      int     `yaml:"trading_days"`
}

// ConfigFile represents the top-level YAML structure.
type ConfigFile struct {
	Categories []Config `yaml:"categories"`
}

// Load reads category seeds from a YAML file.
func Load(path string) ([]Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file ConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	return file.Categories, nil
}

// SyncToDB upserts seeded rules for a user. Existing rule figures are kept;
// seeding only fills in pairs the user has not configured yet.
func SyncToDB(ctx context.Context, db *sql.DB, userID string, configs []Config) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trading_rules (
			id, user_id, category, subcategory, deposit_amount, withdrawal_amount,
			risk, reward, ratio, trading_days
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, category, subcategory) DO NOTHING
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, cfg := range configs {
		if cfg.Category == "" || cfg.Subcategory == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx,
			uuid.NewString(), userID, cfg.Category, cfg.Subcategory,
			cfg.DepositAmount, cfg.WithdrawalAmount, cfg.Risk, cfg.Reward,
			cfg.Ratio, cfg.TradingDays,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
