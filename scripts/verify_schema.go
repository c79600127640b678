package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// verify_schema.go
//
// Small tool: open a ledger database and check that migrations produced the
// expected tables and key columns.
//
//	go run ./scripts/verify_schema.go [path/to/ledger.db]

func main() {
	dbPath := "./data/ledger.db"
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	}
	fmt.Printf("Verifying database at: %s\n", dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	tables := []string{
		"users", "password_resets", "trading_rules", "trade_entries",
		"monthly_summaries", "loans", "expenses", "actresses", "actress_images",
	}
	for _, name := range tables {
		rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name=?", name)
		if err != nil {
			log.Fatalf("Query failed: %v", err)
		}
		if rows.Next() {
			fmt.Printf("OK  %s\n", name)
		} else {
			fmt.Printf("MISSING  %s\n", name)
		}
		rows.Close()
	}

	// Sequence numbering depends on this column; a schema drift here corrupts
	// the daily cap.
	var sqlSchema string
	err = db.QueryRow("SELECT sql FROM sqlite_master WHERE type='table' AND name='trade_entries'").Scan(&sqlSchema)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	if strings.Contains(sqlSchema, "sequence_no") {
		fmt.Println("OK  trade_entries.sequence_no")
	} else {
		fmt.Println("MISSING  trade_entries.sequence_no")
	}
}
