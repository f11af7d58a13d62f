package postgres

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"backoffice-service/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var DBStatus bool

func Connect(cfg config.PostgresConfig) (*sqlx.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.DBname)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	DBStatus = true
	return db, nil
}

// ApplySchema executes schema.sql statement by statement. Statements that
// fail (usually because the object already exists) are logged and skipped so
// repeated startups stay idempotent.
func ApplySchema(db *sqlx.DB, schemaPath string) error {
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file %s: %w", schemaPath, err)
	}

	statements := strings.Split(string(content), ";")
	successCount := 0
	for i, statement := range statements {
		statement = strings.TrimSpace(statement)
		// Drop leading comment lines so a commented header does not hide the
		// statement that follows it.
		for strings.HasPrefix(statement, "--") {
			idx := strings.IndexByte(statement, '\n')
			if idx < 0 {
				statement = ""
				break
			}
			statement = strings.TrimSpace(statement[idx+1:])
		}
		if statement == "" {
			continue
		}

		if _, err := db.Exec(statement); err != nil {
			log.Printf("schema statement %d skipped: %v", i+1, err)
			continue
		}
		successCount++
	}

	log.Printf("schema applied, %d statements executed", successCount)
	return nil
}

func RetryConnectOnFailed(wait time.Duration, db **sqlx.DB, cfg config.PostgresConfig) {
	if DBStatus {
		log.Printf("false database lost connection alert, abort retry")
		return
	}

	if *db != nil {
		if err := (*db).Ping(); err == nil {
			log.Printf("database connection is healthy, no retry needed")
			return
		}
	}

	newDB, err := Connect(cfg)
	if err == nil {
		*db = newDB
		log.Printf("database retry connection succeeded")
		return
	}
	log.Printf("failed to reconnect database: %s, next retry in %v", err, wait)
	time.Sleep(wait)

	RetryConnectOnFailed(wait, db, cfg)
}
