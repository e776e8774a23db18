package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shivraj416/egram/config"
	"github.com/shivraj416/egram/pkg/logger"

	_ "github.com/lib/pq"
)

// Connect opens the Postgres connection used by the optional database-backed
// document store. It pings with retries to ride out transient DNS/network
// blips on hosted databases.
func Connect(cfg config.Pg) *sql.DB {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=require",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		logger.Sugar.Fatalf("Failed to open database connection: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			logger.Sugar.Info("Successfully connected to the database")
			return db
		}
		logger.Sugar.Infof("Database connection failed, retrying in 2s... (%v)", err)
		time.Sleep(2 * time.Second)
	}
	logger.Sugar.Fatalf("Could not connect to database after retries: %v", err)
	return nil
}
