package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"batch-transcribe-api/utils"
)

var DB *sql.DB

// InitDB initializes the PostgreSQL connection for the request log.
func InitDB(logger *zap.Logger) error {
	host := utils.MustGetEnv("POSTGRES_HOST")
	port := utils.GetEnvOrDefault("POSTGRES_PORT", "5432")
	user := utils.MustGetEnv("POSTGRES_USER")
	password := utils.MustGetEnv("POSTGRES_PASSWORD")
	dbname := utils.MustGetEnv("POSTGRES_DB")
	sslmode := utils.GetEnvOrDefault("POSTGRES_SSLMODE", "disable")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established successfully")
	return nil
}

// CreateSchema creates the request log table if it doesn't exist.
func CreateSchema(logger *zap.Logger) error {
	if DB == nil {
		return fmt.Errorf("database connection is nil; call InitDB first")
	}

	_, err := DB.ExecContext(context.Background(), `
        CREATE TABLE IF NOT EXISTS transcription_requests (
            id SERIAL PRIMARY KEY,
            request_id VARCHAR(64) NOT NULL,
            status VARCHAR(16) NOT NULL,
            items INTEGER NOT NULL,
            short_batches INTEGER NOT NULL,
            long_jobs INTEGER NOT NULL,
            total_audio_sec DOUBLE PRECISION NOT NULL,
            error TEXT,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            UNIQUE(request_id)
        )
    `)
	if err != nil {
		return fmt.Errorf("failed to create transcription_requests table: %w", err)
	}

	logger.Info("Database schema ready")
	return nil
}

// CloseDB closes the database connection
func CloseDB(logger *zap.Logger) {
	if DB == nil {
		return
	}
	if err := DB.Close(); err != nil {
		logger.Error("Failed to close database connection", zap.Error(err))
		return
	}
	logger.Info("Database connection closed")
}

// RequestRecord is one finished request, successful or not.
type RequestRecord struct {
	RequestID     string
	Status        string // "ok" or "failed"
	Items         int
	ShortBatches  int
	LongJobs      int
	TotalAudioSec float64
	Error         string
}

// Record inserts one row into the request log. It is best-effort: when
// the database is not configured or the insert fails, the failure is
// logged and the request is unaffected.
func Record(ctx context.Context, logger *zap.Logger, rec RequestRecord) {
	if DB == nil {
		return
	}

	var errCol sql.NullString
	if rec.Error != "" {
		errCol = sql.NullString{String: rec.Error, Valid: true}
	}

	_, err := DB.ExecContext(ctx, `
        INSERT INTO transcription_requests
            (request_id, status, items, short_batches, long_jobs, total_audio_sec, error)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (request_id) DO NOTHING
    `, rec.RequestID, rec.Status, rec.Items, rec.ShortBatches, rec.LongJobs, rec.TotalAudioSec, errCol)
	if err != nil {
		logger.Sugar().Warnw("Request log insert failed",
			"requestId", rec.RequestID,
			"error", err)
	}
}
