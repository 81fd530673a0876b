package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/chukwudobemicah/limer-properties-sub000/internal/model"
)

// InquiryRepository persists dispatched inquiries. The content store
// remains the only source of property data; this table is bookkeeping for
// the business side of inquiries.
type InquiryRepository struct {
	db *sqlx.DB
}

// NewInquiryRepository connects to PostgreSQL and ensures the inquiry
// table exists.
func NewInquiryRepository(dsn string, maxConn, maxIdleConn int) (*InquiryRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &InquiryRepository{db: db}
	if err := repo.migrate(); err != nil {
		return nil, err
	}
	return repo, nil
}

// Close closes the database connection
func (r *InquiryRepository) Close() error {
	return r.db.Close()
}

func (r *InquiryRepository) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS inquiries (
			id UUID PRIMARY KEY,
			channel TEXT NOT NULL,
			recipient TEXT NOT NULL,
			subject TEXT NOT NULL DEFAULT '',
			property_slug TEXT NOT NULL DEFAULT '',
			delivery_id TEXT NOT NULL DEFAULT '',
			took_ms BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create inquiries table: %w", err)
	}
	return nil
}

// LogInquiry inserts one inquiry record.
func (r *InquiryRepository) LogInquiry(ctx context.Context, rec model.InquiryLog) error {
	query := `
		INSERT INTO inquiries (id, channel, recipient, subject, property_slug, delivery_id, took_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Channel,
		rec.Recipient,
		rec.Subject,
		rec.PropertySlug,
		rec.DeliveryID,
		rec.TookMs,
	)
	if err != nil {
		return fmt.Errorf("failed to log inquiry: %w", err)
	}
	return nil
}

// RecentInquiries returns the newest inquiry records, newest first.
func (r *InquiryRepository) RecentInquiries(ctx context.Context, limit int) ([]model.InquiryLog, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, channel, recipient, subject, property_slug, delivery_id, took_ms, created_at
		FROM inquiries
		ORDER BY created_at DESC
		LIMIT $1`

	var records []model.InquiryLog
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch recent inquiries: %w", err)
	}
	return records, nil
}
