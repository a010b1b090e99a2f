package ch

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"formsbot/internal/models"
)

type ClickHouseDB struct {
	conn clickhouse.Conn
}

// NewClickHouseDB creates a new ClickHouse database connection
func NewClickHouseDB(host string, port int, database, user, password string, useTLS bool) (*ClickHouseDB, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	options := &clickhouse.Options{
		Addr:     []string{addr},
		Protocol: clickhouse.Native,
		Auth: clickhouse.Auth{
			Database: database,
			Username: user,
			Password: password,
		},
	}

	// Configure TLS if enabled
	if useTLS {
		options.TLS = &tls.Config{
			InsecureSkipVerify: false,
		}
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	// Test the connection
	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Initialize is a no-op - tables are managed via migrations
func (db *ClickHouseDB) Initialize(ctx context.Context) error {
	// Tables are managed via migrations (see migrations/ directory)
	// This method is kept for interface compatibility
	return nil
}

// RecordFill appends one confirmation outcome to the fill history
func (db *ClickHouseDB) RecordFill(ctx context.Context, event models.FillEvent) error {
	err := db.conn.Exec(ctx, `
		INSERT INTO fill_events
			(time, fill_id, chat_id, form_id, form_name, questions_total, answered, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.Time, event.FillID, event.ChatID, event.FormID, event.FormName,
		uint32(event.QuestionsTotal), uint32(event.Answered), event.Status)
	if err != nil {
		return fmt.Errorf("failed to record fill: %w", err)
	}
	return nil
}

// LastFills returns the most recent fills for a chat, newest first
func (db *ClickHouseDB) LastFills(ctx context.Context, chatID int64, limit int) ([]models.FillEvent, error) {
	rows, err := db.conn.Query(ctx, `
		SELECT time, fill_id, chat_id, form_id, form_name, questions_total, answered, status
		FROM fill_events
		WHERE chat_id = ?
		ORDER BY time DESC
		LIMIT ?`, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query fills: %w", err)
	}
	defer rows.Close()

	var events []models.FillEvent
	for rows.Next() {
		var (
			event    models.FillEvent
			total    uint32
			answered uint32
		)
		if err := rows.Scan(&event.Time, &event.FillID, &event.ChatID, &event.FormID,
			&event.FormName, &total, &answered, &event.Status); err != nil {
			return nil, fmt.Errorf("failed to scan fill: %w", err)
		}
		event.QuestionsTotal = int(total)
		event.Answered = int(answered)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fills: %w", err)
	}

	return events, nil
}

// Close closes the database connection
func (db *ClickHouseDB) Close() error {
	return db.conn.Close()
}
