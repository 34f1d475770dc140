package history

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/sirupsen/logrus"
)

const schema = `
CREATE TABLE IF NOT EXISTS entity_states (
	timestamp DateTime64(3),
	entity    LowCardinality(String),
	state     String
) ENGINE = MergeTree()
ORDER BY (entity, timestamp)
TTL toDateTime(timestamp) + INTERVAL 90 DAY
`

// ClickHouse stores every state report and answers dwell queries.
type ClickHouse struct {
	conn driver.Conn
}

func NewClickHouse(addr, database, username, password string) (*ClickHouse, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: password,
		},
		DialTimeout: 5 * time.Second,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect to clickhouse: %w", err)
	}
	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}
	if err := conn.Exec(context.Background(), schema); err != nil {
		return nil, fmt.Errorf("create entity_states: %w", err)
	}

	logrus.WithField("addr", addr).Info("history: connected to clickhouse")
	return &ClickHouse{conn: conn}, nil
}

func (c *ClickHouse) Record(entity, state string, at time.Time) error {
	err := c.conn.Exec(context.Background(),
		"INSERT INTO entity_states (timestamp, entity, state) VALUES (?, ?, ?)",
		at, entity, state)
	if err != nil {
		return fmt.Errorf("record %s: %w", entity, err)
	}
	return nil
}

func (c *ClickHouse) CountInState(ctx context.Context, entity, state string, lookback time.Duration) (int, error) {
	var count uint64
	err := c.conn.QueryRow(ctx,
		"SELECT count() FROM entity_states WHERE entity = ? AND state = ? AND timestamp >= ?",
		entity, state, time.Now().Add(-lookback)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count %s in %q: %w", entity, state, err)
	}
	return int(count), nil
}

func (c *ClickHouse) Close() error {
	return c.conn.Close()
}
