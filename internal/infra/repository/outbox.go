package repository

import (
	"context"
	"encoding/json"

	"restock-sentinel/internal/infra"
	"restock-sentinel/internal/pkg/clock"

	"github.com/google/uuid"
)

// OutboxRepository publishes domain events by appending them to the
// domain_events table; an external relay drains the table onto the bus.
type OutboxRepository struct {
	db    DBTX
	clock clock.Clock
}

func NewOutboxRepository(db DBTX, clk clock.Clock) *OutboxRepository {
	return &OutboxRepository{db: db, clock: clk}
}

const insertEventSQL = `
INSERT INTO domain_events (id, topic, payload, created_at)
VALUES ($1, $2, $3, $4)`

func (r *OutboxRepository) Publish(ctx context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return infra.WrapRepoErr("failed to encode event payload", err, infra.KindDBFailure)
	}
	_, err = r.db.Exec(ctx, insertEventSQL, uuid.New(), topic, body, r.clock.Now())
	if err != nil {
		return infra.WrapRepoErr("failed to insert domain event", err)
	}
	return nil
}
