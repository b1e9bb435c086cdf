package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nfrund/homejobs/internal/pubsub"
	"github.com/surrealdb/surrealdb.go"
)

// The wrappers below give long-lived resources the Shutdown method the
// injector calls when the application stops.

type surrealConn struct {
	*surrealdb.DB
}

func (c *surrealConn) Shutdown(ctx context.Context) error {
	return c.DB.Close(ctx)
}

type pgPool struct {
	*pgxpool.Pool
}

func (p *pgPool) Shutdown() {
	p.Pool.Close()
}

type eventBus struct {
	*pubsub.WatermillBridge
}

func (b *eventBus) Shutdown() error {
	return b.Close()
}
