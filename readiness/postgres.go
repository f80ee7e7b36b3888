package readiness

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type postgresProber struct {
	connString string
}

// NewPostgresProber checks readiness by connecting to the database and
// issuing a ping, so the server must accept the connection and be past
// its recovery phase.
func NewPostgresProber(connString string) Prober {
	return &postgresProber{connString: connString}
}

func (p *postgresProber) Name() string { return "postgres" }

func (p *postgresProber) Probe(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, p.connString)
	if err != nil {
		return err
	}

	defer func() { _ = conn.Close(ctx) }()

	return conn.Ping(ctx)
}
