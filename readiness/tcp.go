package readiness

import (
	"context"
	"net"
)

type tcpProber struct {
	addr   string
	dialer net.Dialer
}

// NewTCPProber checks readiness by opening a TCP connection to addr.
func NewTCPProber(addr string) Prober {
	return &tcpProber{addr: addr}
}

func (p *tcpProber) Name() string { return "tcp" }

func (p *tcpProber) Probe(ctx context.Context) error {
	conn, err := p.dialer.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return err
	}

	return conn.Close()
}
