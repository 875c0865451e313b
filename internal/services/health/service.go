package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Status is the health payload.
type Status struct {
	OK         bool   `json:"ok"`
	Storage    string `json:"storage"`
	Database   string `json:"database,omitempty"`
	Generative bool   `json:"generative"`
}

// Service encapsulates health-related checks.
type Service struct {
	db         Pinger
	generative bool
}

// NewService constructs a health service. A nil db means the in-memory store.
func NewService(db Pinger, generative bool) *Service {
	return &Service{db: db, generative: generative}
}

// Status reports store reachability. The process is healthy even when the
// database is down, since checks do not depend on it.
func (s *Service) Status(ctx context.Context) Status {
	out := Status{OK: true, Storage: "memory", Generative: s.generative}
	if s.db == nil {
		return out
	}
	out.Storage = "postgres"
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.db.PingContext(pingCtx); err != nil {
		out.Database = "unreachable"
		return out
	}
	out.Database = "ok"
	return out
}
