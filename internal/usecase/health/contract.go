package health

import "context"

// DBPinger checks database connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// UpstreamChecker checks upstream provider reachability.
type UpstreamChecker interface {
	HealthCheck(ctx context.Context) error
}
