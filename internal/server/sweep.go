package server

import (
	"context"
	"time"
)

// RunSweepLoop periodically evicts terminal transfer records older than
// maxAge from the registry, until ctx is cancelled. The original source
// this registry was grounded on defines this sweep but never calls it
// anywhere; mstransfer closes that gap by running this loop at server
// startup.
func (s *Server) RunSweepLoop(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.Registry.Sweep(maxAge)
			if removed > 0 && s.Logger != nil {
				s.Logger.Debug().Int("removed", removed).Msg("swept terminal transfer records")
			}
		}
	}
}
