// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/menuwise/internal/cache"
	"github.com/tomtom215/menuwise/internal/extract"
	"github.com/tomtom215/menuwise/internal/metrics"
)

// ManagerConfig controls session lifetime.
type ManagerConfig struct {
	// IdleTTL is how long a session survives without being accessed.
	IdleTTL time.Duration `koanf:"idle_ttl"`

	// SweepInterval is how often expired sessions are closed.
	SweepInterval time.Duration `koanf:"sweep_interval"`

	// MaxSessions caps live sessions. Zero means unlimited.
	MaxSessions int `koanf:"max_sessions"`
}

// DefaultManagerConfig returns production defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		IdleTTL:       30 * time.Minute,
		SweepInterval: time.Minute,
		MaxSessions:   10000,
	}
}

// Manager owns the live sessions.
type Manager struct {
	sessions    *cache.Cache[*Orchestrator]
	extractor   extract.Extractor
	recommender Recommender
	orchCfg     Config
	cfg         ManagerConfig
	logger      zerolog.Logger
}

// NewManager creates a session manager. Every session it creates shares
// extractor and recommender.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewManager(extractor extract.Extractor, recommender Recommender, orchCfg Config, cfg ManagerConfig, logger zerolog.Logger) *Manager {
	defaults := DefaultManagerConfig()
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaults.IdleTTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaults.SweepInterval
	}

	m := &Manager{
		sessions:    cache.New[*Orchestrator](cfg.IdleTTL),
		extractor:   extractor,
		recommender: recommender,
		orchCfg:     orchCfg,
		cfg:         cfg,
		logger:      logger.With().Str("component", "session-manager").Logger(),
	}
	m.sessions.OnEvict(func(id string, o *Orchestrator) {
		o.Close()
		metrics.SessionsActive.Dec()
		m.logger.Debug().Str("session_id", id).Msg("session removed")
	})
	return m
}

// Create starts a new session at the landing step.
func (m *Manager) Create() (*Orchestrator, error) {
	if m.cfg.MaxSessions > 0 && m.sessions.Len() >= m.cfg.MaxSessions {
		m.Sweep()
		if m.sessions.Len() >= m.cfg.MaxSessions {
			return nil, ErrTooManySessions
		}
	}

	id := uuid.New().String()
	o := NewOrchestrator(id, m.extractor, m.recommender, m.orchCfg, m.logger)
	m.sessions.Set(id, o)
	metrics.SessionsActive.Inc()

	m.logger.Debug().Str("session_id", id).Msg("session created")
	return o, nil
}

// Get returns a live session and extends its lifetime.
func (m *Manager) Get(id string) (*Orchestrator, error) {
	o, ok := m.sessions.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	m.sessions.Touch(id)
	return o, nil
}

// Subscribe streams state snapshots of a live session. The channel is
// closed when the session is deleted or expires.
func (m *Manager) Subscribe(id string) (<-chan State, func(), error) {
	o, err := m.Get(id)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := o.Subscribe()
	return ch, cancel, nil
}

// Delete closes and removes a session. It reports whether it existed.
func (m *Manager) Delete(id string) bool {
	return m.sessions.Delete(id)
}

// Len returns the number of tracked sessions.
func (m *Manager) Len() int {
	return m.sessions.Len()
}

// Sweep closes sessions that have been idle past the TTL.
func (m *Manager) Sweep() int {
	removed := m.sessions.Cleanup()
	if removed > 0 {
		metrics.SessionsExpired.Add(float64(removed))
		m.logger.Info().Int("expired", removed).Int("active", m.sessions.Len()).Msg("expired idle sessions")
	}
	return removed
}

// Run sweeps on the configured interval until ctx is done, then closes
// every remaining session.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.sessions.Clear()
			return ctx.Err()
		case <-ticker.C:
			m.Sweep()
		}
	}
}
