// Package service provides the core business service that implements
// the dependencies required by the HTTP API: cached organization and
// snapshot retrieval, qualification thresholds, leaderboard assembly,
// and runtime token and adjustment management.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gamechanger-stats/seasonstats/internal/adapters/cache"
	"github.com/gamechanger-stats/seasonstats/internal/domain/adjust"
	"github.com/gamechanger-stats/seasonstats/internal/domain/derive"
	"github.com/gamechanger-stats/seasonstats/internal/domain/model"
	"github.com/gamechanger-stats/seasonstats/internal/domain/qualify"
	"github.com/gamechanger-stats/seasonstats/internal/domain/rank"
	"github.com/gamechanger-stats/seasonstats/pkg/logger"
	"github.com/gamechanger-stats/seasonstats/pkg/metrics"
)

const (
	defaultQualifyPercent   = 20
	defaultAdjustmentFactor = 50
	defaultLeaderboardLimit = 10
	defaultMaxLimit         = 100
)

// Stat categories served by the leaderboard endpoints.
const (
	CategoryBatting  = "batting"
	CategoryPitching = "pitching"
	CategoryFielding = "fielding"
	CategoryTeam     = "team"
)

// Client is the upstream surface the service depends on.
type Client interface {
	Organizations(ctx context.Context) ([]model.Organization, error)
	Snapshot(ctx context.Context, orgID string) (model.RawSnapshot, error)
	VerifyToken(ctx context.Context, token string) error
	SetToken(token string)
}

// Service implements the API dependencies for the season stats system.
type Service struct {
	mu sync.RWMutex

	// Core components
	client Client
	cache  cache.Cache

	// Configuration
	battingQualifyPct  float64
	pitchingQualifyPct float64
	fieldingQualifyPct float64
	maxLimit           int

	// Runtime-adjustable normalization state, guarded by mu.
	adjustmentFactor float64
	strictness       adjust.Index

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithQualifyPercents sets the qualification percentages for the three
// player categories.
func WithQualifyPercents(batting, pitching, fielding float64) Option {
	return func(s *Service) {
		s.battingQualifyPct = batting
		s.pitchingQualifyPct = pitching
		s.fieldingQualifyPct = fielding
	}
}

// WithAdjustmentFactor sets the initial scorer-bias adjustment factor.
func WithAdjustmentFactor(factor float64) Option {
	return func(s *Service) {
		if factor >= 0 && factor <= 100 {
			s.adjustmentFactor = factor
		}
	}
}

// WithStrictnessIndex sets the scorer strictness scores by player id.
func WithStrictnessIndex(idx adjust.Index) Option {
	return func(s *Service) {
		s.strictness = idx
	}
}

// WithMaxLeaderboardLimit caps the leaderboard size a request may ask for.
func WithMaxLeaderboardLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New creates a Service over an upstream client and a cache backend.
func New(client Client, store cache.Cache, opts ...Option) *Service {
	s := &Service{
		client:             client,
		cache:              store,
		battingQualifyPct:  defaultQualifyPercent,
		pitchingQualifyPct: defaultQualifyPercent,
		fieldingQualifyPct: defaultQualifyPercent,
		adjustmentFactor:   defaultAdjustmentFactor,
		maxLimit:           defaultMaxLimit,
		logger:             logger.Named("service"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Organizations returns the authenticated user's organizations, sorted
// by season year descending then name, from cache when fresh.
func (s *Service) Organizations(ctx context.Context) ([]model.Organization, error) {
	if orgs, ok := s.cache.Organizations(ctx); ok {
		return orgs, nil
	}
	if s.client == nil {
		return nil, ErrClientUnavailable
	}

	orgs, err := s.client.Organizations(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching organizations: %w", err)
	}

	sort.SliceStable(orgs, func(i, j int) bool {
		if orgs[i].SeasonYear != orgs[j].SeasonYear {
			return orgs[i].SeasonYear > orgs[j].SeasonYear
		}
		return orgs[i].Name < orgs[j].Name
	})

	s.cache.SetOrganizations(ctx, orgs)
	return orgs, nil
}

// Snapshot returns the derived, adjusted season snapshot for an
// organization. The cache holds raw counting stats only; derivation and
// adjustment run on every read, so a factor or strictness change takes
// effect on the next request without a refetch.
func (s *Service) Snapshot(ctx context.Context, orgID string) (model.Snapshot, error) {
	if raw, ok := s.cache.Snapshot(ctx, orgID); ok {
		return s.deriveSnapshot(ctx, orgID, raw), nil
	}
	if s.client == nil {
		return model.Snapshot{}, ErrClientUnavailable
	}

	raw, err := s.client.Snapshot(ctx, orgID)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("fetching snapshot: %w", err)
	}

	s.cache.SetSnapshot(ctx, orgID, raw)
	return s.deriveSnapshot(ctx, orgID, raw), nil
}

// deriveSnapshot computes rates from raw lines and applies the current
// scorer-bias adjustment.
func (s *Service) deriveSnapshot(ctx context.Context, orgID string, raw model.RawSnapshot) model.Snapshot {
	snap := derive.Snapshot(raw)

	s.mu.RLock()
	factor := s.adjustmentFactor
	idx := s.strictness
	s.mu.RUnlock()

	snap = adjust.Snapshot(snap, idx, factor)

	records := len(snap.Batting) + len(snap.Pitching) + len(snap.Fielding) + len(snap.Teams)
	metrics.RecordSnapshotDerived(records)
	s.logger.Debug(ctx, "snapshot derived",
		logger.String("organization_id", orgID),
		logger.Int("records", records))
	return snap
}

// Thresholds computes the current qualification thresholds for an
// organization's snapshot, one per player category.
func (s *Service) Thresholds(ctx context.Context, orgID string) ([]qualify.Threshold, error) {
	snap, err := s.Snapshot(ctx, orgID)
	if err != nil {
		return nil, err
	}

	batting, err := qualify.Batting(snap.Batting, s.battingQualifyPct)
	if err != nil {
		return nil, err
	}
	pitching, err := qualify.Pitching(snap.Pitching, s.pitchingQualifyPct)
	if err != nil {
		return nil, err
	}
	fielding, err := qualify.Fielding(snap.Fielding, s.fieldingQualifyPct)
	if err != nil {
		return nil, err
	}

	return []qualify.Threshold{batting, pitching, fielding}, nil
}

// Leaderboard builds a size-limited board for one category and stat.
// A non-positive limit falls back to the default; the configured
// maximum caps any request.
func (s *Service) Leaderboard(ctx context.Context, orgID, category, stat string, limit int) (model.Leaderboard, error) {
	snap, err := s.Snapshot(ctx, orgID)
	if err != nil {
		return model.Leaderboard{}, err
	}

	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	var ranking rank.Ranking
	switch category {
	case CategoryBatting:
		threshold, terr := qualify.Batting(snap.Batting, s.battingQualifyPct)
		if terr != nil {
			return model.Leaderboard{}, terr
		}
		ranking, err = rank.BattingBoard(snap.Batting, stat, threshold.Minimum)
	case CategoryPitching:
		threshold, terr := qualify.Pitching(snap.Pitching, s.pitchingQualifyPct)
		if terr != nil {
			return model.Leaderboard{}, terr
		}
		ranking, err = rank.PitchingBoard(snap.Pitching, stat, threshold.Minimum)
	case CategoryFielding:
		threshold, terr := qualify.Fielding(snap.Fielding, s.fieldingQualifyPct)
		if terr != nil {
			return model.Leaderboard{}, terr
		}
		ranking, err = rank.FieldingBoard(snap.Fielding, stat, threshold.Minimum)
	case CategoryTeam:
		ranking, err = rank.TeamBoard(snap.Teams, stat)
	default:
		return model.Leaderboard{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if err != nil {
		return model.Leaderboard{}, err
	}

	board := ranking.Board(limit)
	board.Category = category
	metrics.RecordLeaderboardBuilt()
	return board, nil
}

// StatNames lists the stats served for one category in a stable order.
func (s *Service) StatNames(category string) ([]string, error) {
	switch category {
	case CategoryBatting:
		return rank.BattingStatNames(), nil
	case CategoryPitching:
		return rank.PitchingStatNames(), nil
	case CategoryFielding:
		return rank.FieldingStatNames(), nil
	case CategoryTeam:
		return rank.TeamStatNames(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
}

// SetToken verifies a candidate token against the upstream and, on
// success, installs it and clears every cached entry.
func (s *Service) SetToken(ctx context.Context, token string) error {
	if s.client == nil {
		return ErrClientUnavailable
	}
	if err := s.client.VerifyToken(ctx, token); err != nil {
		return fmt.Errorf("verifying token: %w", err)
	}

	s.client.SetToken(token)
	s.cache.Clear(ctx)
	metrics.RecordTokenSwap()
	s.logger.Info(ctx, "upstream token updated")
	return nil
}

// SetAdjustmentFactor installs a new scorer-bias factor. Cached raw
// snapshots stay valid; the next read derives with the new factor.
func (s *Service) SetAdjustmentFactor(_ context.Context, factor float64) error {
	if factor < 0 || factor > 100 {
		return fmt.Errorf("%w: %v", ErrFactorOutOfRange, factor)
	}

	s.mu.Lock()
	s.adjustmentFactor = factor
	s.mu.Unlock()
	return nil
}

// AdjustmentFactor returns the current scorer-bias factor.
func (s *Service) AdjustmentFactor() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adjustmentFactor
}

// SetStrictnessIndex replaces the scorer strictness scores. Scores must
// fall within [-1,1]; cached raw snapshots stay valid and pick up the
// new index on the next read.
func (s *Service) SetStrictnessIndex(_ context.Context, idx map[string]float64) error {
	for playerID, score := range idx {
		if score < -1 || score > 1 {
			return fmt.Errorf("%w: %s=%v", ErrStrictnessOutOfRange, playerID, score)
		}
	}

	s.mu.Lock()
	s.strictness = idx
	s.mu.Unlock()
	return nil
}

// StrictnessIndex returns a copy of the current scorer strictness scores.
func (s *Service) StrictnessIndex() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]float64, len(s.strictness))
	for playerID, score := range s.strictness {
		out[playerID] = score
	}
	return out
}

// Ready reports whether the upstream client is configured.
func (s *Service) Ready() bool {
	return s.client != nil
}
