package service

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"coverapi/internal/model"
	"coverapi/internal/repository"
)

// activeWindow is how recent a login must be for a user to count as active.
const activeWindow = 15 * time.Minute

// AnalyticsService gathers dashboard statistics.
type AnalyticsService interface {
	// Realtime returns today's counters and process information.
	Realtime(ctx context.Context) (*model.RealtimeAnalytics, error)
	// Stats returns today's counters plus the counters since from.
	Stats(ctx context.Context, from time.Time) (model.Stats, error)
}

type analyticsService struct {
	stats   repository.StatsRepository
	started time.Time
	now     func() time.Time
}

// NewAnalyticsService measures uptime from started.
func NewAnalyticsService(stats repository.StatsRepository, started time.Time) AnalyticsService {
	return &analyticsService{stats: stats, started: started, now: time.Now}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *analyticsService) Realtime(ctx context.Context) (*model.RealtimeAnalytics, error) {
	now := s.now()
	st, err := s.collect(ctx, now, time.Time{})
	if err != nil {
		return nil, err
	}
	return &model.RealtimeAnalytics{Stats: st, System: s.system(now), LastUpdate: now.UTC()}, nil
}

func (s *analyticsService) Stats(ctx context.Context, from time.Time) (model.Stats, error) {
	return s.collect(ctx, s.now(), from)
}

// collect runs the counters concurrently. Range counters are skipped when from is zero.
func (s *analyticsService) collect(ctx context.Context, now, from time.Time) (model.Stats, error) {
	var st model.Stats
	today := startOfDay(now)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.TotalUsers, err = s.stats.CountUsers(gCtx)
		return wrapStat("total users", err)
	})
	g.Go(func() (err error) {
		st.ActiveUsers, err = s.stats.CountActiveUsers(gCtx, now.Add(-activeWindow))
		return wrapStat("active users", err)
	})
	g.Go(func() (err error) {
		st.CoverLettersToday, err = s.stats.CountCoverLettersSince(gCtx, today)
		return wrapStat("cover letters today", err)
	})
	g.Go(func() (err error) {
		st.UploadsToday, err = s.stats.CountUploadsSince(gCtx, today)
		return wrapStat("uploads today", err)
	})
	if !from.IsZero() {
		g.Go(func() (err error) {
			st.CoverLettersInRange, err = s.stats.CountCoverLettersSince(gCtx, from)
			return wrapStat("cover letters in range", err)
		})
		g.Go(func() (err error) {
			st.UploadsInRange, err = s.stats.CountUploadsSince(gCtx, from)
			return wrapStat("uploads in range", err)
		})
	}

	if err := g.Wait(); err != nil {
		return model.Stats{}, err
	}
	return st, nil
}

func wrapStat(name string, err error) error {
	if err != nil {
		return fmt.Errorf("count %s: %w", name, err)
	}
	return nil
}

func (s *analyticsService) system(now time.Time) model.SystemInfo {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return model.SystemInfo{
		UptimeSeconds: int64(now.Sub(s.started).Seconds()),
		Goroutines:    runtime.NumGoroutine(),
		HeapAllocMB:   float64(ms.HeapAlloc) / 1024 / 1024,
		GoVersion:     runtime.Version(),
	}
}
