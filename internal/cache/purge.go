package cache

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"coverapi/internal/repository"
)

const purgeTimeout = 30 * time.Second

// Purger removes expired cache rows on a cron schedule.
type Purger struct {
	repo repository.CacheRepository
	log  logrus.FieldLogger
	cron *cron.Cron
	now  func() time.Time
}

// NewPurger registers the purge job. The schedule accepts standard cron specs and descriptors like "@every 10m".
func NewPurger(repo repository.CacheRepository, schedule string, log logrus.FieldLogger) (*Purger, error) {
	p := &Purger{
		repo: repo,
		log:  log.WithField("component", "cache_purger"),
		cron: cron.New(),
		now:  time.Now,
	}
	if _, err := p.cron.AddFunc(schedule, p.run); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Purger) Start() { p.cron.Start() }

// Stop halts the scheduler and waits for a running purge to finish.
func (p *Purger) Stop() {
	<-p.cron.Stop().Done()
}

// Purge deletes every entry that expired before now.
func (p *Purger) Purge(ctx context.Context) (int64, error) {
	return p.repo.DeleteExpired(ctx, p.now())
}

func (p *Purger) run() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	n, err := p.Purge(ctx)
	if err != nil {
		p.log.WithError(err).Warn("cache purge failed")
		return
	}
	if n > 0 {
		p.log.WithField("deleted", n).Info("expired cache entries purged")
	}
}
