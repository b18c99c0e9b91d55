package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ericfisherdev/marquee/internal/domain/model"
	"github.com/ericfisherdev/marquee/internal/domain/port/driven"
)

// SyncResult summarizes one mirror sync cycle.
type SyncResult struct {
	Documents int
	Types     int
	Failed    []model.ContentType
	Duration  time.Duration
}

// SyncService keeps the local mirror in step with the CMS. It copies
// published documents type by type: every type on startup and on demand, and
// otherwise on a per-type schedule that follows how recently the type was
// edited.
type SyncService struct {
	source    driven.ContentSource
	mirror    driven.MirrorStore
	interval  time.Duration
	refreshCh chan chan syncReply
	now       func() time.Time

	mu        sync.Mutex
	schedules map[model.ContentType]*typeSchedule
}

type syncReply struct {
	result SyncResult
	err    error
}

// NewSyncService creates a new SyncService copying from source into mirror.
// interval is the sync period for a type edited within the last day.
func NewSyncService(source driven.ContentSource, mirror driven.MirrorStore, interval time.Duration) *SyncService {
	return &SyncService{
		source:    source,
		mirror:    mirror,
		interval:  interval,
		refreshCh: make(chan chan syncReply),
		now:       time.Now,
		schedules: make(map[model.ContentType]*typeSchedule),
	}
}

// Start begins the sync loop. It runs an immediate full sync, then syncs the
// types that are due on every tick, and every type whenever Refresh is
// called. Start blocks until the context is canceled.
func (s *SyncService) Start(ctx context.Context) {
	if _, err := s.SyncAll(ctx); err != nil {
		slog.Error("initial sync failed", "error", err)
	}

	ticker := time.NewTicker(tierInterval(TierHot, s.interval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("sync service stopped")
			return
		case <-ticker.C:
			if _, err := s.SyncDue(ctx); err != nil {
				slog.Error("sync cycle failed", "error", err)
			}
		case done := <-s.refreshCh:
			result, err := s.SyncAll(ctx)
			done <- syncReply{result: result, err: err}
		}
	}
}

// Refresh triggers an out-of-band full sync through the running loop. It
// blocks until the sync completes or the context is canceled.
func (s *SyncService) Refresh(ctx context.Context) (SyncResult, error) {
	done := make(chan syncReply, 1)

	select {
	case s.refreshCh <- done:
	case <-ctx.Done():
		return SyncResult{}, ctx.Err()
	}

	select {
	case reply := <-done:
		return reply.result, reply.err
	case <-ctx.Done():
		return SyncResult{}, ctx.Err()
	}
}

// SyncAll copies every content type from the source into the mirror. A type
// whose fetch fails keeps its previously mirrored documents; the other types
// still sync. An error is returned when any type failed.
func (s *SyncService) SyncAll(ctx context.Context) (SyncResult, error) {
	return s.syncTypes(ctx, model.AllContentTypes())
}

// SyncDue syncs only the types whose scheduled time has passed. Types never
// synced, and types whose last sync failed, are always due.
func (s *SyncService) SyncDue(ctx context.Context) (SyncResult, error) {
	now := s.now()

	s.mu.Lock()
	var due []model.ContentType
	for _, ct := range model.AllContentTypes() {
		sched, ok := s.schedules[ct]
		if !ok || !now.Before(sched.nextSyncAt) {
			due = append(due, ct)
		}
	}
	s.mu.Unlock()

	if len(due) == 0 {
		return SyncResult{}, nil
	}
	return s.syncTypes(ctx, due)
}

// Schedules returns the sync schedule of every type synced so far, in sync
// order.
func (s *SyncService) Schedules() []ScheduleInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]ScheduleInfo, 0, len(s.schedules))
	for _, ct := range model.AllContentTypes() {
		sched, ok := s.schedules[ct]
		if !ok {
			continue
		}
		infos = append(infos, ScheduleInfo{
			Type:       ct,
			Tier:       sched.tier,
			NextSyncAt: sched.nextSyncAt,
			LastSynced: sched.lastSynced,
		})
	}
	return infos
}

func (s *SyncService) syncTypes(ctx context.Context, types []model.ContentType) (SyncResult, error) {
	start := time.Now()
	var result SyncResult

	for _, ct := range types {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		published, err := s.syncType(ctx, ct)
		if err != nil {
			slog.Error("type sync failed", "type", ct, "error", err)
			result.Failed = append(result.Failed, ct)
			continue
		}
		s.reschedule(ct, published)
		result.Types++
		result.Documents += len(published)
	}

	result.Duration = time.Since(start).Round(time.Millisecond)
	slog.Info("sync cycle complete",
		"types", result.Types,
		"documents", result.Documents,
		"errors", len(result.Failed),
		"duration", result.Duration,
	)

	if len(result.Failed) > 0 {
		return result, fmt.Errorf("sync failed for %d content types: %v", len(result.Failed), result.Failed)
	}
	return result, nil
}

func (s *SyncService) syncType(ctx context.Context, ct model.ContentType) ([]model.Document, error) {
	docs, err := s.source.ListByType(ctx, ct)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ct, err)
	}

	published := docs[:0:0]
	for _, doc := range docs {
		if doc.IsDraft() || doc.Type != ct {
			continue
		}
		published = append(published, doc)
	}

	if err := s.mirror.ReplaceType(ctx, ct, published); err != nil {
		return nil, fmt.Errorf("store %s: %w", ct, err)
	}

	return published, nil
}

// reschedule classifies the type by its freshest edit and sets its next sync
// time accordingly.
func (s *SyncService) reschedule(ct model.ContentType, published []model.Document) {
	now := s.now()
	tier := classifyActivity(freshestEdit(published), now)

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.schedules[ct]
	if ok && prev.tier != tier {
		slog.Debug("sync tier changed", "type", ct, "from", prev.tier, "to", tier)
	}
	s.schedules[ct] = &typeSchedule{
		tier:       tier,
		nextSyncAt: now.Add(tierInterval(tier, s.interval)),
		lastSynced: now,
	}
}
