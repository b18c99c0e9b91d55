package application

import (
	"time"

	"github.com/ericfisherdev/marquee/internal/domain/model"
)

// ActivityTier classifies how recently editors changed a content type. Types
// under active editing are synced more often than settled ones.
type ActivityTier int

const (
	// TierHot indicates an edit within the last hour.
	TierHot ActivityTier = iota
	// TierActive indicates an edit within the last day.
	TierActive
	// TierWarm indicates an edit within the last 7 days.
	TierWarm
	// TierStale indicates no edit for 7+ days, or no documents at all.
	TierStale
)

// minSyncInterval bounds how often a hot type is fetched.
const minSyncInterval = 30 * time.Second

// String returns a human-readable name for the activity tier.
func (t ActivityTier) String() string {
	switch t {
	case TierHot:
		return "hot"
	case TierActive:
		return "active"
	case TierWarm:
		return "warm"
	case TierStale:
		return "stale"
	default:
		return "unknown"
	}
}

// tierInterval scales the base sync interval by activity tier: hot types sync
// twice as often, warm and stale types three and six times less often.
func tierInterval(tier ActivityTier, base time.Duration) time.Duration {
	switch tier {
	case TierHot:
		return max(base/2, minSyncInterval)
	case TierActive:
		return base
	case TierWarm:
		return 3 * base
	case TierStale:
		return 6 * base
	default:
		return base
	}
}

// classifyActivity determines the activity tier based on the time elapsed
// since the last edit. A zero-value time is treated as TierStale.
func classifyActivity(lastEdit, now time.Time) ActivityTier {
	if lastEdit.IsZero() {
		return TierStale
	}

	elapsed := now.Sub(lastEdit)

	switch {
	case elapsed < 1*time.Hour:
		return TierHot
	case elapsed < 24*time.Hour:
		return TierActive
	case elapsed < 7*24*time.Hour:
		return TierWarm
	default:
		return TierStale
	}
}

// typeSchedule tracks per-type adaptive sync state.
type typeSchedule struct {
	tier       ActivityTier
	nextSyncAt time.Time
	lastSynced time.Time
}

// ScheduleInfo is an exported view of a content type's sync schedule.
type ScheduleInfo struct {
	Type       model.ContentType
	Tier       ActivityTier
	NextSyncAt time.Time
	LastSynced time.Time
}

// freshestEdit finds the most recent UpdatedAt across docs. Returns the zero
// time if the slice is empty, which classifies as TierStale.
func freshestEdit(docs []model.Document) time.Time {
	var newest time.Time
	for _, doc := range docs {
		if doc.UpdatedAt.After(newest) {
			newest = doc.UpdatedAt
		}
	}
	return newest
}
