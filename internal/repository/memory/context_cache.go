package memory

import (
	"time"

	"ats-scheduler-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const recentOutcomesKey = "recent_outcomes"

// ContextCache holds the recent-outcomes snapshot injected into the chat
// prompt so every turn does not hit the database.
type ContextCache struct {
	cache *cache.Cache
}

func NewContextCache(ttl time.Duration) *ContextCache {
	c := cache.New(ttl, 10*time.Minute)
	return &ContextCache{
		cache: c,
	}
}

func (r *ContextCache) SaveRecent(outcomes []*entity.DispatchOutcome) {
	r.cache.Set(recentOutcomesKey, outcomes, cache.DefaultExpiration)
}

func (r *ContextCache) GetRecent() ([]*entity.DispatchOutcome, bool) {
	if x, found := r.cache.Get(recentOutcomesKey); found {
		return x.([]*entity.DispatchOutcome), true
	}
	return nil, false
}

// Invalidate drops the snapshot after a dispatch or status change so the
// next chat turn sees fresh state.
func (r *ContextCache) Invalidate() {
	r.cache.Delete(recentOutcomesKey)
}
