package entitlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/course-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/course-catalog/internal/metrics"
	"github.com/magabrotheeeer/course-catalog/internal/models"
)

// Checker проверяет доступ зрителя к курсу.
type Checker interface {
	Check(ctx context.Context, req models.EntitlementRequest) (bool, error)
}

// GrantCache хранилище подтверждённых разрешений.
type GrantCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// CachedChecker запоминает положительные ответы сервиса на ttl.
// Отказы и сбои не кэшируются, анонимные запросы идут мимо кэша.
type CachedChecker struct {
	next  Checker
	cache GrantCache
	ttl   time.Duration
	log   *slog.Logger
}

// NewCachedChecker создает новый экземпляр CachedChecker.
func NewCachedChecker(next Checker, cache GrantCache, ttl time.Duration, log *slog.Logger) *CachedChecker {
	return &CachedChecker{
		next:  next,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

// Check возвращает разрешение из кэша или запрашивает его у next.
func (c *CachedChecker) Check(ctx context.Context, req models.EntitlementRequest) (bool, error) {
	const op = "entitlement.CachedChecker.Check"
	log := c.log.With(slog.String("op", op))

	if req.UserID == "" || c.ttl <= 0 {
		return c.next.Check(ctx, req)
	}

	key := grantKey(req)
	var granted bool
	found, err := c.cache.Get(ctx, key, &granted)
	if err != nil {
		log.Warn("grant cache read failed", sl.Err(err))
	}
	if found && granted {
		metrics.EntitlementCacheHits.Inc()
		return true, nil
	}

	allowed, err := c.next.Check(ctx, req)
	if err != nil {
		return false, err
	}
	if allowed {
		if err := c.cache.Set(ctx, key, true, c.ttl); err != nil {
			log.Warn("grant cache write failed", sl.Err(err))
		}
	}
	return allowed, nil
}

func grantKey(req models.EntitlementRequest) string {
	return "entitlement:" + req.UserID + ":" + req.CourseID + ":" + string(req.AccessType)
}

// GrantPattern шаблон ключей всех закэшированных разрешений на курс.
func GrantPattern(courseID string) string {
	return "entitlement:*:" + courseID + ":*"
}
