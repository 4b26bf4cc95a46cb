// Package grantsweep сбрасывает закэшированные разрешения на удалённые курсы.
// Сообщения приходят из очереди событий каталога.
package grantsweep

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/course-catalog/internal/entitlement"
	"github.com/magabrotheeeer/course-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/course-catalog/internal/models"
)

// Очередь и ключ, которыми sweeper привязан к обменнику каталога.
const (
	QueueName  = "catalog.grant-sweep"
	RoutingKey = models.EventCourseDeleted
)

const sweepTimeout = 5 * time.Second

// Cache удаляет ключи по шаблону.
type Cache interface {
	InvalidateMatch(ctx context.Context, pattern string) (int, error)
}

// Sweeper обработчик событий удаления курса.
type Sweeper struct {
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Sweeper.
func New(cache Cache, log *slog.Logger) *Sweeper {
	return &Sweeper{
		cache: cache,
		log:   log,
	}
}

// Handle разбирает событие и удаляет разрешения на удалённый курс.
// Неразборчивые сообщения подтверждаются без повтора, ошибка кэша
// возвращает сообщение в очередь.
func (s *Sweeper) Handle(body []byte) error {
	const op = "grantsweep.Handle"
	log := s.log.With(slog.String("op", op))

	var event models.CourseEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Warn("dropping malformed event", sl.Err(err))
		return nil
	}
	if event.Type != models.EventCourseDeleted || event.CourseID == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	n, err := s.cache.InvalidateMatch(ctx, entitlement.GrantPattern(event.CourseID))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("grants invalidated", slog.String("course_id", event.CourseID), slog.Int("count", n))
	return nil
}
