// Package catalogsync реализует живую подписку на каталог курсов:
// полная выборка из хранилища, ожидание изменений и повторная выборка
// с доставкой нормализованного снимка подписчику.
package catalogsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/magabrotheeeer/course-catalog/internal/catalog"
	"github.com/magabrotheeeer/course-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/course-catalog/internal/metrics"
	"github.com/magabrotheeeer/course-catalog/internal/models"
)

// ErrSubscription оборачивает любой сбой соединения с хранилищем или лентой изменений.
var ErrSubscription = errors.New("catalog subscription failed")

// errFeedClosed возвращается, если лента изменений закрылась без ошибки.
var errFeedClosed = errors.New("change feed closed")

// Loader выбирает полный набор курсов, упорядоченный по created_at.
type Loader interface {
	ListCourses(ctx context.Context) ([]models.CourseRecord, error)
}

// Feed сообщает об изменениях коллекции курсов. Watch вызывает ready один
// раз, когда лента начала принимать изменения, затем блокируется, вызывая
// notify на каждое зафиксированное изменение, пока не отменён ctx или не
// оборвалось соединение.
type Feed interface {
	Watch(ctx context.Context, ready func(), notify func()) error
}

// Service открывает подписки на каталог.
type Service struct {
	loader Loader
	feed   Feed
	log    *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(loader Loader, feed Feed, log *slog.Logger) *Service {
	return &Service{
		loader: loader,
		feed:   feed,
		log:    log,
	}
}

// Subscribe открывает подписку. onSnapshot получает полный текущий набор
// курсов после каждого изменения, onError вызывается один раз при обрыве,
// после чего подписка завершается без повторных попыток.
// Возвращаемая функция отписки идемпотентна.
func (s *Service) Subscribe(onSnapshot func([]models.Course), onError func(error)) (unsubscribe func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sub := &subscription{
		onSnapshot: onSnapshot,
		onError:    onError,
		cancel:     cancel,
	}
	go s.run(ctx, sub)
	return sub.unsubscribe
}

func (s *Service) run(ctx context.Context, sub *subscription) {
	const op = "catalogsync.run"
	log := s.log.With(slog.String("op", op))

	changes := make(chan struct{}, 1)
	feedErr := make(chan error, 1)
	listening := make(chan struct{})
	var readyOnce sync.Once
	go func() {
		feedErr <- s.feed.Watch(ctx,
			func() { readyOnce.Do(func() { close(listening) }) },
			func() {
				select {
				case changes <- struct{}{}:
				default:
				}
			},
		)
	}()

	// Первая выборка только после подписки на ленту, иначе изменение
	// между выборкой и подпиской потеряется.
	select {
	case <-ctx.Done():
		return
	case <-listening:
	case err := <-feedErr:
		s.feedFailed(ctx, sub, log, err)
		return
	}

	if !s.push(ctx, sub, log) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			if !s.push(ctx, sub, log) {
				return
			}
		case err := <-feedErr:
			s.feedFailed(ctx, sub, log, err)
			return
		}
	}
}

func (s *Service) feedFailed(ctx context.Context, sub *subscription, log *slog.Logger, err error) {
	if ctx.Err() != nil {
		return
	}
	if err == nil {
		err = errFeedClosed
	}
	log.Error("change feed failed", sl.Err(err))
	sub.fail(fmt.Errorf("%w: %w", ErrSubscription, err))
}

// push выбирает полный набор курсов и доставляет его подписчику.
// Возвращает false, если подписку нужно завершить.
func (s *Service) push(ctx context.Context, sub *subscription, log *slog.Logger) bool {
	records, err := s.loader.ListCourses(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		log.Error("failed to load courses", sl.Err(err))
		sub.fail(fmt.Errorf("%w: %w", ErrSubscription, err))
		return false
	}

	courses := make([]models.Course, 0, len(records))
	for _, r := range records {
		courses = append(courses, catalog.Normalize(r.ID, r.Raw()))
	}

	delivered := sub.deliver(func() { sub.onSnapshot(courses) })
	if delivered {
		metrics.SnapshotsApplied.Inc()
		metrics.CatalogSize.Set(float64(len(courses)))
		log.Debug("snapshot delivered", slog.Int("count", len(courses)))
	}
	return delivered
}

type subscription struct {
	onSnapshot func([]models.Course)
	onError    func(error)
	cancel     context.CancelFunc

	mu         sync.Mutex
	closed     atomic.Bool
	inCallback atomic.Bool
	once       sync.Once
}

// deliver вызывает fn, если подписка ещё активна. Доставки сериализованы.
func (s *subscription) deliver(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return false
	}
	s.inCallback.Store(true)
	defer s.inCallback.Store(false)
	fn()
	return !s.closed.Load()
}

func (s *subscription) fail(err error) {
	metrics.SubscriptionErrors.Inc()
	s.deliver(func() {
		if s.onError != nil {
			s.onError(err)
		}
	})
	s.unsubscribe()
}

// unsubscribe останавливает подписку. После возврата новые вызовы
// колбэков не начинаются. Безопасна для вызова из колбэка.
func (s *subscription) unsubscribe() {
	s.once.Do(func() {
		s.closed.Store(true)
		s.cancel()
		if !s.inCallback.Load() {
			s.mu.Lock()
			s.mu.Unlock() //nolint:staticcheck // ждём завершения текущей доставки
		}
	})
}
