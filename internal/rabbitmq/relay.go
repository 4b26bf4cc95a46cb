package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/course-catalog/internal/lib/sl"
)

// ChangeSource источник сигналов об изменении каталога вне брокера,
// например LISTEN в Postgres.
type ChangeSource interface {
	Watch(ctx context.Context, ready func(), notify func()) error
}

// ChangePublisher публикует course.changed.
type ChangePublisher interface {
	PublishChanged() error
}

// Relay пересылает сигналы source в брокер как course.changed, чтобы
// ленты на RabbitMQ видели записи в базу в обход сервиса. При обрыве
// source переподключается через retryDelay. Блокируется до отмены ctx.
func Relay(ctx context.Context, source ChangeSource, pub ChangePublisher, retryDelay time.Duration, log *slog.Logger) error {
	const op = "rabbitmq.Relay"
	log = log.With(slog.String("op", op))

	for {
		err := source.Watch(ctx, func() {
			log.Debug("relaying catalog changes")
		}, func() {
			if err := pub.PublishChanged(); err != nil {
				log.Error("failed to relay catalog change", sl.Err(err))
			}
		})
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", op, ctx.Err())
		}
		if err == nil {
			err = errors.New("change source closed")
		}
		log.Warn("change source stopped, retrying", sl.Err(err), slog.Duration("delay", retryDelay))

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(retryDelay):
		}
	}
}
