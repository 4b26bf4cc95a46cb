package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/course-catalog/internal/models"
)

var errChannelClosed = errors.New("amqp channel closed")

// Feed лента изменений каталога поверх RabbitMQ. Каждый вызов Watch
// объявляет собственную эксклюзивную очередь, привязанную к course.changed.
type Feed struct {
	conn *amqp.Connection
	log  *slog.Logger
}

// NewFeed создает новый экземпляр Feed.
func NewFeed(conn *amqp.Connection, log *slog.Logger) *Feed {
	return &Feed{
		conn: conn,
		log:  log,
	}
}

// Watch вызывает ready после привязки очереди и запуска потребителя,
// затем notify на каждое событие course.changed. Блокируется до отмены
// ctx или закрытия канала брокером.
func (f *Feed) Watch(ctx context.Context, ready func(), notify func()) error {
	const op = "rabbitmq.Feed.Watch"

	ch, err := f.conn.Channel()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = ch.Close()
	}()

	if err := declareExchange(ch); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.QueueBind(q.Name, models.EventCourseChanged, CatalogExchange, false, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	closed := ch.NotifyClose(make(chan *amqp.Error, 1))

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	err = ConsumerMessage(consumeCtx, ch, q.Name, f.log, func([]byte) error {
		notify()
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	f.log.Debug("watching catalog events", slog.String("op", op), slog.String("queue", q.Name))
	ready()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case amqpErr, ok := <-closed:
		if !ok || amqpErr == nil {
			return fmt.Errorf("%s: %w", op, errChannelClosed)
		}
		return fmt.Errorf("%s: %w", op, amqpErr)
	}
}
