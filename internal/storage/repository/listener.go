package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// CoursesChannel канал NOTIFY, в который пишет триггер таблицы courses.
const CoursesChannel = "courses_changed"

// Listener лента изменений каталога поверх LISTEN/NOTIFY.
// Для каждого вызова Watch открывается отдельное соединение.
type Listener struct {
	connString string
	log        *slog.Logger
}

// NewListener создает новый экземпляр Listener.
func NewListener(connString string, log *slog.Logger) *Listener {
	return &Listener{
		connString: connString,
		log:        log,
	}
}

// Watch подписывается на канал courses_changed, вызывает ready после LISTEN
// и notify на каждое уведомление. Блокируется до отмены ctx или обрыва соединения.
func (l *Listener) Watch(ctx context.Context, ready func(), notify func()) error {
	const op = "storage.Listener.Watch"

	conn, err := pgx.Connect(ctx, l.connString)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = conn.Close(context.Background())
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+CoursesChannel); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	l.log.Debug("listening for course changes", slog.String("op", op), slog.String("channel", CoursesChannel))
	ready()

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		l.log.Debug("course change notification",
			slog.String("op", op),
			slog.String("payload", n.Payload),
		)
		notify()
	}
}
