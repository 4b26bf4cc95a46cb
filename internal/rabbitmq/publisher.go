package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/course-catalog/internal/models"
)

// PublishMessage публикует сообщение в RabbitMQ.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Publisher публикует события каталога в обменник catalog.
// amqp.Channel не допускает конкурентной публикации, поэтому вызовы сериализуются.
type Publisher struct {
	mu sync.Mutex
	ch *amqp.Channel
}

// NewPublisher создает новый экземпляр Publisher.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// PublishCourseEvent публикует событие с ключом маршрутизации event.Type.
// Вслед за ним публикуется course.changed для лент изменений.
func (p *Publisher) PublishCourseEvent(event models.CourseEvent) error {
	const op = "rabbitmq.PublishCourseEvent"
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := PublishMessage(p.ch, CatalogExchange, event.Type, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	changed := event
	changed.Type = models.EventCourseChanged
	if err := PublishMessage(p.ch, CatalogExchange, models.EventCourseChanged, changed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PublishChanged публикует только course.changed, без исходного события.
func (p *Publisher) PublishChanged() error {
	const op = "rabbitmq.PublishChanged"
	p.mu.Lock()
	defer p.mu.Unlock()

	event := models.CourseEvent{
		Type:       models.EventCourseChanged,
		OccurredAt: time.Now().UTC().Format(models.TimestampLayout),
	}
	if err := PublishMessage(p.ch, CatalogExchange, models.EventCourseChanged, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
