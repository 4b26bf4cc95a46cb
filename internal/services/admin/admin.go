// Package admin реализует административные операции над каталогом:
// создание курса, переход в редактор и удаление в два шага
// (выбор курса, затем подтверждение). Для всех, кроме администратора,
// операции ничего не делают.
package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/course-catalog/internal/catalog"
	"github.com/magabrotheeeer/course-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/course-catalog/internal/metrics"
	"github.com/magabrotheeeer/course-catalog/internal/models"
)

// Store локальный список курсов.
type Store interface {
	Append(c models.Course)
	Remove(id string) bool
}

// Persister сохраняет изменения каталога в хранилище.
type Persister interface {
	// CreateCourse сохраняет новый курс.
	CreateCourse(ctx context.Context, course models.Course) error
	// DeleteCourse удаляет курс и возвращает количество удалённых записей.
	DeleteCourse(ctx context.Context, id string) (int, error)
}

// EventPublisher публикует события каталога.
type EventPublisher interface {
	PublishCourseEvent(event models.CourseEvent) error
}

// Ops выполняет административные операции. Выбранный для удаления курс
// хранится отдельно для каждого зрителя.
type Ops struct {
	store     Store
	persister Persister
	publisher EventPublisher
	log       *slog.Logger

	now   func() time.Time
	newID func() (uuid.UUID, error)

	mu      sync.Mutex
	pending map[string]string
}

// NewOps создает новый экземпляр Ops. publisher может быть nil.
func NewOps(store Store, persister Persister, publisher EventPublisher, log *slog.Logger) *Ops {
	return &Ops{
		store:     store,
		persister: persister,
		publisher: publisher,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewV7,
		pending:   make(map[string]string),
	}
}

// Create создаёт курс из черновика: присваивает UUIDv7, проставляет
// createdAt и updatedAt, добавляет курс в локальный список и сохраняет его.
// При ошибке сохранения курс остаётся в локальном списке до следующего снимка.
func (o *Ops) Create(ctx context.Context, viewer models.Viewer, draft models.CourseDraft) (*models.Course, models.Destination, error) {
	const op = "admin.Create"
	log := o.log.With(slog.String("op", op), slog.String("user_id", viewer.UserID))

	if !viewer.IsAdmin() {
		log.Debug("create ignored: not an admin")
		return nil, models.Destination{}, nil
	}

	id, err := o.newID()
	if err != nil {
		return nil, models.Destination{}, fmt.Errorf("%s: %w", op, err)
	}
	course, err := courseFromDraft(id.String(), draft, o.now().UTC().Format(models.TimestampLayout))
	if err != nil {
		return nil, models.Destination{}, fmt.Errorf("%s: %w", op, err)
	}

	o.store.Append(course)
	metrics.AdminOperations.WithLabelValues("create").Inc()
	dest := models.CoursePage(course.ID)

	if o.persister != nil {
		if err := o.persister.CreateCourse(ctx, course); err != nil {
			log.Error("failed to persist course", sl.Err(err), slog.String("course_id", course.ID))
			return &course, dest, fmt.Errorf("%s: %w", op, err)
		}
	}
	o.publish(log, models.EventCourseCreated, course.ID, viewer.UserID)

	log.Info("course created", slog.String("course_id", course.ID))
	return &course, dest, nil
}

// Edit возвращает переход в редактор курса. Каталог не меняется.
func (o *Ops) Edit(viewer models.Viewer, id string) models.Destination {
	if !viewer.IsAdmin() {
		return models.Destination{}
	}
	metrics.AdminOperations.WithLabelValues("edit").Inc()
	return models.CourseEditorPage(id)
}

// SelectForDeletion запоминает курс, который зритель собирается удалить.
func (o *Ops) SelectForDeletion(viewer models.Viewer, id string) bool {
	if !viewer.IsAdmin() || id == "" {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending[viewer.UserID] = id
	return true
}

// PendingDeletion возвращает курс, выбранный зрителем для удаления.
func (o *Ops) PendingDeletion(viewer models.Viewer) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	id, ok := o.pending[viewer.UserID]
	return id, ok
}

// CancelDeletion сбрасывает выбор без удаления.
func (o *Ops) CancelDeletion(viewer models.Viewer) {
	if !viewer.IsAdmin() {
		return
	}
	o.take(viewer.UserID)
}

// ConfirmDeletion удаляет выбранный курс. Выбор сбрасывается при любом исходе.
// При ошибке хранилища курс остаётся в локальном списке.
// Удаление отсутствующего курса ничего не меняет и возвращает deleted=false.
func (o *Ops) ConfirmDeletion(ctx context.Context, viewer models.Viewer) (string, bool, error) {
	const op = "admin.ConfirmDeletion"
	log := o.log.With(slog.String("op", op), slog.String("user_id", viewer.UserID))

	if !viewer.IsAdmin() {
		log.Debug("delete ignored: not an admin")
		return "", false, nil
	}
	id, ok := o.take(viewer.UserID)
	if !ok {
		return "", false, nil
	}
	log = log.With(slog.String("course_id", id))

	// Локальный список меняется только после удаления в хранилище.
	persisted := false
	if o.persister != nil {
		rows, err := o.persister.DeleteCourse(ctx, id)
		if err != nil {
			log.Error("failed to delete course", sl.Err(err))
			return id, false, fmt.Errorf("%s: %w", op, err)
		}
		persisted = rows > 0
	}
	removed := o.store.Remove(id) || persisted
	if !removed {
		log.Debug("course already absent")
		return id, false, nil
	}

	metrics.AdminOperations.WithLabelValues("delete").Inc()
	o.publish(log, models.EventCourseDeleted, id, viewer.UserID)
	log.Info("course deleted")
	return id, true, nil
}

func (o *Ops) take(userID string) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	id, ok := o.pending[userID]
	delete(o.pending, userID)
	return id, ok
}

func (o *Ops) publish(log *slog.Logger, eventType, courseID, actorID string) {
	if o.publisher == nil {
		return
	}
	err := o.publisher.PublishCourseEvent(models.CourseEvent{
		Type:       eventType,
		CourseID:   courseID,
		ActorID:    actorID,
		OccurredAt: o.now().UTC().Format(models.TimestampLayout),
	})
	if err != nil {
		log.Warn("failed to publish course event", sl.Err(err), slog.String("event", eventType))
	}
}

// courseFromDraft собирает курс из черновика через нормализатор,
// чтобы созданный курс не отличался от прочитанного из хранилища.
func courseFromDraft(id string, draft models.CourseDraft, now string) (models.Course, error) {
	data, err := json.Marshal(draft)
	if err != nil {
		return models.Course{}, err
	}
	var raw models.RawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Course{}, err
	}
	raw["createdAt"] = now
	raw["updatedAt"] = now
	return catalog.Normalize(id, raw), nil
}
