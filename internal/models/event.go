package models

// Типы событий каталога, публикуемых в брокер.
const (
	EventCourseCreated = "course.created"
	EventCourseDeleted = "course.deleted"
	EventCourseChanged = "course.changed"
)

// CourseEvent сообщение об изменении каталога. Тип события совпадает
// с ключом маршрутизации.
type CourseEvent struct {
	Type       string `json:"type"`
	CourseID   string `json:"courseId"`
	ActorID    string `json:"actorId,omitempty"`
	OccurredAt string `json:"occurredAt"`
}
