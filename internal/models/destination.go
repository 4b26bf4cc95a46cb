package models

import "fmt"

// DestinationKind логический тип экрана, на который нужно перейти.
type DestinationKind string

const (
	DestinationNone         DestinationKind = ""
	DestinationCourse       DestinationKind = "course"
	DestinationCourseEditor DestinationKind = "course_editor"
	DestinationPricing      DestinationKind = "pricing"
	DestinationPayment      DestinationKind = "payment"
)

// Destination результат навигационного решения. Сам переход выполняет
// внешний роутер, ядро только сообщает, куда идти.
type Destination struct {
	Kind     DestinationKind `json:"kind"`
	CourseID string          `json:"courseId,omitempty"`
	Path     string          `json:"path"`
}

// CoursePage переход на страницу курса.
func CoursePage(id string) Destination {
	return Destination{Kind: DestinationCourse, CourseID: id, Path: fmt.Sprintf("/course/%s", id)}
}

// CourseEditorPage переход в редактор курса.
func CourseEditorPage(id string) Destination {
	return Destination{Kind: DestinationCourseEditor, CourseID: id, Path: fmt.Sprintf("/course-editor/%s", id)}
}

// PricingPage переход на страницу тарифов.
func PricingPage() Destination {
	return Destination{Kind: DestinationPricing, Path: "/pricing"}
}

// PaymentPage переход на страницу оплаты курса.
func PaymentPage(id string) Destination {
	return Destination{Kind: DestinationPayment, CourseID: id, Path: fmt.Sprintf("/payment/%s", id)}
}

// IsNone сообщает, что перехода нет.
func (d Destination) IsNone() bool {
	return d.Kind == DestinationNone
}
