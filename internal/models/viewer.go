package models

// RoleAdmin роль, которой разрешено менять каталог.
const RoleAdmin = "admin"

// Viewer представляет пользователя, который просматривает каталог.
// Пустой UserID означает анонимного посетителя.
type Viewer struct {
	UserID      string
	Role        string
	AuthLoading bool // Сессия ещё не подтверждена
}

// IsAdmin сообщает, может ли пользователь выполнять административные операции.
func (v Viewer) IsAdmin() bool {
	return !v.AuthLoading && v.Role == RoleAdmin
}

// EntitlementRequest тело запроса к сервису проверки доступа.
type EntitlementRequest struct {
	UserID     string     `json:"userId,omitempty"`
	CourseID   string     `json:"courseId"`
	AccessType AccessType `json:"accessType"`
}

// EntitlementResponse ответ сервиса проверки доступа.
type EntitlementResponse struct {
	CanAccessCourse *bool `json:"canAccessCourse"`
}
