// Package models содержит доменные структуры каталога курсов: сам курс,
// его главы и уроки, а также вспомогательные типы для приёма данных
// из JSON-запросов и из хранилища.
package models

// Level уровень сложности курса.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// AccessType определяет, какой протокол доступа применяется к курсу.
type AccessType string

const (
	AccessFree         AccessType = "free"
	AccessPremium      AccessType = "premium"
	AccessSubscription AccessType = "subscription"
)

// TimestampLayout формат CreatedAt/UpdatedAt: ISO-8601 с миллисекундами в UTC.
// Строки в этом формате сортируются лексикографически в хронологическом порядке.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// RawRecord запись курса в том виде, в котором её отдаёт хранилище
// (разобранный JSON без схемы).
type RawRecord map[string]any

// Lesson урок внутри главы.
type Lesson struct {
	Title    string `json:"title"`
	VideoURL string `json:"videoUrl,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// Chapter глава курса с упорядоченным списком уроков.
type Chapter struct {
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

// Course представляет курс каталога после нормализации.
// CreatedAt и UpdatedAt хранятся строками в формате ISO-8601,
// по CreatedAt упорядочен каталог.
type Course struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Instructor       string     `json:"instructor"`
	Duration         string     `json:"duration"`
	Category         string     `json:"category"`
	Thumbnail        string     `json:"thumbnail"`
	ImageURL         string     `json:"imageUrl"`
	Level            Level      `json:"level"`
	Rating           float64    `json:"rating"`
	EnrolledStudents int        `json:"enrolledStudents"`
	VideoCount       int        `json:"videoCount"`
	Price            float64    `json:"price"`
	Chapters         []Chapter  `json:"chapters"`
	IsPublic         bool       `json:"isPublic"`
	IsPremium        bool       `json:"isPremium"`
	AccessType       AccessType `json:"accessType"`
	CreatedAt        string     `json:"createdAt"`
	UpdatedAt        string     `json:"updatedAt"`
}

// LessonCount возвращает суммарное число уроков во всех главах.
func (c Course) LessonCount() int {
	total := 0
	for _, ch := range c.Chapters {
		total += len(ch.Lessons)
	}
	return total
}

// DisplayImage возвращает картинку для карточки: миниатюру или, если её нет, обложку.
func (c Course) DisplayImage() string {
	if c.Thumbnail != "" {
		return c.Thumbnail
	}
	return c.ImageURL
}

// IsFree сообщает, открывается ли курс без проверки доступа.
func (c Course) IsFree() bool {
	return c.AccessType == AccessFree
}

// CourseDraft используется для приёма данных нового курса из JSON-запроса
// администратора, до присвоения ID и временных меток.
type CourseDraft struct {
	Title            string     `json:"title" validate:"required"`
	Description      string     `json:"description"`
	Instructor       string     `json:"instructor"`
	Duration         string     `json:"duration"`
	Category         string     `json:"category"`
	Thumbnail        string     `json:"thumbnail"`
	ImageURL         string     `json:"imageUrl"`
	Level            Level      `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Rating           float64    `json:"rating" validate:"gte=0,lte=5"`
	EnrolledStudents int        `json:"enrolledStudents" validate:"gte=0"`
	Price            float64    `json:"price" validate:"gte=0"`
	Chapters         []Chapter  `json:"chapters"`
	IsPublic         bool       `json:"isPublic"`
	IsPremium        bool       `json:"isPremium"`
	AccessType       AccessType `json:"accessType" validate:"omitempty,oneof=free premium subscription"`
}
