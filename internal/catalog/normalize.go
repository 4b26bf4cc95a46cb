// Package catalog содержит нормализацию записей курсов и in-memory хранилище
// каталога с поиском и постраничной выдачей.
package catalog

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/course-catalog/internal/models"
)

// Normalize приводит сырую запись хранилища к models.Course.
// Функция чистая и тотальная: отсутствующие поля получают значения
// по умолчанию, нераспознанные перечисления приводятся к ближайшему
// известному значению.
func Normalize(id string, raw models.RawRecord) models.Course {
	c := models.Course{
		ID:               id,
		Title:            str(raw["title"]),
		Description:      str(raw["description"]),
		Instructor:       str(raw["instructor"]),
		Duration:         str(raw["duration"]),
		Category:         str(raw["category"]),
		Thumbnail:        str(raw["thumbnail"]),
		ImageURL:         str(raw["imageUrl"]),
		Level:            normalizeLevel(str(raw["level"])),
		Rating:           clamp(num(raw["rating"]), 0, 5),
		EnrolledStudents: nonNegative(num(raw["enrolledStudents"])),
		Price:            math.Max(0, num(raw["price"])),
		Chapters:         chapters(raw["chapters"]),
		IsPublic:         boolean(raw["isPublic"]),
		IsPremium:        boolean(raw["isPremium"]),
		CreatedAt:        timestamp(raw["createdAt"]),
		UpdatedAt:        timestamp(raw["updatedAt"]),
	}
	if c.ID == "" {
		c.ID = str(raw["id"])
	}
	c.AccessType = normalizeAccessType(str(raw["accessType"]), c.IsPremium)

	c.VideoCount = nonNegative(num(raw["videoCount"]))
	if _, ok := raw["videoCount"]; !ok || c.VideoCount == 0 {
		c.VideoCount = c.LessonCount()
	}
	if c.UpdatedAt == "" {
		c.UpdatedAt = c.CreatedAt
	}
	return c
}

// NormalizeAll нормализует набор записей, ключом которого служит ID,
// и возвращает курсы в порядке каталога: по CreatedAt, затем по ID.
func NormalizeAll(records map[string]models.RawRecord) []models.Course {
	out := make([]models.Course, 0, len(records))
	for id, raw := range records {
		out = append(out, Normalize(id, raw))
	}
	SortByCreatedAt(out)
	return out
}

// SortByCreatedAt упорядочивает курсы так же, как это делает хранилище.
func SortByCreatedAt(courses []models.Course) {
	sort.SliceStable(courses, func(i, j int) bool {
		if courses[i].CreatedAt != courses[j].CreatedAt {
			return courses[i].CreatedAt < courses[j].CreatedAt
		}
		return courses[i].ID < courses[j].ID
	})
}

func normalizeAccessType(v string, isPremium bool) models.AccessType {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "free", "open", "public":
		return models.AccessFree
	case "premium", "paid", "purchase", "one-time", "onetime":
		return models.AccessPremium
	case "subscription", "sub", "subscriber", "membership", "monthly", "yearly":
		return models.AccessSubscription
	case "":
		return models.AccessFree
	}
	if isPremium {
		return models.AccessPremium
	}
	return models.AccessFree
}

func normalizeLevel(v string) models.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "intermediate", "medium", "middle":
		return models.LevelIntermediate
	case "advanced", "expert", "hard":
		return models.LevelAdvanced
	default:
		return models.LevelBeginner
	}
}

func chapters(v any) []models.Chapter {
	items := ordered(v)
	out := make([]models.Chapter, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		lessonItems := ordered(m["lessons"])
		lessons := make([]models.Lesson, 0, len(lessonItems))
		for _, li := range lessonItems {
			switch l := li.(type) {
			case map[string]any:
				lessons = append(lessons, models.Lesson{
					Title:    str(l["title"]),
					VideoURL: str(l["videoUrl"]),
					Duration: str(l["duration"]),
				})
			case string:
				lessons = append(lessons, models.Lesson{Title: l})
			}
		}
		out = append(out, models.Chapter{Title: str(m["title"]), Lessons: lessons})
	}
	return out
}

// ordered разворачивает массив или объект с ключами-идентификаторами
// (так хранилище отдаёт списки) в упорядоченный срез.
func ordered(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			a, errA := strconv.Atoi(keys[i])
			b, errB := strconv.Atoi(keys[j])
			if errA == nil && errB == nil {
				return a < b
			}
			return keys[i] < keys[j]
		})
		out := make([]any, 0, len(keys))
		for _, k := range keys {
			out = append(out, t[k])
		}
		return out
	default:
		return nil
	}
}

func str(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func num(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		f, _ = t.Float64()
	case string:
		f, _ = strconv.ParseFloat(strings.TrimSpace(t), 64)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func boolean(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(t))
		return b
	default:
		return num(v) != 0
	}
}

func timestamp(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64, int, int64, json.Number:
		ms := int64(num(t))
		if ms <= 0 {
			return ""
		}
		return time.UnixMilli(ms).UTC().Format(models.TimestampLayout)
	default:
		return ""
	}
}

func nonNegative(f float64) int {
	if f < 0 {
		return 0
	}
	return int(f)
}

func clamp(f, lo, hi float64) float64 {
	return math.Min(math.Max(f, lo), hi)
}
