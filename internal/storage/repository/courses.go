package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/magabrotheeeer/course-catalog/internal/models"
)

type courseRow struct {
	ID        string    `db:"id"`
	Data      []byte    `db:"data"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ListCourses возвращает все курсы, упорядоченные по created_at и id.
func (s *Storage) ListCourses(ctx context.Context) ([]models.CourseRecord, error) {
	const op = "storage.ListCourses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, data, created_at, updated_at
			  FROM courses
			  ORDER BY created_at, id`
	var rows []courseRow
	if err := s.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]models.CourseRecord, 0, len(rows))
	for _, row := range rows {
		item := models.CourseRecord{
			ID:        row.ID,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
		if len(row.Data) > 0 {
			if err := json.Unmarshal(row.Data, &item.Data); err != nil {
				return nil, fmt.Errorf("%s: decode course %s: %w", op, row.ID, err)
			}
		}
		result = append(result, item)
	}
	return result, nil
}

// CreateCourse сохраняет курс. Документ курса пишется в data целиком,
// метки времени дублируются в служебные колонки для сортировки.
func (s *Storage) CreateCourse(ctx context.Context, course models.Course) error {
	const op = "storage.CreateCourse"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	data, err := json.Marshal(course)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	createdAt := parseTimestamp(course.CreatedAt)
	updatedAt := parseTimestamp(course.UpdatedAt)

	query := `INSERT INTO courses (id, data, created_at, updated_at)
			  VALUES ($1, $2::jsonb, $3, $4)`
	if _, err := s.DB.ExecContext(ctx, query, course.ID, string(data), createdAt, updatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteCourse удаляет курс по ID и возвращает количество удалённых строк.
func (s *Storage) DeleteCourse(ctx context.Context, id string) (int, error) {
	const op = "storage.DeleteCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC()
	}
	return time.Now().UTC()
}
