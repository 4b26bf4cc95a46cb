package models

import "time"

// CourseRecord строка таблицы courses: ID, документ курса и служебные метки.
type CourseRecord struct {
	ID        string
	Data      RawRecord
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Raw возвращает документ курса, дополненный метками createdAt/updatedAt
// из служебных колонок, если документ их не содержит.
func (r CourseRecord) Raw() RawRecord {
	out := make(RawRecord, len(r.Data)+2)
	for k, v := range r.Data {
		out[k] = v
	}
	if _, ok := out["createdAt"]; !ok && !r.CreatedAt.IsZero() {
		out["createdAt"] = r.CreatedAt.UTC().Format(TimestampLayout)
	}
	if _, ok := out["updatedAt"]; !ok && !r.UpdatedAt.IsZero() {
		out["updatedAt"] = r.UpdatedAt.UTC().Format(TimestampLayout)
	}
	return out
}
