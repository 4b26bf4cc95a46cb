package catalog

import (
	"strings"
	"sync"

	"github.com/magabrotheeeer/course-catalog/internal/models"
)

// PageSize число курсов на одной странице каталога.
const PageSize = 15

// Status состояние загрузки каталога.
type Status int

const (
	// StatusLoading первый снимок ещё не получен.
	StatusLoading Status = iota
	// StatusReady каталог получен.
	StatusReady
	// StatusFailed подписка завершилась ошибкой.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "loading"
	}
}

// View производное представление каталога: одна страница отфильтрованного списка.
type View struct {
	Courses    []models.Course `json:"courses"`
	SearchTerm string          `json:"searchTerm"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	Total      int             `json:"total"`
}

// Store хранит текущий список курсов, поисковый запрос и номер страницы.
// Снимок всегда заменяется целиком, поэтому производное представление
// вычисляется из согласованного состояния.
type Store struct {
	mu         sync.RWMutex
	all        []models.Course
	version    uint64
	searchTerm string
	page       int
	status     Status
	err        error

	memoMu sync.Mutex
	memo   filterMemo
}

type filterMemo struct {
	valid    bool
	version  uint64
	term     string
	filtered []models.Course
}

// NewStore создаёт пустое хранилище в состоянии загрузки.
func NewStore() *Store {
	return &Store{page: 1}
}

// Replace применяет новый снимок каталога. Курсы с повторяющимся ID
// схлопываются: остаётся позиция первого и содержимое последнего.
func (s *Store) Replace(courses []models.Course) {
	next := dedupe(courses)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = next
	s.version++
	s.status = StatusReady
	s.err = nil
}

// Fail переводит хранилище в состояние ошибки. Последний полученный
// снимок сохраняется.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusFailed
	s.err = err
}

// Status возвращает состояние загрузки и ошибку, если она была.
func (s *Store) Status() (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.err
}

// Courses возвращает копию всего каталога.
func (s *Store) Courses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Course, len(s.all))
	copy(out, s.all)
	return out
}

// Len возвращает число курсов в каталоге.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.all)
}

// Get ищет курс по ID.
func (s *Store) Get(id string) (models.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.all {
		if c.ID == id {
			return c, true
		}
	}
	return models.Course{}, false
}

// Append добавляет курс в конец каталога или заменяет курс с тем же ID.
func (s *Store) Append(c models.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Course, 0, len(s.all)+1)
	replaced := false
	for _, existing := range s.all {
		if existing.ID == c.ID {
			next = append(next, c)
			replaced = true
			continue
		}
		next = append(next, existing)
	}
	if !replaced {
		next = append(next, c)
	}
	s.all = next
	s.version++
}

// Remove удаляет курс по ID. Возвращает false, если курса не было.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Course, 0, len(s.all))
	for _, c := range s.all {
		if c.ID != id {
			next = append(next, c)
		}
	}
	if len(next) == len(s.all) {
		return false
	}
	s.all = next
	s.version++
	return true
}

// SetSearchTerm меняет поисковый запрос. При смене запроса страница
// сбрасывается на первую.
func (s *Store) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if term != s.searchTerm {
		s.page = 1
	}
	s.searchTerm = term
}

// SearchTerm возвращает текущий поисковый запрос.
func (s *Store) SearchTerm() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchTerm
}

// SetPage меняет номер страницы. Значения меньше 1 приводятся к 1,
// страница за пределами totalPages допустима и даёт пустую выдачу.
func (s *Store) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
}

// Page возвращает текущий номер страницы.
func (s *Store) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// View вычисляет текущую страницу каталога по сохранённым запросу и номеру страницы.
func (s *Store) View() View {
	s.mu.RLock()
	all, version, term, page := s.all, s.version, s.searchTerm, s.page
	s.mu.RUnlock()
	return s.view(all, version, term, page)
}

// Query вычисляет страницу каталога для переданных запроса и номера страницы,
// не меняя состояние хранилища.
func (s *Store) Query(term string, page int) View {
	if page < 1 {
		page = 1
	}
	s.mu.RLock()
	all, version := s.all, s.version
	s.mu.RUnlock()
	return s.view(all, version, term, page)
}

func (s *Store) view(all []models.Course, version uint64, term string, page int) View {
	filtered := s.filtered(all, version, term)
	return View{
		Courses:    PageSlice(filtered, page),
		SearchTerm: term,
		Page:       page,
		TotalPages: TotalPages(len(filtered)),
		Total:      len(filtered),
	}
}

// filtered возвращает отфильтрованный список, переиспользуя результат
// для той же пары (снимок, запрос).
func (s *Store) filtered(all []models.Course, version uint64, term string) []models.Course {
	s.memoMu.Lock()
	defer s.memoMu.Unlock()
	if s.memo.valid && s.memo.version == version && s.memo.term == term {
		return s.memo.filtered
	}
	filtered := Filter(all, term)
	s.memo = filterMemo{valid: true, version: version, term: term, filtered: filtered}
	return filtered
}

// Filter возвращает курсы, в названии которых без учёта регистра
// встречается term. Пустой запрос возвращает все курсы.
func Filter(courses []models.Course, term string) []models.Course {
	if term == "" {
		return courses
	}
	needle := strings.ToLower(term)
	out := make([]models.Course, 0, len(courses))
	for _, c := range courses {
		if strings.Contains(strings.ToLower(c.Title), needle) {
			out = append(out, c)
		}
	}
	return out
}

// TotalPages число страниц для n курсов, минимум одна.
func TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// PageSlice возвращает курсы страницы page. Для страниц вне диапазона
// возвращается пустой срез.
func PageSlice(courses []models.Course, page int) []models.Course {
	// Границы проверяются до умножения: большой page переполняет int.
	if page < 1 || len(courses) == 0 || page > TotalPages(len(courses)) {
		return []models.Course{}
	}
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(courses))
	out := make([]models.Course, end-start)
	copy(out, courses[start:end])
	return out
}

func dedupe(courses []models.Course) []models.Course {
	index := make(map[string]int, len(courses))
	out := make([]models.Course, 0, len(courses))
	for _, c := range courses {
		if i, ok := index[c.ID]; ok {
			out[i] = c
			continue
		}
		index[c.ID] = len(out)
		out = append(out, c)
	}
	return out
}
