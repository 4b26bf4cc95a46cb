// Package access решает, куда вести зрителя при выборе курса: на страницу
// курса, на страницу тарифов или на оплату. Для платных курсов решение
// принимает удалённый сервис проверки доступа.
package access

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/course-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/course-catalog/internal/metrics"
	"github.com/magabrotheeeer/course-catalog/internal/models"
)

// DefaultTimeout время ожидания ответа сервиса проверки доступа.
const DefaultTimeout = 5 * time.Second

// Checker проверяет доступ зрителя к курсу.
type Checker interface {
	Check(ctx context.Context, req models.EntitlementRequest) (bool, error)
}

// Gate принимает навигационное решение по курсу.
type Gate struct {
	checker    Checker
	timeout    time.Duration
	failClosed bool
	log        *slog.Logger
}

// NewGate создает новый экземпляр Gate. При failClosed сбой проверки
// ведёт на страницу отказа, иначе на страницу курса.
func NewGate(checker Checker, timeout time.Duration, failClosed bool, log *slog.Logger) *Gate {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gate{
		checker:    checker,
		timeout:    timeout,
		failClosed: failClosed,
		log:        log,
	}
}

// ResolveNavigation возвращает место перехода для выбранного курса.
// Бесплатный курс открывается без обращения к сервису. Если ctx вызывающего
// отменён до ответа, решение не принимается и возвращается пустой Destination.
func (g *Gate) ResolveNavigation(ctx context.Context, viewer models.Viewer, course models.Course) models.Destination {
	const op = "access.ResolveNavigation"
	log := g.log.With(
		slog.String("op", op),
		slog.String("course_id", course.ID),
		slog.String("access_type", string(course.AccessType)),
	)

	if course.IsFree() {
		metrics.NavigationDecisions.WithLabelValues(metrics.OutcomeFree).Inc()
		return models.CoursePage(course.ID)
	}

	checkCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	allowed, err := g.checker.Check(checkCtx, models.EntitlementRequest{
		UserID:     viewer.UserID,
		CourseID:   course.ID,
		AccessType: course.AccessType,
	})
	if ctx.Err() != nil {
		log.Debug("navigation abandoned", sl.Err(ctx.Err()))
		return models.Destination{}
	}

	if err != nil {
		metrics.NavigationDecisions.WithLabelValues(metrics.OutcomeFailed).Inc()
		log.Error("entitlement check failed", sl.Err(err), slog.Bool("fail_closed", g.failClosed))
		if g.failClosed {
			return denial(course)
		}
		return models.CoursePage(course.ID)
	}

	if allowed {
		metrics.NavigationDecisions.WithLabelValues(metrics.OutcomeGranted).Inc()
		return models.CoursePage(course.ID)
	}

	metrics.NavigationDecisions.WithLabelValues(metrics.OutcomeDenied).Inc()
	log.Info("access denied", slog.String("user_id", viewer.UserID))
	return denial(course)
}

// denial подписочные курсы ведут на тарифы, остальные на оплату курса.
func denial(course models.Course) models.Destination {
	if course.AccessType == models.AccessSubscription {
		return models.PricingPage()
	}
	return models.PaymentPage(course.ID)
}
