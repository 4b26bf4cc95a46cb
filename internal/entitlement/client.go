// Package entitlement обращается к удалённому сервису проверки доступа
// к платным курсам и кэширует подтверждённые разрешения.
package entitlement

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/magabrotheeeer/course-catalog/internal/metrics"
	"github.com/magabrotheeeer/course-catalog/internal/models"
)

var (
	// ErrTransport сервис недоступен или ответил статусом вне 2xx.
	ErrTransport = errors.New("entitlement transport failure")
	// ErrBadResponse ответ сервиса не удалось разобрать.
	ErrBadResponse = errors.New("entitlement bad response")
)

// maxResponseSize ограничивает тело ответа сервиса проверки доступа.
const maxResponseSize = 1 << 20

// Client клиент сервиса проверки доступа.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient создаёт клиент. Время ожидания задаётся контекстом вызова.
func NewClient(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		url:        url,
		httpClient: httpClient,
	}
}

// Check отправляет запрос {userId, courseId, accessType} и возвращает canAccessCourse.
func (c *Client) Check(ctx context.Context, req models.EntitlementRequest) (bool, error) {
	const op = "entitlement.Check"

	start := time.Now()
	allowed, err := c.do(ctx, req)
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.EntitlementDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return allowed, nil
}

func (c *Client) do(ctx context.Context, req models.EntitlementRequest) (bool, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return false, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("%w: unexpected status: %s", ErrTransport, resp.Status)
	}

	var body models.EntitlementResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&body); err != nil {
		return false, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	if body.CanAccessCourse == nil {
		return false, fmt.Errorf("%w: canAccessCourse missing", ErrBadResponse)
	}
	return *body.CanAccessCourse, nil
}
