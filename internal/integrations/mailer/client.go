package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент почтового сервиса уведомлений.
// Уведомления отправляются как побочный эффект fire-and-forget: ошибки доставки логируются
// вызывающей стороной и никогда не влияют на основную операцию.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента почтового сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendRequestCreated отправляет уведомление о создании заявки
func (c *Client) SendRequestCreated(ctx context.Context, n RequestCreatedNotification) error {
	return c.post(ctx, "/internal/notifications/request-created", n)
}

// SendStatusChanged отправляет уведомление о смене статуса заявки
func (c *Client) SendStatusChanged(ctx context.Context, n StatusChangedNotification) error {
	return c.post(ctx, "/internal/notifications/status-changed", n)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}

// Noop заглушка нотификатора, когда рассылка выключена в конфигурации
type Noop struct{}

// SendRequestCreated ничего не делает
func (Noop) SendRequestCreated(ctx context.Context, n RequestCreatedNotification) error {
	return nil
}

// SendStatusChanged ничего не делает
func (Noop) SendStatusChanged(ctx context.Context, n StatusChangedNotification) error {
	return nil
}
