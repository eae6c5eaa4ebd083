package inventoryservice

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

// Client клиент для работы с сервисом склада материалов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса склада
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ConsumeForService списывает материалы, закрепленные за услугой
func (c *Client) ConsumeForService(ctx context.Context, serviceID string, bookingID int64) (*ConsumeResult, error) {
	url := fmt.Sprintf("%s/internal/inventory/consume", c.baseURL)

	body, err := json.Marshal(ConsumeRequest{
		ServiceID: serviceID,
		BookingID: bookingID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var result ConsumeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &result, nil
}

// ConsumeWithGracefulDegradation списывает материалы с graceful degradation
// При недоступности сервиса склада возвращает ErrServiceDegraded — завершение
// записи при этом не блокируется, списание выполняется вручную
func (c *Client) ConsumeWithGracefulDegradation(ctx context.Context, serviceID string, bookingID int64) (*ConsumeResult, error) {
	c.log.Info("Consuming inventory for service_id=%s, booking_id=%d", serviceID, bookingID)

	result, err := c.ConsumeForService(ctx, serviceID, bookingID)
	if err != nil {
		// Для всех ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation - возвращаем ErrServiceDegraded с контекстом
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("InventoryService unavailable, applying graceful degradation for service_id=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: service_id=%s, error=%v", ErrServiceDegraded, serviceID, err)
	}

	c.log.Info("Inventory consumed for service_id=%s, success=%t", serviceID, result.Success)
	return result, nil
}
