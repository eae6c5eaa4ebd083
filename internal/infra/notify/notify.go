package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Change событие изменения данных расписания
// Публикуется в Redis, чтобы открытые календари могли обновиться
type Change struct {
	Entity string `json:"entity"`         // booking | schedule | blocked_period
	Action string `json:"action"`         // created | updated | deleted
	ID     string `json:"id,omitempty"`   // идентификатор сущности
	Date   string `json:"date,omitempty"` // затронутая дата, YYYY-MM-DD
}

// Действия для событий изменения
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Сущности для событий изменения
const (
	EntityBooking       = "booking"
	EntitySchedule      = "schedule"
	EntityBlockedPeriod = "blocked_period"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// ChangePublisher публикует события изменения расписания
type ChangePublisher interface {
	PublishChange(ctx context.Context, change Change)
}

// Publisher публикует события в Redis канал
// Ошибки публикации не фатальны: уведомления это best-effort механизм
type Publisher struct {
	client  *redis.Client
	channel string
	logs    Logger
}

// NewPublisher создает издателя событий поверх Redis
func NewPublisher(client *redis.Client, channel string, logs Logger) *Publisher {
	return &Publisher{
		client:  client,
		channel: channel,
		logs:    logs,
	}
}

// PublishChange публикует событие изменения
// При ошибке пишет предупреждение в лог и продолжает работу
func (p *Publisher) PublishChange(ctx context.Context, change Change) {
	payload, err := json.Marshal(change)
	if err != nil {
		p.logs.Warn("notify: failed to marshal change event: %v", err)
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := p.client.Publish(publishCtx, p.channel, payload).Err(); err != nil {
		p.logs.Warn("notify: failed to publish change event to channel %s: %v", p.channel, err)
	}
}

// NoopPublisher заглушка, когда Redis выключен в конфигурации
type NoopPublisher struct{}

// NewNoopPublisher создает издателя-заглушку
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// PublishChange ничего не делает
func (p *NoopPublisher) PublishChange(_ context.Context, _ Change) {}
