package flowsession

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
)

// Store in-memory хранилище сессий пошагового мастера записи
// Сессии живут ограниченное время и не переживают рестарт сервиса —
// для черновиков мастера это приемлемо
type Store struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewStore создает хранилище сессий с заданным TTL
func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: gocache.New(ttl, ttl/2),
		ttl:   ttl,
	}
}

// Save сохраняет копию сессии, продлевая её TTL
// Кэш никогда не отдает общий указатель: параллельные запросы работают
// каждый со своей копией, побеждает последний Save
func (s *Store) Save(_ context.Context, session *domain.FlowSession) error {
	s.cache.Set(session.ID, session.Clone(), s.ttl)
	return nil
}

// Get получает копию сессии по ID
func (s *Store) Get(_ context.Context, id string) (*domain.FlowSession, error) {
	value, found := s.cache.Get(id)
	if !found {
		return nil, ErrSessionNotFound
	}

	session, ok := value.(*domain.FlowSession)
	if !ok {
		return nil, ErrSessionNotFound
	}

	return session.Clone(), nil
}

// Delete удаляет сессию
func (s *Store) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}
