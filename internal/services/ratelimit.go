package services

import (
	"sync"
	"time"
)

// Лимит по умолчанию: 10 запросов в скользящем окне 60 секунд.
const (
	DefaultRateLimitWindow = time.Minute
	DefaultRateLimitMax    = 10
)

// SlidingWindowLimiter ограничивает частоту запросов клиента по скользящему
// окну. Для каждого клиента хранятся метки времени принятых запросов,
// протухшие метки выметаются лениво при очередной проверке.
//
// Состояние живет в памяти процесса и при рестарте собирается заново.
// При нескольких инстансах лимит действует на каждый инстанс отдельно,
// межпроцессной синхронизации здесь нет.
type SlidingWindowLimiter struct {
	window time.Duration
	max    int

	mu   sync.Mutex
	hits map[string][]time.Time
	now  func() time.Time
}

func NewSlidingWindowLimiter(window time.Duration, max int) *SlidingWindowLimiter {
	if window <= 0 {
		window = DefaultRateLimitWindow
	}
	if max <= 0 {
		max = DefaultRateLimitMax
	}
	return &SlidingWindowLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow решает, пропускать ли очередной запрос клиента clientID.
// Отказ ничего не записывает: заблокированный клиент не продлевает
// сам себе окно.
func (l *SlidingWindowLimiter) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-l.window)

	// Заодно выметаем полностью протухшие чужие ключи, чтобы карта
	// не росла бесконечно.
	for key, stamps := range l.hits {
		if key == clientID {
			continue
		}
		if len(stamps) == 0 || stamps[len(stamps)-1].Before(windowStart) {
			delete(l.hits, key)
		}
	}

	stamps := l.hits[clientID]
	alive := stamps[:0]
	for _, t := range stamps {
		if t.After(windowStart) {
			alive = append(alive, t)
		}
	}

	if len(alive) >= l.max {
		l.hits[clientID] = alive
		return false
	}
	l.hits[clientID] = append(alive, now)
	return true
}
