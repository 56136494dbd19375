package geolocation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

// State состояние запроса позиции
type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// Locator однократное получение позиции с таймаутом и необязательным fallback-источником.
// idle -> requesting -> success | error; из error возможен Retry.
type Locator struct {
	primary  PositionSource
	fallback PositionSource
	timeout  time.Duration
	metrics  MetricsRecorder
	logger   Logger

	mu       sync.Mutex
	state    State
	position Position
	lastErr  *LocationError
}

// NewLocator создает локатор; fallback и metrics могут быть nil, timeout <= 0 дает 15 с
func NewLocator(primary, fallback PositionSource, timeout time.Duration, metrics MetricsRecorder, logger Logger) *Locator {
	if timeout <= 0 {
		timeout = domain.GeolocationTimeout
	}
	return &Locator{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
		metrics:  metrics,
		logger:   logger,
		state:    StateIdle,
	}
}

// State текущее состояние
func (l *Locator) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Position последняя успешно полученная позиция
func (l *Locator) Position() (Position, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position, l.state == StateSuccess
}

// LastError ошибка основного источника последней попытки, nil если ее не было
func (l *Locator) LastError() *LocationError {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Locate запрашивает позицию. Ошибка основного источника при настроенном fallback
// не возвращается, если fallback дал позицию; она доступна через LastError.
func (l *Locator) Locate(ctx context.Context) (Position, error) {
	l.mu.Lock()
	if l.state == StateRequesting {
		l.mu.Unlock()
		return Position{}, ErrRequestInFlight
	}
	l.state = StateRequesting
	l.lastErr = nil
	l.mu.Unlock()

	pos, err := l.run(ctx, l.primary)
	if err == nil {
		pos.Source = SourceDevice
		l.record(string(SourceDevice), "success")
		return l.succeed(pos, nil), nil
	}

	locErr := classify(err)
	l.record(string(SourceDevice), "error")
	l.logger.Warn("geolocation: primary source failed: code=%d: %v", locErr.Code, err)

	if l.fallback != nil {
		fbPos, fbErr := l.run(ctx, l.fallback)
		if fbErr == nil {
			fbPos.Source = SourceIPFallback
			l.record(string(SourceIPFallback), "success")
			return l.succeed(fbPos, locErr), nil
		}
		l.record(string(SourceIPFallback), "error")
		l.logger.Warn("geolocation: fallback source failed: %v", fbErr)
	}

	l.mu.Lock()
	l.state = StateError
	l.lastErr = locErr
	l.mu.Unlock()

	return Position{}, locErr
}

// Retry повторный запрос, разрешен только из состояния error
func (l *Locator) Retry(ctx context.Context) (Position, error) {
	if l.State() != StateError {
		return Position{}, ErrRetryNotAllowed
	}
	return l.Locate(ctx)
}

func (l *Locator) succeed(pos Position, primaryErr *LocationError) Position {
	if pos.Timestamp.IsZero() {
		pos.Timestamp = time.Now()
	}

	l.mu.Lock()
	l.state = StateSuccess
	l.position = pos
	l.lastErr = primaryErr
	l.mu.Unlock()

	return pos
}

// run выполняет запрос источника с таймаутом
func (l *Locator) run(ctx context.Context, src PositionSource) (Position, error) {
	if src == nil {
		return Position{}, NewLocationError(CodePositionUnavailable, nil)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	type result struct {
		pos Position
		err error
	}
	done := make(chan result, 1)

	go func() {
		pos, err := src.CurrentPosition(ctx)
		done <- result{pos: pos, err: err}
	}()

	select {
	case r := <-done:
		if r.err == nil && !r.pos.Coordinates.IsValid() {
			return Position{}, NewLocationError(CodePositionUnavailable, nil)
		}
		return r.pos, r.err
	case <-ctx.Done():
		return Position{}, NewLocationError(CodeTimeout, ctx.Err())
	}
}

func (l *Locator) record(source, outcome string) {
	if l.metrics != nil {
		l.metrics.IncGeolocationResult(source, outcome)
	}
}

func classify(err error) *LocationError {
	var locErr *LocationError
	if errors.As(err, &locErr) {
		return locErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewLocationError(CodeTimeout, err)
	}
	return NewLocationError(CodeUnknown, err)
}

// DefaultPosition центр Абиджана, когда позиция неизвестна
func DefaultPosition() Position {
	return Position{
		Coordinates: domain.AbidjanCenter,
		Source:      SourceDefault,
	}
}
