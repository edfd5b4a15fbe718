package shopify

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// APIError es una respuesta no-2xx de la API. Distingue errores transitorios
// (429/5xx, reintentables) de fatales (401, 404, ...).
type APIError struct {
	StatusCode int
	// RetryAfter es la pista del servidor (header Retry-After), 0 si no vino.
	RetryAfter time.Duration
	Body       string
}

// Error implementa error.
func (e *APIError) Error() string {
	return fmt.Sprintf("shopify: status %d: %s", e.StatusCode, e.Body)
}

// Retryable indica si el error amerita reintento con backoff.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 429 || (e.StatusCode >= 500 && e.StatusCode < 600)
}

// retryPolicy reintenta errores transitorios con backoff exponencial:
// baseDelay, 2x por intento, hasta maxRetries. Si el servidor manda un
// Retry-After mayor que el delay calculado, gana el servidor.
type retryPolicy struct {
	maxRetries int
	baseDelay  time.Duration
}

// defaultRetryPolicy replica la política histórica: 6 reintentos desde 350ms.
func defaultRetryPolicy() retryPolicy {
	return retryPolicy{maxRetries: 6, baseDelay: 350 * time.Millisecond}
}

// do ejecuta fn y reintenta mientras el error sea un APIError transitorio.
// El sleep respeta la cancelación del contexto.
func (p retryPolicy) do(ctx context.Context, fn func() error) error {
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Retryable() || attempt >= p.maxRetries {
			return err
		}
		delay := p.baseDelay << attempt
		if apiErr.RetryAfter > delay {
			delay = apiErr.RetryAfter
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}
