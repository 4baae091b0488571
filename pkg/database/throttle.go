package database

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// throttle, motora gönderilen statement sayısını saniye başına sınırlar.
// Gömülü motorlarda disk I/O'yu toplu import'lar sırasında dengelemek için
// kullanılır. nil throttle hiçbir şey yapmaz.
type throttle struct {
	limiter *rate.Limiter
}

// newThrottle, perSecond <= 0 ise nil döndürür (sınırsız).
func newThrottle(perSecond float64, burst int) *throttle {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &throttle{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// wait, bir sonraki statement için izin alınana kadar bloklar.
func (t *throttle) wait(ctx context.Context) error {
	if t == nil {
		return nil
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("statement throttle: %w", err)
	}
	return nil
}
