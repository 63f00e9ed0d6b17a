package http

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/tacom-api/internal/application/dto"
)

// IPRateLimiter guarda un limitador por dirección IP.
type IPRateLimiter struct {
	ips map[string]*rate.Limiter
	mu  sync.RWMutex
	r   rate.Limit
	b   int
}

// NewIPRateLimiter crea el registro de limitadores con r solicitudes/s y ráfaga b.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*rate.Limiter),
		r:   r,
		b:   b,
	}
}

// GetLimiter devuelve el limitador de la IP, creándolo si no existe.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, ok := i.ips[ip]
	i.mu.RUnlock()
	if ok {
		return limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if limiter, ok = i.ips[ip]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(i.r, i.b)
	i.ips[ip] = limiter
	return limiter
}

// RateLimit middleware que responde 429 cuando la IP supera su cuota.
// rps <= 0 desactiva el límite.
func RateLimit(rps float64, burst int) fiber.Handler {
	if rps <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if burst <= 0 {
		burst = 1
	}
	limiter := NewIPRateLimiter(rate.Limit(rps), burst)
	return func(c *fiber.Ctx) error {
		if !limiter.GetLimiter(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas solicitudes, intente más tarde"})
		}
		return c.Next()
	}
}
