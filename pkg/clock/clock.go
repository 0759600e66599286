// Package clock abstrae la hora actual para que las reglas que dependen de la fecha
// (vencimiento de pólizas, renovaciones, sellos de procesamiento) sean deterministas en tests.
package clock

import (
	"sync"
	"time"
)

// Clock fuente de la hora actual. Producción inyecta Real(); los tests, Fixed().
type Clock interface {
	Now() time.Time
}

type realClock struct{}

// Real devuelve el reloj del sistema.
func Real() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

// FixedClock reloj controlado manualmente. Seguro para uso concurrente.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// Fixed crea un reloj detenido en t.
func Fixed(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

// Now devuelve la hora fijada.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set mueve el reloj a t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance adelanta el reloj d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
