package insurance

import (
	"strconv"
	"strings"
	"sync"

	"github.com/jhoicas/Seguros-api/pkg/clock"
)

// Prefijos de los números legibles.
const (
	PolicyNumberPrefix = "POL-"
	ClaimNumberPrefix  = "CLM-"
)

// IdentifierGenerator genera números POL-/CLM- con sufijo en milisegundos estrictamente creciente:
// dos llamadas en el mismo milisegundo nunca repiten sufijo dentro del proceso.
// La unicidad entre procesos la garantiza el constraint UNIQUE de la base (Conflict).
type IdentifierGenerator struct {
	clock clock.Clock
	mu    sync.Mutex
	last  int64
}

// NewIdentifierGenerator construye el generador.
func NewIdentifierGenerator(c clock.Clock) *IdentifierGenerator {
	return &IdentifierGenerator{clock: c}
}

// PolicyNumber genera un número de póliza.
func (g *IdentifierGenerator) PolicyNumber() string { return g.next(PolicyNumberPrefix) }

// ClaimNumber genera un número de reclamación.
func (g *IdentifierGenerator) ClaimNumber() string { return g.next(ClaimNumberPrefix) }

func (g *IdentifierGenerator) next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.clock.Now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return prefix + strconv.FormatInt(ms, 10)
}

// ResolveIdentifier usa el número suministrado (sin espacios) o genera uno si viene vacío.
func ResolveIdentifier(supplied string, generate func() string) string {
	if s := strings.TrimSpace(supplied); s != "" {
		return s
	}
	return generate()
}
