package repository

// Valores de paginación por número de página.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page página solicitada (1-based). Size cero significa sin límite.
type Page struct {
	Number int
	Size   int
}

// NewPage normaliza número y tamaño (default 10, máximo 100).
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Limit filas por página; 0 = todas.
func (p Page) Limit() int { return p.Size }

// Offset filas a saltar.
func (p Page) Offset() int {
	if p.Size <= 0 || p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// Slice aplica la página a un total de n elementos y devuelve los límites [lo, hi).
func (p Page) Slice(n int) (lo, hi int) {
	if p.Size <= 0 {
		return 0, n
	}
	lo = p.Offset()
	if lo > n {
		lo = n
	}
	hi = lo + p.Size
	if hi > n {
		hi = n
	}
	return lo, hi
}
