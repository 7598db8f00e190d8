// Package invoicenumber genera el código legible de factura
// INV-DDMMYY-OWNERCOD-NNN de forma determinista.
package invoicenumber

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// Placeholder código de dueño cuando aún no se conoce el usuario.
	Placeholder = "XXXXXXXX"
	prefix      = "INV"
	ownerLen    = 8
	// MaxSequence tope del consecutivo diario.
	MaxSequence = 999
)

// Generate combina fecha, código de dueño y consecutivo. Mismo input, mismo resultado.
func Generate(date time.Time, ownerID string, sequence int) string {
	return fmt.Sprintf("%s-%s-%s-%03d", prefix, date.Format("020106"), OwnerCode(ownerID), clamp(sequence))
}

// OwnerCode primeros 8 caracteres del id en mayúsculas, completados con X.
func OwnerCode(ownerID string) string {
	id := strings.TrimSpace(ownerID)
	if id == "" {
		return Placeholder
	}
	if len(id) > ownerLen {
		id = id[:ownerLen]
	}
	return strings.ToUpper(id) + strings.Repeat("X", ownerLen-len(id))
}

func clamp(seq int) int {
	if seq < 1 {
		return 1
	}
	if seq > MaxSequence {
		return MaxSequence
	}
	return seq
}

// HasPlaceholder detecta números generados sin dueño conocido.
func HasPlaceholder(number string) bool {
	parts, err := Parse(number)
	return err == nil && parts.OwnerCode == Placeholder
}

// DateKey clave de día para el contador autoritativo (YYYY-MM-DD).
func DateKey(date time.Time) string {
	return date.Format("2006-01-02")
}

// Parts segmentos de un número de factura.
type Parts struct {
	Date      string // DDMMYY
	OwnerCode string
	Sequence  int
}

// Parse separa un número generado por Generate.
func Parse(number string) (Parts, error) {
	seg := strings.Split(number, "-")
	if len(seg) != 4 || seg[0] != prefix || len(seg[1]) != 6 || len(seg[2]) != ownerLen || len(seg[3]) != 3 {
		return Parts{}, fmt.Errorf("número de factura con formato inválido: %q", number)
	}
	n, err := strconv.Atoi(seg[3])
	if err != nil {
		return Parts{}, fmt.Errorf("consecutivo inválido en %q: %w", number, err)
	}
	return Parts{Date: seg[1], OwnerCode: seg[2], Sequence: n}, nil
}
