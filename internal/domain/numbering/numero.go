package numbering

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Ancho fijo de cada componente del número de documento.
const (
	AnchoPrefijo   = 4
	AnchoSecuencia = 8
)

// reNumeroAJ patrón de número sugerido para ajustes: prefijo de 4 dígitos,
// código AJ y secuencia de 8 dígitos (ej: "0012AJ00000034").
var reNumeroAJ = regexp.MustCompile(`^\d{4}AJ\d{8}$`)

// reNumeroDocumento patrón general: prefijo + tipo (R|NR|AJ) + secuencia.
var reNumeroDocumento = regexp.MustCompile(`^(\d{4})(R|NR|AJ)(\d{8})$`)

// reDigitos prefijo puramente numérico.
var reDigitos = regexp.MustCompile(`^\d+$`)

// NormalizarPrefijo lleva un prefijo numérico a exactamente 4 dígitos con
// ceros a la izquierda ("12" -> "0012"). Un prefijo no numérico se deja tal
// cual, solo por compatibilidad con datos legados. Dos prefijos con distinto
// formato pero igual valor ("12" y "0012") resuelven al mismo bucket de
// numeración.
func NormalizarPrefijo(prefijo string) string {
	p := strings.TrimSpace(prefijo)
	if !reDigitos.MatchString(p) {
		return p
	}
	if len(p) >= AnchoPrefijo {
		return p
	}
	return strings.Repeat("0", AnchoPrefijo-len(p)) + p
}

// PadSecuencia formatea la secuencia con ceros a la izquierda al ancho dado.
func PadSecuencia(secuencia int64, ancho int) string {
	return fmt.Sprintf("%0*d", ancho, secuencia)
}

// NumeroDocumento deriva el número visible: prefijo normalizado + tipo +
// secuencia con padding a 8. Ej: ("12", "NR", 1) -> "0012NR00000001".
// Es una función pura llamada en el punto de asignación de secuencia, no un
// hook de persistencia.
func NumeroDocumento(prefijo, tipo string, secuencia int64) string {
	return NormalizarPrefijo(prefijo) + tipo + PadSecuencia(secuencia, AnchoSecuencia)
}

// EsNumeroAJValido indica si el número sugerido cumple el patrón de ajustes.
func EsNumeroAJValido(numero string) bool {
	return reNumeroAJ.MatchString(numero)
}

// Descomponer separa un número de documento en (prefijo, tipo, secuencia).
// Devuelve ok=false si no cumple el patrón general.
func Descomponer(numero string) (prefijo, tipo string, secuencia int64, ok bool) {
	m := reNumeroDocumento.FindStringSubmatch(numero)
	if m == nil {
		return "", "", 0, false
	}
	sec, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return "", "", 0, false
	}
	return m[1], m[2], sec, true
}
