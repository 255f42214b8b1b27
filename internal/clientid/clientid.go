// Package clientid deriva la clave determinística de un cliente a partir de
// sus datos de contacto. La clave se usa directamente como primary key del
// registro de cliente: dos aprobaciones con el mismo contacto resuelven al
// mismo registro sin coordinación adicional.
package clientid

import "strings"

const (
	prefix    = "client_"
	telPrefix = "client_tel_"
	// minTelDigits: un teléfono con 5 dígitos o menos no identifica a nadie
	// (internos, números truncados) y cae al slug del nombre.
	minTelDigits = 6
)

// Derive elige la primera fuente de identidad disponible: email, teléfono,
// nombre. Es pura y determinística; la misma entrada produce siempre la misma
// clave, incluida la normalización de mayúsculas y espacios.
func Derive(email, telefono, nombre string) string {
	if e := strings.TrimSpace(email); e != "" {
		return prefix + stripNonAlnum(strings.ToLower(e))
	}
	if d := digitsOnly(telefono); len(d) >= minTelDigits {
		return telPrefix + d
	}
	return prefix + slug(nombre)
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), "_")
}
