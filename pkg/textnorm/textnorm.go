// Package textnorm normaliza textos para comparaciones insensibles a mayúsculas y acentos.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key devuelve la clave de comparación de un nombre: sin acentos, en minúsculas
// y con los espacios colapsados. "  Oficina  São João " -> "oficina sao joao".
func Key(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = cases.Fold().String(out)
	return strings.Join(strings.Fields(out), " ")
}

// Equal compara dos nombres por su clave.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// ContainsPattern arma un patrón LIKE "%s%" tratando % y _ del usuario como literales.
// La consulta debe declarar ESCAPE '\'.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
