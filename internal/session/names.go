// Package session — names.go: directorio de nombres de miembros.
// Un identificador tiene UNA forma canónica; toda búsqueda pasa por la
// misma función de normalización, venga como "42", "Usuario 42" o el
// telegram_id crudo.
package session

import "strings"

// usuarioPrefix es el prefijo de las etiquetas sintéticas de miembro.
const usuarioPrefix = "Usuario "

// CanonicalID normaliza cualquier representación de un identificador de
// miembro a su forma canónica de cadena.
func CanonicalID(key string) string {
	key = strings.TrimSpace(key)
	key = strings.TrimPrefix(key, usuarioPrefix)
	return key
}

// NameDirectory mapea identificadores canónicos a nombres visibles.
// Es una copia local best-effort de la verdad del backend.
type NameDirectory map[string]string

// Resolve busca el nombre de un miembro aceptando cualquier
// representación del identificador.
func (d NameDirectory) Resolve(key string) (string, bool) {
	name, ok := d[CanonicalID(key)]
	return name, ok
}
