package middleware

import (
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
)

// RecoverFromPanic registra un pánico del handler y lo traga. notify,
// si no es nil, corre después del log para avisar al usuario; un pánico
// nunca tumba el bot ni deja al usuario sin respuesta.
func RecoverFromPanic(notify func()) {
	if r := recover(); r != nil {
		log.WithFields(log.Fields{
			"component": "panic_recovery",
			"panic":     fmt.Sprintf("%v", r),
			"stack":     string(debug.Stack()),
		}).Error("Pánico en el handler, recuperado")

		if notify != nil {
			notify()
		}
	}
}
