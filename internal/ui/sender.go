// Package ui — sender.go: capacidad de envío inyectada en los flujos.
// Los handlers nunca importan el dispatcher ni la API de Telegram;
// "volver al menú" es SendMenu, lo que elimina los import cycles que
// tendría cada flujo mostrando el menú por su cuenta.
package ui

// Sender renderiza texto y teclados hacia el usuario. La implementación
// real vive en internal/bot; los tests usan un fake.
type Sender interface {
	// Send envía texto plano sin tocar el teclado vigente.
	Send(chatID int64, text string)
	// SendMarkdown envía texto con formato Markdown; kb puede ser nil.
	SendMarkdown(chatID int64, text string, kb Keyboard)
	// SendKeyboard envía texto plano con un teclado de respuesta.
	SendKeyboard(chatID int64, text string, kb Keyboard)
	// SendMenu envía texto junto con el menú principal.
	SendMenu(chatID int64, text string)
	// SendPhoto envía una imagen PNG con su leyenda.
	SendPhoto(chatID int64, caption string, png []byte)
}
