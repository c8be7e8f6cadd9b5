// Package middleware contiene los interceptores transversales del
// dispatcher: logging de entrada, recuperación de pánicos y rate limiting.
package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// LogMessage registra un mensaje entrante. El texto se corta a 50
// caracteres: montos y descripciones sí, parrafadas no.
func LogMessage(message *tgbotapi.Message) {
	if message == nil || message.From == nil {
		return
	}

	text := message.Text
	if len(text) > 50 {
		text = text[:50] + "..."
	}

	log.WithFields(log.Fields{
		"user_id":  message.From.ID,
		"chat_id":  message.Chat.ID,
		"username": message.From.UserName,
		"text":     text,
	}).Debug("Mensaje entrante")
}
