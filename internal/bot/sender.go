// Package bot — sender.go implementa ui.Sender sobre la API de
// Telegram: convierte los teclados abstractos en ReplyKeyboardMarkup.
package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/Alexmontesino96/FinancialBotGrok/internal/ui"
)

// TelegramSender envía mensajes a través del Bot API.
type TelegramSender struct {
	api *tgbotapi.BotAPI
}

// NewTelegramSender crea el sender real.
func NewTelegramSender(api *tgbotapi.BotAPI) *TelegramSender {
	return &TelegramSender{api: api}
}

func (s *TelegramSender) Send(chatID int64, text string) {
	s.deliver(tgbotapi.NewMessage(chatID, text))
}

func (s *TelegramSender) SendMarkdown(chatID int64, text string, kb ui.Keyboard) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if kb != nil {
		msg.ReplyMarkup = toMarkup(kb)
	}
	s.deliver(msg)
}

func (s *TelegramSender) SendKeyboard(chatID int64, text string, kb ui.Keyboard) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = toMarkup(kb)
	s.deliver(msg)
}

func (s *TelegramSender) SendMenu(chatID int64, text string) {
	s.SendKeyboard(chatID, text, ui.MainMenu())
}

func (s *TelegramSender) SendPhoto(chatID int64, caption string, png []byte) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "invitacion.png", Bytes: png})
	photo.Caption = caption
	if _, err := s.api.Send(photo); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("No se pudo enviar la foto")
	}
}

// deliver centraliza el envío. Un error de Telegram se registra y nada
// más: no hay reintentos ni cola de salida.
func (s *TelegramSender) deliver(msg tgbotapi.MessageConfig) {
	if _, err := s.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", msg.ChatID).Error("No se pudo enviar el mensaje")
	}
}

// toMarkup convierte la grilla de etiquetas en un teclado de respuesta.
func toMarkup(kb ui.Keyboard) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, buttons)
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	markup.OneTimeKeyboard = true
	return markup
}
