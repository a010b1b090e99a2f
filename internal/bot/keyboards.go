package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// replyKeyboard builds a one-column reply keyboard from button labels.
// An empty label list removes the previous keyboard.
func replyKeyboard(buttons []string) interface{} {
	if len(buttons) == 0 {
		return tgbotapi.NewRemoveKeyboard(false)
	}

	rows := make([][]tgbotapi.KeyboardButton, 0, len(buttons))
	for _, label := range buttons {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(label)))
	}

	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = true
	return keyboard
}
