package mailer

import "errors"

var (
	// ErrClientInit возвращается при ошибке инициализации SMTP клиента
	ErrClientInit = errors.New("mailer client: failed to initialize smtp client")

	// ErrSendFailed возвращается, когда не удалось отправить ни одно письмо
	// Ошибка логируется и никогда не прерывает путь сохранения бронирования
	ErrSendFailed = errors.New("mailer client: failed to send notification")
)
