package drafts

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден или истёк
	ErrDraftNotFound = errors.New("draft not found or expired")

	// ErrBranchNotFound возвращается, когда выбранный филиал не найден
	ErrBranchNotFound = errors.New("branch not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrNotReady возвращается при отправке черновика до финального шага
	ErrNotReady = errors.New("draft is not ready for submission")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
