package wizard

import "errors"

var (
	// ErrUnknownStep возвращается при неизвестном имени шага
	ErrUnknownStep = errors.New("wizard: unknown step")

	// ErrValidationFailed возвращается, когда шаг не прошёл валидацию
	// Детали находятся в FieldErrors
	ErrValidationFailed = errors.New("wizard: step validation failed")

	// ErrAtFirstStep возвращается при попытке шагнуть назад с первого шага
	ErrAtFirstStep = errors.New("wizard: already at first step")

	// ErrAtTerminalStep возвращается при попытке шагнуть вперёд с последнего шага
	// С терминального шага можно только отправить черновик
	ErrAtTerminalStep = errors.New("wizard: already at terminal step")

	// ErrSlotNotInSnapshot возвращается, когда выбранный слот отсутствует
	// в последнем полученном списке доступных слотов
	ErrSlotNotInSnapshot = errors.New("wizard: chosen slot is not in the availability snapshot")

	// ErrInvalidDraft возвращается при некорректных стартовых данных черновика
	ErrInvalidDraft = errors.New("wizard: invalid draft")
)
