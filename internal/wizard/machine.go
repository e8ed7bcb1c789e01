// Package wizard реализует конечный автомат мастера бронирования:
// линейный, обратимый конвейер шагов с памятью значений на каждом шаге.
package wizard

import (
	"time"

	"github.com/m04kA/WM-BookingService/internal/domain"
	"github.com/m04kA/WM-BookingService/pkg/types"
)

// Machine конечный автомат черновика бронирования
//
// Переход вперёд охраняется валидатором текущего шага; переход назад
// разрешён всегда и не стирает введённые значения. Для котировок шаг
// даты/времени пропускается в обоих направлениях.
type Machine struct {
	state State
}

// State сериализуемое состояние мастера (хранится между HTTP запросами)
type State struct {
	Step  Step                `json:"step"`
	Draft domain.BookingDraft `json:"draft"`

	// Снимок доступных слотов, полученный при входе на шаг даты/времени.
	// Не перепроверяется на каждом действии - только при финальной отправке.
	AvailabilitySnapshot []types.TimeString `json:"availabilitySnapshot,omitempty"`
}

// New создает мастер для нового черновика. Предмет бронирования и маршрут
// (requestType/requestSource) задаются при создании и далее неизменяемы:
// сеттера для них у машины нет.
func New(subjectID int64, subjectKind domain.SubjectKind, requestType domain.RequestType, requestSource domain.RequestSource) (*Machine, error) {
	if subjectID <= 0 {
		return nil, ErrInvalidDraft
	}
	if subjectKind != domain.SubjectKindTire && subjectKind != domain.SubjectKindService {
		return nil, ErrInvalidDraft
	}
	if requestType != domain.RequestTypeBooking && requestType != domain.RequestTypeQuotation {
		return nil, ErrInvalidDraft
	}
	if requestSource != domain.RequestSourceTire && requestSource != domain.RequestSourceService {
		return nil, ErrInvalidDraft
	}

	return &Machine{
		state: State{
			Step: StepSubjectAndVehicle,
			Draft: domain.BookingDraft{
				SubjectID:     subjectID,
				SubjectKind:   subjectKind,
				Quantity:      domain.DefaultQuantity,
				RequestType:   requestType,
				RequestSource: requestSource,
			},
		},
	}, nil
}

// Restore восстанавливает мастер из сохранённого состояния
func Restore(state State) (*Machine, error) {
	if indexOf(state.Step) < 0 {
		return nil, ErrUnknownStep
	}
	return &Machine{state: state}, nil
}

// State возвращает сериализуемое состояние мастера
func (m *Machine) State() State {
	return m.state
}

// Step возвращает текущий шаг
func (m *Machine) Step() Step {
	return m.state.Step
}

// Draft возвращает копию накопленного черновика
func (m *Machine) Draft() domain.BookingDraft {
	return m.state.Draft
}

// Сеттеры: каждый шаг - единственный мутатор своих полей

// SetVehicle заполняет поля первого шага
func (m *Machine) SetVehicle(quantity int, vehicle domain.Vehicle) {
	m.state.Draft.Quantity = quantity
	m.state.Draft.Vehicle = vehicle
}

// SetBranch заполняет филиал и сразу денормализует его название,
// чтобы черновик нёс отображаемое имя ещё до запроса слотов
func (m *Machine) SetBranch(branchID int64, branchName string) {
	m.state.Draft.BranchID = branchID
	m.state.Draft.BranchName = branchName
}

// SetAvailabilitySnapshot сохраняет список доступных слотов,
// полученный при входе на шаг даты/времени
func (m *Machine) SetAvailabilitySnapshot(available []types.TimeString) {
	m.state.AvailabilitySnapshot = available
}

// SetSchedule выбирает дату и слот. Слот обязан входить в снимок доступных
// слотов по состоянию на последний запрос; до отправки на сервере он не
// перепроверяется
func (m *Machine) SetSchedule(date time.Time, slot types.TimeString) error {
	for _, available := range m.state.AvailabilitySnapshot {
		if available == slot {
			m.state.Draft.ScheduledDate = &date
			m.state.Draft.ScheduledTime = &slot
			return nil
		}
	}
	return ErrSlotNotInSnapshot
}

// SetCustomer заполняет контактные данные терминального шага
func (m *Machine) SetCustomer(customer domain.Customer) {
	m.state.Draft.Customer = customer
}

// Advance валидирует текущий шаг и переходит к следующему.
// При ошибках валидации возвращает их по полям вместе с ErrValidationFailed
// и остаётся на месте.
func (m *Machine) Advance() (FieldErrors, error) {
	if m.state.Step.IsTerminal() {
		return nil, ErrAtTerminalStep
	}

	fieldErrs, err := ValidateStep(m.state.Step, &m.state.Draft)
	if err != nil {
		return nil, err
	}
	if fieldErrs.HasErrors() {
		return fieldErrs, ErrValidationFailed
	}

	m.state.Step = m.nextStep()
	return nil, nil
}

// Back возвращается к непосредственному предшественнику.
// Значения пройденных шагов сохраняются
func (m *Machine) Back() error {
	idx := indexOf(m.state.Step)
	if idx == 0 {
		return ErrAtFirstStep
	}

	prev := stepOrder[idx-1]
	if prev == StepDateTime && m.state.Draft.IsQuotation() {
		prev = stepOrder[idx-2]
	}

	m.state.Step = prev
	return nil
}

// nextStep возвращает следующий шаг с учётом пропуска даты для котировок
func (m *Machine) nextStep() Step {
	idx := indexOf(m.state.Step)
	next := stepOrder[idx+1]
	if next == StepDateTime && m.state.Draft.IsQuotation() {
		next = stepOrder[idx+2]
	}
	return next
}

// CanSubmit возвращает true, если черновик готов к отправке
// (текущий шаг терминальный и полный черновик проходит композицию валидаторов)
func (m *Machine) CanSubmit() bool {
	if !m.state.Step.IsTerminal() {
		return false
	}
	return !ValidateForSubmission(&m.state.Draft).HasErrors()
}
