package wizard

// Step именованное состояние мастера бронирования
type Step string

const (
	// StepSubjectAndVehicle собирает предмет бронирования, количество и автомобиль
	StepSubjectAndVehicle Step = "subject_and_vehicle"

	// StepBranchSelection собирает филиал (и денормализует его название)
	StepBranchSelection Step = "branch_selection"

	// StepDateTime собирает дату и слот; для котировок пропускается целиком
	StepDateTime Step = "date_time"

	// StepCustomerInfo терминальный шаг: контактные данные клиента
	StepCustomerInfo Step = "customer_info"
)

// stepOrder линейный порядок шагов мастера
var stepOrder = []Step{
	StepSubjectAndVehicle,
	StepBranchSelection,
	StepDateTime,
	StepCustomerInfo,
}

// indexOf возвращает позицию шага в порядке мастера
func indexOf(step Step) int {
	for i, s := range stepOrder {
		if s == step {
			return i
		}
	}
	return -1
}

// IsTerminal возвращает true для последнего шага
// Выходное действие терминального шага - отправка, а не переход
func (s Step) IsTerminal() bool {
	return s == StepCustomerInfo
}

func (s Step) String() string {
	return string(s)
}
