package wizard

import (
	"regexp"
	"strings"

	"github.com/m04kA/WM-BookingService/internal/domain"
)

// FieldErrors карта ошибок по полям: каждое проблемное поле подсвечивается
// отдельно, а не одной общей ошибкой
type FieldErrors map[string]string

// HasErrors возвращает true, если есть хотя бы одна ошибка
func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	// Свободный формат: цифры, пробелы, +, скобки, дефисы
	phonePattern = regexp.MustCompile(`^[0-9+()\- ]+$`)
)

// stepValidator чистая функция валидации локальных полей шага
type stepValidator func(d *domain.BookingDraft) FieldErrors

// stepValidators таблица валидаторов: мастер композирует их,
// не зная деталей отдельных шагов
var stepValidators = map[Step]stepValidator{
	StepSubjectAndVehicle: validateSubjectAndVehicle,
	StepBranchSelection:   validateBranchSelection,
	StepDateTime:          validateDateTime,
	StepCustomerInfo:      validateCustomerInfo,
}

func validateSubjectAndVehicle(d *domain.BookingDraft) FieldErrors {
	errs := FieldErrors{}

	if d.SubjectID <= 0 {
		errs["subjectId"] = "subject is required"
	}
	if d.SubjectKind != domain.SubjectKindTire && d.SubjectKind != domain.SubjectKindService {
		errs["subjectKind"] = "subject kind must be tire or service"
	}

	// Количество имеет смысл только для шин; для услуг всегда 1
	if d.SubjectKind == domain.SubjectKindTire {
		if d.Quantity < domain.MinQuantity || d.Quantity > domain.MaxQuantity {
			errs["quantity"] = "quantity must be between 1 and 12"
		}
	} else if d.Quantity != 1 {
		errs["quantity"] = "quantity must be 1 for services"
	}

	if strings.TrimSpace(d.Vehicle.Year) == "" {
		errs["vehicle.year"] = "vehicle year is required"
	}
	if strings.TrimSpace(d.Vehicle.Make) == "" {
		errs["vehicle.make"] = "vehicle make is required"
	}
	if strings.TrimSpace(d.Vehicle.Model) == "" {
		errs["vehicle.model"] = "vehicle model is required"
	}

	return errs
}

func validateBranchSelection(d *domain.BookingDraft) FieldErrors {
	errs := FieldErrors{}

	if d.BranchID <= 0 {
		errs["branchId"] = "branch is required"
	}
	if strings.TrimSpace(d.BranchName) == "" {
		errs["branchName"] = "branch name is required"
	}

	return errs
}

func validateDateTime(d *domain.BookingDraft) FieldErrors {
	errs := FieldErrors{}

	// Котировки не несут даты и времени
	if d.IsQuotation() {
		if d.ScheduledDate != nil {
			errs["scheduledDate"] = "quotations must not carry a date"
		}
		if d.ScheduledTime != nil {
			errs["scheduledTime"] = "quotations must not carry a time"
		}
		return errs
	}

	if d.ScheduledDate == nil {
		errs["scheduledDate"] = "date is required"
	}
	if d.ScheduledTime == nil {
		errs["scheduledTime"] = "time is required"
	} else if err := d.ScheduledTime.Validate(); err != nil {
		errs["scheduledTime"] = "time must be in HH:MM format"
	}

	return errs
}

func validateCustomerInfo(d *domain.BookingDraft) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(d.Customer.Name) == "" {
		errs["customer.name"] = "name is required"
	}

	if strings.TrimSpace(d.Customer.Email) == "" {
		errs["customer.email"] = "email is required"
	} else if !emailPattern.MatchString(d.Customer.Email) {
		errs["customer.email"] = "email is invalid"
	}

	if strings.TrimSpace(d.Customer.Phone) == "" {
		errs["customer.phone"] = "phone is required"
	} else if !phonePattern.MatchString(d.Customer.Phone) {
		errs["customer.phone"] = "phone is invalid"
	}

	return errs
}

// ValidateStep валидирует локальные поля одного шага
func ValidateStep(step Step, d *domain.BookingDraft) (FieldErrors, error) {
	validator, ok := stepValidators[step]
	if !ok {
		return nil, ErrUnknownStep
	}
	return validator(d), nil
}

// ValidateForSubmission композирует валидаторы всех шагов, обязательных для
// комбинации (requestType, requestSource) черновика. Черновик годен к отправке
// только если каждое требуемое поле проходит свой локальный валидатор.
func ValidateForSubmission(d *domain.BookingDraft) FieldErrors {
	errs := FieldErrors{}

	for _, step := range stepOrder {
		if step == StepDateTime && d.IsQuotation() {
			// Для котировок шаг даты пропускается, но валидатор всё равно
			// следит, что дата и время остались пустыми
			if d.ScheduledDate != nil || d.ScheduledTime != nil {
				for field, msg := range validateDateTime(d) {
					errs[field] = msg
				}
			}
			continue
		}
		for field, msg := range stepValidators[step](d) {
			errs[field] = msg
		}
	}

	if d.RequestType != domain.RequestTypeBooking && d.RequestType != domain.RequestTypeQuotation {
		errs["requestType"] = "request type must be booking or quotation"
	}
	if d.RequestSource != domain.RequestSourceTire && d.RequestSource != domain.RequestSourceService {
		errs["requestSource"] = "request source must be tire or service"
	}

	return errs
}
