package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/WM-BookingService/internal/domain"
	"github.com/m04kA/WM-BookingService/internal/infra/draftstore"
	branchRepo "github.com/m04kA/WM-BookingService/internal/infra/storage/branch"
	"github.com/m04kA/WM-BookingService/internal/service/drafts/models"
	"github.com/m04kA/WM-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/WM-BookingService/internal/usecase/submit_booking"
	"github.com/m04kA/WM-BookingService/internal/wizard"
	"github.com/m04kA/WM-BookingService/pkg/types"
)

// Service пошаговый мастер оформления записи. Состояние живёт в хранилище
// с TTL: заброшенные черновики истекают без следов в БД
type Service struct {
	store      DraftStore
	branchRepo BranchRepository
	slotsUC    SlotsUsecase
	submitUC   SubmitUsecase
	logger     Logger
}

// NewService создает новый экземпляр сервиса черновиков
func NewService(store DraftStore, branchRepo BranchRepository, slotsUC SlotsUsecase, submitUC SubmitUsecase, logger Logger) *Service {
	return &Service{
		store:      store,
		branchRepo: branchRepo,
		slotsUC:    slotsUC,
		submitUC:   submitUC,
		logger:     logger,
	}
}

// Create создаёт черновик на первом шаге мастера
func (s *Service) Create(ctx context.Context, req *models.CreateDraftRequest) (*models.DraftResponse, error) {
	machine, err := wizard.New(
		req.SubjectID,
		domain.SubjectKind(req.SubjectKind),
		domain.RequestType(req.RequestType),
		domain.RequestSource(req.RequestSource),
	)
	if err != nil {
		s.logger.Warn("Create: invalid draft request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id, err := s.store.Create(ctx, machine.State())
	if err != nil {
		s.logger.Error("Create: store error: %v", err)
		return nil, fmt.Errorf("%w: Create - store error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: draft id=%s created, step=%s", id, machine.Step())
	return models.FromState(id, machine.State()), nil
}

// Get возвращает текущее состояние черновика
func (s *Service) Get(ctx context.Context, id string) (*models.DraftResponse, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromState(id, state), nil
}

// Advance применяет данные текущего шага и продвигает мастер вперёд.
// При ошибках валидации возвращает их по полям, не меняя состояние
func (s *Service) Advance(ctx context.Context, id string, req *models.AdvanceDraftRequest) (*models.DraftResponse, wizard.FieldErrors, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	machine, err := wizard.Restore(state)
	if err != nil {
		s.logger.Error("Advance: corrupt draft id=%s: %v", id, err)
		return nil, nil, fmt.Errorf("%w: corrupt draft state: %v", ErrInternal, err)
	}

	if err := s.applyStepPayload(ctx, machine, req); err != nil {
		return nil, nil, err
	}

	// Терминальный шаг перехода не имеет: данные шага сохраняются,
	// выходным действием служит отправка
	if machine.Step().IsTerminal() {
		draft := machine.Draft()
		fieldErrs, err := wizard.ValidateStep(machine.Step(), &draft)
		if err != nil {
			s.logger.Error("Advance: failed for draft id=%s: %v", id, err)
			return nil, nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if fieldErrs.HasErrors() {
			s.logger.Warn("Advance: validation failed for draft id=%s, step=%s: %v", id, machine.Step(), fieldErrs)
			return nil, fieldErrs, nil
		}
	} else {
		fieldErrs, err := machine.Advance()
		if err != nil {
			if errors.Is(err, wizard.ErrValidationFailed) {
				s.logger.Warn("Advance: validation failed for draft id=%s, step=%s: %v", id, machine.Step(), fieldErrs)
				return nil, fieldErrs, nil
			}
			s.logger.Error("Advance: failed for draft id=%s: %v", id, err)
			return nil, nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	if err := s.store.Save(ctx, id, machine.State()); err != nil {
		s.logger.Error("Advance: store error for draft id=%s: %v", id, err)
		return nil, nil, fmt.Errorf("%w: Advance - store error: %v", ErrInternal, err)
	}

	s.logger.Info("Advance: draft id=%s advanced to step=%s", id, machine.Step())
	return models.FromState(id, machine.State()), nil, nil
}

// Back возвращает мастер на предыдущий шаг. Введённые значения сохраняются
func (s *Service) Back(ctx context.Context, id string) (*models.DraftResponse, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	machine, err := wizard.Restore(state)
	if err != nil {
		s.logger.Error("Back: corrupt draft id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: corrupt draft state: %v", ErrInternal, err)
	}

	if err := machine.Back(); err != nil {
		if errors.Is(err, wizard.ErrAtFirstStep) {
			s.logger.Warn("Back: draft id=%s is at the first step", id)
			return nil, fmt.Errorf("%w: draft is at the first step", ErrInvalidInput)
		}
		s.logger.Error("Back: failed for draft id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := s.store.Save(ctx, id, machine.State()); err != nil {
		s.logger.Error("Back: store error for draft id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Back - store error: %v", ErrInternal, err)
	}

	s.logger.Info("Back: draft id=%s moved back to step=%s", id, machine.Step())
	return models.FromState(id, machine.State()), nil
}

// Submit оформляет запись из черновика и удаляет черновик
func (s *Service) Submit(ctx context.Context, id string) (*submit_booking.Response, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	machine, err := wizard.Restore(state)
	if err != nil {
		s.logger.Error("Submit: corrupt draft id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: corrupt draft state: %v", ErrInternal, err)
	}

	if !machine.CanSubmit() {
		s.logger.Warn("Submit: draft id=%s is not ready, step=%s", id, machine.Step())
		return nil, fmt.Errorf("%w: current step is %s", ErrNotReady, machine.Step())
	}

	resp, err := s.submitUC.Execute(ctx, submit_booking.Request{Draft: machine.Draft()})
	if err != nil {
		return nil, err
	}

	// Черновик своё отслужил; ошибка удаления не влияет на результат
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn("Submit: failed to delete draft id=%s: %v", id, err)
	}

	s.logger.Info("Submit: draft id=%s submitted, reference=%s", id, resp.ReferenceNumber)
	return resp, nil
}

// applyStepPayload применяет секцию запроса, соответствующую текущему шагу
func (s *Service) applyStepPayload(ctx context.Context, machine *wizard.Machine, req *models.AdvanceDraftRequest) error {
	switch machine.Step() {
	case wizard.StepSubjectAndVehicle:
		quantity := machine.Draft().Quantity
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		vehicle := machine.Draft().Vehicle
		if req.Vehicle != nil {
			vehicle = domain.Vehicle{
				Year:  req.Vehicle.Year,
				Make:  req.Vehicle.Make,
				Model: req.Vehicle.Model,
			}
		}
		machine.SetVehicle(quantity, vehicle)

	case wizard.StepBranchSelection:
		if req.BranchID == nil {
			return fmt.Errorf("%w: branchId is required on this step", ErrInvalidInput)
		}
		branch, err := s.branchRepo.GetByID(ctx, *req.BranchID)
		if err != nil {
			if errors.Is(err, branchRepo.ErrBranchNotFound) {
				s.logger.Warn("Advance: branch=%d not found", *req.BranchID)
				return ErrBranchNotFound
			}
			s.logger.Error("Advance: failed to get branch=%d: %v", *req.BranchID, err)
			return fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
		}
		machine.SetBranch(branch.ID, branch.Name)

	case wizard.StepDateTime:
		if req.ScheduledDate == nil || req.ScheduledTime == nil {
			return fmt.Errorf("%w: scheduledDate and scheduledTime are required on this step", ErrInvalidInput)
		}
		date, err := time.Parse(domain.DateFormat, *req.ScheduledDate)
		if err != nil {
			return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
		}
		slot, err := types.NewTimeStringFromString(*req.ScheduledTime)
		if err != nil {
			return fmt.Errorf("%w: time must be in HH:MM format", ErrInvalidInput)
		}

		// Снимок доступности снимается на сервере для выбранной даты,
		// клиентские данные на проверку не влияют
		slots, err := s.slotsUC.Execute(ctx, get_available_slots.Request{
			BranchID: machine.Draft().BranchID,
			Date:     *req.ScheduledDate,
		})
		if err != nil {
			if errors.Is(err, get_available_slots.ErrBranchNotFound) {
				return ErrBranchNotFound
			}
			if errors.Is(err, get_available_slots.ErrInvalidInput) {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			s.logger.Error("Advance: failed to get slots: %v", err)
			return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}
		machine.SetAvailabilitySnapshot(slots.AvailableSlots)

		if err := machine.SetSchedule(date, slot); err != nil {
			if errors.Is(err, wizard.ErrSlotNotInSnapshot) {
				return fmt.Errorf("%w: slot %s is not available", ErrInvalidInput, slot.String())
			}
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

	case wizard.StepCustomerInfo:
		if req.Customer == nil {
			return fmt.Errorf("%w: customer is required on this step", ErrInvalidInput)
		}
		machine.SetCustomer(domain.Customer{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		})
	}

	return nil
}

// load достаёт состояние черновика из хранилища
func (s *Service) load(ctx context.Context, id string) (wizard.State, error) {
	state, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, draftstore.ErrDraftNotFound) {
			s.logger.Warn("load: draft id=%s not found or expired", id)
			return wizard.State{}, ErrDraftNotFound
		}
		s.logger.Error("load: store error for draft id=%s: %v", id, err)
		return wizard.State{}, fmt.Errorf("%w: store error: %v", ErrInternal, err)
	}
	return state, nil
}
