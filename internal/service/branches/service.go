package branches

import (
	"context"
	"errors"
	"fmt"
	"sort"

	branchRepo "github.com/m04kA/WM-BookingService/internal/infra/storage/branch"
	"github.com/m04kA/WM-BookingService/internal/service/branches/models"
	"github.com/m04kA/WM-BookingService/pkg/geo"
)

// Service сервис каталога филиалов
type Service struct {
	branchRepo  BranchRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса филиалов
func NewService(branchRepo BranchRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		branchRepo:  branchRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Create создаёт филиал
func (s *Service) Create(ctx context.Context, req *models.CreateBranchRequest) (*models.BranchResponse, error) {
	s.logger.Info("Create: creating branch name=%s", req.Name)

	if err := req.Validate(); err != nil {
		s.logger.Warn("Create: invalid branch request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	branch, err := s.branchRepo.Create(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: branch id=%d created", branch.ID)
	return models.FromDomainBranch(branch), nil
}

// GetByID получает филиал по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BranchResponse, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			s.logger.Warn("GetByID: branch id=%d not found", id)
			return nil, ErrBranchNotFound
		}
		s.logger.Error("GetByID: repository error for branch id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBranch(branch), nil
}

// List возвращает каталог филиалов. С координатами клиента список
// аннотируется расстоянием и сортируется от ближнего к дальнему;
// филиалы без координат идут в конце в алфавитном порядке
func (s *Service) List(ctx context.Context, req *models.ListBranchesRequest) (*models.BranchListResponse, error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.BranchListResponse{
		Branches: make([]models.BranchResponse, 0, len(branches)),
	}
	for _, b := range branches {
		resp.Branches = append(resp.Branches, *models.FromDomainBranch(b))
	}

	if !req.HasOrigin() {
		return resp, nil
	}

	unit := geo.UnitKilometers
	if req.Unit == string(geo.UnitMiles) {
		unit = geo.UnitMiles
	}

	for i := range resp.Branches {
		b := &resp.Branches[i]
		if b.Lat == nil || b.Lng == nil {
			continue
		}
		d := geo.Distance(*req.Lat, *req.Lng, *b.Lat, *b.Lng, unit)
		b.Distance = &d
	}

	// Стабильная сортировка сохраняет алфавитный порядок репозитория
	// внутри групп с равным расстоянием
	sort.SliceStable(resp.Branches, func(i, j int) bool {
		di, dj := resp.Branches[i].Distance, resp.Branches[j].Distance
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})

	return resp, nil
}

// Update частично обновляет филиал
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBranchRequest) (*models.BranchResponse, error) {
	s.logger.Info("Update: updating branch id=%d", id)

	if (req.Lat == nil) != (req.Lng == nil) {
		s.logger.Warn("Update: partial coordinates for branch id=%d", id)
		return nil, fmt.Errorf("%w: lat and lng must be set together", ErrInvalidInput)
	}

	if err := s.branchRepo.Update(ctx, id, req.ToDomainPatch()); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			s.logger.Warn("Update: branch id=%d not found", id)
			return nil, ErrBranchNotFound
		}
		s.logger.Error("Update: repository error for branch id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reread branch id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: branch id=%d updated", id)
	return models.FromDomainBranch(branch), nil
}

// Delete удаляет филиал. Филиал, на который ссылаются записи
// (включая отменённые), удалить нельзя: история должна сохраниться
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting branch id=%d", id)

	if _, err := s.branchRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			s.logger.Warn("Delete: branch id=%d not found", id)
			return ErrBranchNotFound
		}
		s.logger.Error("Delete: repository error for branch id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	count, err := s.bookingRepo.CountByBranchID(ctx, id)
	if err != nil {
		s.logger.Error("Delete: failed to count bookings for branch id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	if count > 0 {
		s.logger.Warn("Delete: branch id=%d has %d bookings, refusing to delete", id, count)
		return fmt.Errorf("%w: %d bookings reference branch %d", ErrBranchHasBookings, count, id)
	}

	if err := s.branchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			return ErrBranchNotFound
		}
		s.logger.Error("Delete: repository error for branch id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: branch id=%d deleted", id)
	return nil
}
