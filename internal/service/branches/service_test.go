package branches_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WM-BookingService/internal/domain"
	branchStorage "github.com/m04kA/WM-BookingService/internal/infra/storage/branch"
	"github.com/m04kA/WM-BookingService/internal/service/branches"
	"github.com/m04kA/WM-BookingService/internal/service/branches/models"
	"github.com/m04kA/WM-BookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBranchRepo struct {
	branches map[int64]*domain.Branch
	list     []*domain.Branch
	deleted  []int64
}

func (f *fakeBranchRepo) Create(_ context.Context, branch *domain.Branch) (*domain.Branch, error) {
	created := *branch
	created.ID = int64(len(f.branches) + 1)
	return &created, nil
}

func (f *fakeBranchRepo) GetByID(_ context.Context, id int64) (*domain.Branch, error) {
	b, ok := f.branches[id]
	if !ok {
		return nil, branchStorage.ErrBranchNotFound
	}
	return b, nil
}

func (f *fakeBranchRepo) List(_ context.Context) ([]*domain.Branch, error) {
	return f.list, nil
}

func (f *fakeBranchRepo) Update(_ context.Context, id int64, _ domain.BranchPatch) error {
	if _, ok := f.branches[id]; !ok {
		return branchStorage.ErrBranchNotFound
	}
	return nil
}

func (f *fakeBranchRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.branches[id]; !ok {
		return branchStorage.ErrBranchNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeBookingCounter struct {
	counts map[int64]int64
}

func (f *fakeBookingCounter) CountByBranchID(_ context.Context, branchID int64) (int64, error) {
	return f.counts[branchID], nil
}

func newTestService(branchRepo *fakeBranchRepo, counter *fakeBookingCounter) *branches.Service {
	if counter == nil {
		counter = &fakeBookingCounter{}
	}
	return branches.NewService(branchRepo, counter, nopLogger{})
}

func branch(id int64, name string, lat, lng *float64) *domain.Branch {
	return &domain.Branch{
		ID:      id,
		Name:    name,
		Address: name + " address",
		Lat:     lat,
		Lng:     lng,
	}
}

func TestList_WithoutOrigin_KeepsRepoOrder(t *testing.T) {
	repo := &fakeBranchRepo{list: []*domain.Branch{
		branch(1, "Downtown", ptr.Ptr(40.0), ptr.Ptr(-74.0)),
		branch(2, "Uptown", ptr.Ptr(41.0), ptr.Ptr(-74.0)),
	}}
	svc := newTestService(repo, nil)

	resp, err := svc.List(context.Background(), &models.ListBranchesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Branches, 2)
	assert.Equal(t, "Downtown", resp.Branches[0].Name)
	assert.Nil(t, resp.Branches[0].Distance)
	assert.Nil(t, resp.Branches[1].Distance)
}

func TestList_WithOrigin_SortsNearestFirst(t *testing.T) {
	repo := &fakeBranchRepo{list: []*domain.Branch{
		branch(1, "Far", ptr.Ptr(45.0), ptr.Ptr(-74.0)),
		branch(2, "Near", ptr.Ptr(40.1), ptr.Ptr(-74.0)),
		branch(3, "Mid", ptr.Ptr(42.0), ptr.Ptr(-74.0)),
	}}
	svc := newTestService(repo, nil)

	resp, err := svc.List(context.Background(), &models.ListBranchesRequest{
		Lat: ptr.Ptr(40.0),
		Lng: ptr.Ptr(-74.0),
	})
	require.NoError(t, err)
	require.Len(t, resp.Branches, 3)
	assert.Equal(t, "Near", resp.Branches[0].Name)
	assert.Equal(t, "Mid", resp.Branches[1].Name)
	assert.Equal(t, "Far", resp.Branches[2].Name)
	require.NotNil(t, resp.Branches[0].Distance)
	require.NotNil(t, resp.Branches[2].Distance)
	assert.Less(t, *resp.Branches[0].Distance, *resp.Branches[2].Distance)
}

func TestList_BranchesWithoutCoordinatesGoLast(t *testing.T) {
	repo := &fakeBranchRepo{list: []*domain.Branch{
		branch(1, "Annex", nil, nil),
		branch(2, "Central", ptr.Ptr(40.1), ptr.Ptr(-74.0)),
	}}
	svc := newTestService(repo, nil)

	resp, err := svc.List(context.Background(), &models.ListBranchesRequest{
		Lat: ptr.Ptr(40.0),
		Lng: ptr.Ptr(-74.0),
	})
	require.NoError(t, err)
	require.Len(t, resp.Branches, 2)
	assert.Equal(t, "Central", resp.Branches[0].Name)
	assert.Equal(t, "Annex", resp.Branches[1].Name)
	assert.Nil(t, resp.Branches[1].Distance)
}

func TestList_MilesUnit(t *testing.T) {
	repo := &fakeBranchRepo{list: []*domain.Branch{
		branch(1, "Central", ptr.Ptr(41.0), ptr.Ptr(-74.0)),
	}}
	svc := newTestService(repo, nil)

	origin := &models.ListBranchesRequest{Lat: ptr.Ptr(40.0), Lng: ptr.Ptr(-74.0)}

	km, err := svc.List(context.Background(), origin)
	require.NoError(t, err)

	origin.Unit = "mi"
	mi, err := svc.List(context.Background(), origin)
	require.NoError(t, err)

	require.NotNil(t, km.Branches[0].Distance)
	require.NotNil(t, mi.Branches[0].Distance)
	assert.Less(t, *mi.Branches[0].Distance, *km.Branches[0].Distance)
}

func TestCreate_RequiresNameAndAddress(t *testing.T) {
	svc := newTestService(&fakeBranchRepo{branches: map[int64]*domain.Branch{}}, nil)

	_, err := svc.Create(context.Background(), &models.CreateBranchRequest{Address: "somewhere"})
	assert.ErrorIs(t, err, branches.ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateBranchRequest{Name: "Central"})
	assert.ErrorIs(t, err, branches.ErrInvalidInput)
}

func TestCreate_RejectsPartialCoordinates(t *testing.T) {
	svc := newTestService(&fakeBranchRepo{branches: map[int64]*domain.Branch{}}, nil)

	_, err := svc.Create(context.Background(), &models.CreateBranchRequest{
		Name:    "Central",
		Address: "somewhere",
		Lat:     ptr.Ptr(40.0),
	})
	assert.ErrorIs(t, err, branches.ErrInvalidInput)
}

func TestDelete_BranchNotFound(t *testing.T) {
	svc := newTestService(&fakeBranchRepo{branches: map[int64]*domain.Branch{}}, nil)

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, branches.ErrBranchNotFound)
}

func TestDelete_RefusesWhenBookingsExist(t *testing.T) {
	repo := &fakeBranchRepo{branches: map[int64]*domain.Branch{
		1: branch(1, "Central", nil, nil),
	}}
	counter := &fakeBookingCounter{counts: map[int64]int64{1: 3}}
	svc := newTestService(repo, counter)

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, branches.ErrBranchHasBookings)
	assert.Empty(t, repo.deleted)
}

func TestDelete_Succeeds(t *testing.T) {
	repo := &fakeBranchRepo{branches: map[int64]*domain.Branch{
		1: branch(1, "Central", nil, nil),
	}}
	svc := newTestService(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []int64{1}, repo.deleted)
}
