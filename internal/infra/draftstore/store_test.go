package draftstore_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WM-BookingService/internal/domain"
	"github.com/m04kA/WM-BookingService/internal/infra/draftstore"
	"github.com/m04kA/WM-BookingService/internal/wizard"
)

func testState() wizard.State {
	return wizard.State{
		Step: wizard.StepBranchSelection,
		Draft: domain.BookingDraft{
			SubjectID:     10,
			SubjectKind:   domain.SubjectKindTire,
			Quantity:      4,
			RequestType:   domain.RequestTypeBooking,
			RequestSource: domain.RequestSourceTire,
		},
	}
}

func TestGet_ReturnsStoredState(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := draftstore.NewStore(client, 30*time.Minute)

	state := testState()
	payload, err := json.Marshal(state)
	require.NoError(t, err)

	mock.ExpectGet("wm:draft:abc").SetVal(string(payload))

	got, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, state.Step, got.Step)
	assert.Equal(t, state.Draft, got.Draft)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_MissingDraft(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := draftstore.NewStore(client, 30*time.Minute)

	mock.ExpectGet("wm:draft:missing").RedisNil()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, draftstore.ErrDraftNotFound)
}

func TestGet_CorruptPayload(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := draftstore.NewStore(client, 30*time.Minute)

	mock.ExpectGet("wm:draft:bad").SetVal("{not json")

	_, err := store.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, draftstore.ErrDecode)
}

func TestSave_WritesWithTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := draftstore.NewStore(client, 30*time.Minute)

	state := testState()
	payload, err := json.Marshal(state)
	require.NoError(t, err)

	mock.ExpectSet("wm:draft:abc", payload, 30*time.Minute).SetVal("OK")

	require.NoError(t, store.Save(context.Background(), "abc", state))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := draftstore.NewStore(client, 30*time.Minute)

	mock.ExpectDel("wm:draft:abc").SetVal(1)

	require.NoError(t, store.Delete(context.Background(), "abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveThenGet_RoundTrip(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := draftstore.NewStore(client, 30*time.Minute)

	state := testState()
	payload, err := json.Marshal(state)
	require.NoError(t, err)

	mock.ExpectSet("wm:draft:abc", payload, 30*time.Minute).SetVal("OK")
	mock.ExpectGet("wm:draft:abc").SetVal(string(payload))

	require.NoError(t, store.Save(context.Background(), "abc", state))
	got, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, state, got)
}
