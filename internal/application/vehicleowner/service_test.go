package vehicleowner

import (
	"context"
	"errors"
	"testing"

	"github.com/mc-parking-api/internal/domain"
	"github.com/mc-parking-api/internal/infrastructure/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const table = "vehicle_owners"

func newSvc(t *testing.T) Service {
	svc, _ := newSvcWithStore(t)
	return svc
}

func newSvcWithStore(t *testing.T) (Service, *memstore.Store) {
	t.Helper()
	store, err := memstore.New(map[string]string{table: keyOwnerID})
	require.NoError(t, err)
	return NewService(store, table), store
}

func createReq(nic string) domain.CreateVehicleOwnerRequest {
	return domain.CreateVehicleOwnerRequest{
		FullName:       "Ayesha Fernando",
		NIC:            nic,
		Phone:          "0712345678",
		Email:          "Ayesha@Example.com",
		VehicleNumbers: []string{"wp cab-1234", "WP CAB-1234", " ", "cp  ka-9999"},
	}
}

func TestCreateThenList_IncludesRecordWithGeneratedID(t *testing.T) {
	svc := newSvc(t)
	ctx := context.Background()

	vo, err := svc.Create(ctx, createReq("987654321v"))
	require.NoError(t, err)
	assert.Contains(t, vo.OwnerID, "VO_")
	assert.Equal(t, "987654321V", vo.NIC)
	assert.Equal(t, "ayesha@example.com", vo.Email)
	assert.Equal(t, []string{"WP CAB-1234", "CP KA-9999"}, vo.VehicleNumbers)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, vo.OwnerID, list[0].OwnerID)
	assert.Equal(t, vo.VehicleNumbers, list[0].VehicleNumbers)
}

func TestDeleteThenList_RemovesRecord(t *testing.T) {
	svc := newSvc(t)
	ctx := context.Background()

	vo, err := svc.Create(ctx, createReq("987654321v"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, vo.OwnerID))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_NICConflict(t *testing.T) {
	svc := newSvc(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, createReq("987654321v"))
	require.NoError(t, err)

	req := createReq("987654321V")
	req.Email = ""
	_, err = svc.Create(ctx, req)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestCreate_EmailConflict(t *testing.T) {
	svc := newSvc(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, createReq("987654321v"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, createReq("200012345678"))
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestLookups(t *testing.T) {
	svc := newSvc(t)
	ctx := context.Background()
	vo, err := svc.Create(ctx, createReq("987654321v"))
	require.NoError(t, err)

	byNIC, err := svc.GetByNIC(ctx, "987654321v")
	require.NoError(t, err)
	assert.Equal(t, vo.OwnerID, byNIC.OwnerID)

	byEmail, err := svc.GetByEmail(ctx, "AYESHA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, vo.OwnerID, byEmail.OwnerID)

	_, err = svc.GetByNIC(ctx, "")
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	_, err = svc.GetByNIC(ctx, "111111111V")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdate_VehicleNumbers(t *testing.T) {
	svc := newSvc(t)
	ctx := context.Background()
	vo, err := svc.Create(ctx, createReq("987654321v"))
	require.NoError(t, err)

	plates := []string{"sp bbc-4455"}
	got, err := svc.Update(ctx, vo.OwnerID, domain.UpdateVehicleOwnerRequest{VehicleNumbers: &plates})
	require.NoError(t, err)
	assert.Equal(t, []string{"SP BBC-4455"}, got.VehicleNumbers)

	got, err = svc.SetDutyStatus(ctx, vo.OwnerID, domain.OnDuty)
	require.NoError(t, err)
	assert.Equal(t, domain.OnDuty, got.DutyStatus)
}

func TestCreate_WithoutEmail_OmitsAttribute(t *testing.T) {
	svc, store := newSvcWithStore(t)
	ctx := context.Background()

	req := createReq("987654321v")
	req.Email = ""
	vo, err := svc.Create(ctx, req)
	require.NoError(t, err)

	item, err := store.GetItem(ctx, table, domain.Item{keyOwnerID: vo.OwnerID})
	require.NoError(t, err)
	_, present := item[fieldEmail]
	assert.False(t, present, "an empty email must not be written to the email-index key")

	// A second owner without e-mail is not a conflict.
	other := createReq("200012345678")
	other.Email = ""
	_, err = svc.Create(ctx, other)
	assert.NoError(t, err)
}

func TestUpdate_ClearingEmailRemovesAttribute(t *testing.T) {
	svc, store := newSvcWithStore(t)
	ctx := context.Background()
	vo, err := svc.Create(ctx, createReq("987654321v"))
	require.NoError(t, err)

	empty := " "
	got, err := svc.Update(ctx, vo.OwnerID, domain.UpdateVehicleOwnerRequest{Email: &empty})
	require.NoError(t, err)
	assert.Empty(t, got.Email)

	item, err := store.GetItem(ctx, table, domain.Item{keyOwnerID: vo.OwnerID})
	require.NoError(t, err)
	_, present := item[fieldEmail]
	assert.False(t, present)
}

func TestUpdate_EmailConflict(t *testing.T) {
	svc := newSvc(t)
	ctx := context.Background()
	first, err := svc.Create(ctx, createReq("987654321v"))
	require.NoError(t, err)

	req := createReq("200012345678")
	req.Email = "kasun@example.com"
	second, err := svc.Create(ctx, req)
	require.NoError(t, err)

	taken := "AYESHA@example.com"
	_, err = svc.Update(ctx, second.OwnerID, domain.UpdateVehicleOwnerRequest{Email: &taken})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	// Re-submitting one's own address is not a conflict.
	own := "ayesha@example.com"
	got, err := svc.Update(ctx, first.OwnerID, domain.UpdateVehicleOwnerRequest{Email: &own})
	require.NoError(t, err)
	assert.Equal(t, "ayesha@example.com", got.Email)
}
