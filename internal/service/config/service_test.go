package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/internal/infra/storage/memory"
	"github.com/m04kA/FloatBookingService/internal/service/config/models"
	"github.com/m04kA/FloatBookingService/pkg/logger"
	"github.com/m04kA/FloatBookingService/pkg/ptr"
)

func TestService_GetDefaults(t *testing.T) {
	svc := NewService(memory.NewStore().SchedulingConfigs(), logger.Nop())

	resp, err := svc.Get(context.Background(), "loc-1")
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, domain.DefaultSlotGranularityMinutes, resp.SlotGranularityMinutes)
	assert.Equal(t, domain.DefaultAdvanceBookingDays, resp.AdvanceBookingDays)
	assert.Nil(t, resp.UpdatedAt)
}

func TestService_UpdatePartial(t *testing.T) {
	svc := NewService(memory.NewStore().SchedulingConfigs(), logger.Nop())
	ctx := context.Background()

	resp, err := svc.Update(ctx, "loc-1", &models.UpdateConfigRequest{SlotGranularityMinutes: ptr.Ptr(15)})
	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.Equal(t, 15, resp.SlotGranularityMinutes)
	assert.Equal(t, 0, resp.AdvanceBookingDays)

	resp, err = svc.Update(ctx, "loc-1", &models.UpdateConfigRequest{AdvanceBookingDays: ptr.Ptr(30)})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.SlotGranularityMinutes)
	assert.Equal(t, 30, resp.AdvanceBookingDays)

	resp, err = svc.Get(ctx, "loc-1")
	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.Equal(t, 30, resp.AdvanceBookingDays)
}

func TestService_UpdateValidation(t *testing.T) {
	svc := NewService(memory.NewStore().SchedulingConfigs(), logger.Nop())

	requests := []*models.UpdateConfigRequest{
		{},
		{SlotGranularityMinutes: ptr.Ptr(0)},
		{SlotGranularityMinutes: ptr.Ptr(domain.MaxSlotGranularityMinutes + 1)},
		{AdvanceBookingDays: ptr.Ptr(-1)},
	}
	for _, req := range requests {
		_, err := svc.Update(context.Background(), "loc-1", req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}

	_, err := svc.Get(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
