package dto_test

import (
	"parkflow/internal/domains/fare"
	"parkflow/internal/domains/lot/model"
	"parkflow/internal/domains/lot/model/dto"
	"parkflow/shared/constant"
	"parkflow/shared/validator"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSettingsRequestFields(t *testing.T) {
	tests := []struct {
		name     string
		mode     dto.BillingModeSetting
		wantSet  bool
		wantMode any
	}{
		{name: "untouched", mode: ""},
		{name: "per minute", mode: "per_minute", wantSet: true, wantMode: fare.BillingModePerMinute},
		{name: "normalized", mode: " PER_HOUR_BLOCK ", wantSet: true, wantMode: fare.BillingModePerHourBlock},
		{name: "default clears", mode: dto.BillingModeDefault, wantSet: true, wantMode: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := dto.UpdateSettingsRequest{BillingMode: tt.mode}.Fields("owner-1")

			mode, ok := fields[model.FieldBillingMode]
			require.Equal(t, tt.wantSet, ok)
			assert.Equal(t, tt.wantMode, mode)
			assert.Equal(t, "owner-1", fields[constant.FieldModifiedBy])
		})
	}
}

func TestUpdateSettingsRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		mode    dto.BillingModeSetting
		wantErr bool
	}{
		{name: "per minute", mode: "per_minute"},
		{name: "default", mode: dto.BillingModeDefault},
		{name: "unknown", mode: "hourly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&dto.UpdateSettingsRequest{BillingMode: tt.mode})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
