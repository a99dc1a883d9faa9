package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"parkflow/shared"
	cacheMocks "parkflow/shared/cache/mocks"
	"parkflow/shared/constant"
	"parkflow/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "numeric true", input: "1", expected: boolPtr(true)},
		{name: "numeric false", input: "0", expected: boolPtr(false)},
		{name: "upper case", input: "TRUE", expected: boolPtr(true)},
		{name: "garbage", input: "open", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	value, err := shared.ConvertStringToInt(" 25 ")
	require.NoError(t, err)
	assert.Equal(t, 25, value)

	_, err = shared.ConvertStringToInt("twenty")
	assert.Error(t, err)

	_, err = shared.ConvertStringToInt("")
	assert.Error(t, err)
}

func TestConvertStringToFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *float64
	}{
		{name: "blank", input: "  ", expected: nil},
		{name: "latitude", input: "-6.2088", expected: floatPtr(-6.2088)},
		{name: "integer", input: "106", expected: floatPtr(106)},
		{name: "malformed", input: "6,2", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToFloat(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "no data", total: 0, limit: 10, expected: 1},
		{name: "no limit", total: 42, limit: 0, expected: 1},
		{name: "negative limit", total: 42, limit: -1, expected: 1},
		{name: "exact", total: 40, limit: 10, expected: 4},
		{name: "remainder", total: 41, limit: 10, expected: 5},
		{name: "limit above total", total: 3, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type settings struct {
	PricePerHour  *float64 `db:"price_per_hour"`
	TotalCarSlots *int     `db:"total_car_slots"`
	IsAvailable   *bool    `db:"is_available"`
	BillingMode   string   `db:"billing_mode"`
	Note          string
}

func TestTransformFields(t *testing.T) {
	tests := []struct {
		name     string
		data     settings
		expected map[string]any
	}{
		{
			name:     "nothing set",
			data:     settings{},
			expected: map[string]any{},
		},
		{
			name: "zero pointer values are kept",
			data: settings{
				TotalCarSlots: intPtr(0),
				IsAvailable:   boolPtr(false),
			},
			expected: map[string]any{
				"total_car_slots": intPtr(0),
				"is_available":    boolPtr(false),
			},
		},
		{
			name: "untagged fields are ignored",
			data: settings{
				PricePerHour: floatPtr(5000),
				BillingMode:  "per_minute",
				Note:         "ignored",
			},
			expected: map[string]any{
				"price_per_hour": floatPtr(5000),
				"billing_mode":   "per_minute",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.TransformFields(tt.data, "owner-1")

			assert.Equal(t, "owner-1", result[constant.FieldModifiedBy])
			assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])

			delete(result, constant.FieldModifiedAt)
			delete(result, constant.FieldModifiedBy)

			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("lot-1", "id", "parking_lots")

	require.Len(t, result.Filters, 1)
	assert.Equal(t, dto.Filter{
		Field:    "id",
		Value:    "lot-1",
		Operator: dto.FilterOperatorEq,
		Table:    "parking_lots",
	}, result.Filters[0])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "lot:get", shared.BuildCacheKey("lot:get"))
	assert.Equal(t, "lot:get:abc", shared.BuildCacheKey("lot:get", "abc"))
	assert.Equal(t, "booking:get:lot-1:abc", shared.BuildCacheKey("booking:get", "lot-1", "abc"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Limit: 10, Page: 1}
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "active", Table: "bookings"},
		},
	}

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "booking:gets:"))

	other := shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Limit: 10, Page: 2}, filter)
	assert.NotEqual(t, first, other)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := cacheMocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Clear(gomock.Any(), "lot:*").Return(nil)
	shared.InvalidateCaches(context.Background(), cache, "lot:")

	cache.EXPECT().Clear(gomock.Any(), "booking:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), cache, "booking:")
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}
