package shared

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_IsMatchesKind(t *testing.T) {
	err := NewNotFoundError("VEHICLE_NOT_FOUND", "vehicle %d not found", 7)

	assert.Equal(t, "vehicle 7 not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrInvalidState))

	wrapped := fmt.Errorf("loading: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))

	var de *DomainError
	require.True(t, errors.As(wrapped, &de))
	assert.Equal(t, "VEHICLE_NOT_FOUND", de.Code)
}

func TestDomainError_IsWithCode(t *testing.T) {
	a := NewInvalidStateError("VEHICLE_NOT_AVAILABLE", "x")
	b := NewInvalidStateError("VEHICLE_NOT_AVAILABLE", "y")
	c := NewInvalidStateError("SALE_EXISTS", "z")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
	assert.False(t, errors.Is(a, errors.New("x")))
}

func TestNewPage(t *testing.T) {
	p, err := NewPage(2, MaxPageSize)
	require.NoError(t, err)
	assert.Equal(t, Page{Number: 2, Size: MaxPageSize}, p)

	_, err = NewPage(0, 10)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewPage(1, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewPage(-1, 10)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewPage(1, MaxPageSize+1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewPage(1, -3)
	assert.ErrorIs(t, err, ErrValidation)

	p, err = NewPage(math.MaxInt, MaxPageSize)
	require.NoError(t, err)
	assert.Empty(t, Apply(make([]int, 3*MaxPageSize), p))
}

func TestApply(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, items, Apply(items, Page{}))
	assert.Equal(t, []int{1, 2}, Apply(items, Page{Number: 1, Size: 2}))
	assert.Equal(t, []int{5}, Apply(items, Page{Number: 3, Size: 2}))
	assert.Empty(t, Apply(items, Page{Number: 4, Size: 2}))

	t.Run("huge page number", func(t *testing.T) {
		assert.Empty(t, Apply(items, Page{Number: math.MaxInt, Size: MaxPageSize}))
		assert.Empty(t, Apply(items, Page{Number: 100000000000000000, Size: MaxPageSize}))
		assert.Empty(t, Apply([]int{}, Page{Number: math.MaxInt, Size: 1}))
	})
}

func TestValidateMoney(t *testing.T) {
	v, err := ValidateMoney("INVALID_PRICE", "price", decimal.RequireFromString("10.005"))
	require.NoError(t, err)
	assert.Equal(t, "10.01", v.StringFixed(2))

	v, err = ValidateMoney("INVALID_PRICE", "price", MaxMoney)
	require.NoError(t, err)
	assert.True(t, v.Equal(MaxMoney))

	for _, bad := range []string{"0", "-1", "10000000"} {
		_, err := ValidateMoney("INVALID_PRICE", "price", decimal.RequireFromString(bad))
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}
