package validate

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequired(t *testing.T) {
	assert.Nil(t, Required("name", "Ada"))
	assert.NotNil(t, Required("name", ""))
	assert.NotNil(t, Required("name", "   "))
}

func TestEmail(t *testing.T) {
	assert.Nil(t, Email("email", "ada@example.com"))
	assert.NotNil(t, Email("email", "nope"))
	assert.NotNil(t, Email("email", "a@@b"))
}

func TestMinLen(t *testing.T) {
	assert.Nil(t, MinLen("password", "123456", 6))
	assert.NotNil(t, MinLen("password", "12345", 6))
}

func TestPositiveAmount(t *testing.T) {
	assert.Nil(t, PositiveAmount("amount", decimal.NewFromInt(1)))
	assert.NotNil(t, PositiveAmount("amount", decimal.Zero))
	assert.NotNil(t, PositiveAmount("amount", decimal.NewFromInt(-1)))
}

func TestCollect(t *testing.T) {
	assert.NoError(t, Collect(nil, nil))

	err := Collect(
		Required("name", ""),
		Email("email", "ada@example.com"),
		MinLen("password", "123", 6),
	)
	require.Error(t, err)

	var errs Errs
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 2)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "password", errs[1].Field)
	assert.Equal(t, "name: required; password: too short", err.Error())
}
