package errs_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("status")

		assert.Equal(t, "status", err.ParamName)
		assert.Equal(t, "value is invalid: status", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("unknown status")
		err := errs.NewValueIsInvalidErrorWithCause("status", cause)

		assert.Equal(t, "value is invalid: status (cause: unknown status)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("limit", 150, 1, 100)

		assert.Equal(t, 150, err.Value)
		assert.Equal(t, "value is out of range: 150 is limit, min value is 1, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("offset", -5, 0, 1000, cause)

		assert.Equal(t,
			"value is out of range: -5 is offset, min value is 0, max value is 1000 (cause: validation failed)",
			err.Error())
	})

	t.Run("sanitizes newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("orderId")
	assert.Equal(t, "value is required: orderId", err.Error())

	withCause := errs.NewValueIsRequiredErrorWithCause("orderId", errors.New("empty path parameter"))
	assert.Equal(t, "value is required: orderId (cause: empty path parameter)", withCause.Error())
	assert.Equal(t, errs.ErrValueIsRequired, withCause.Unwrap())
}

func TestAccessDeniedError(t *testing.T) {
	err := errs.NewAccessDeniedError("cancel order")
	assert.Equal(t, "access denied: cancel order", err.Error())
	require.ErrorIs(t, err, errs.ErrAccessDenied)

	withCause := errs.NewAccessDeniedErrorWithCause("confirm order", errors.New("not a vendor of any item"))
	assert.Equal(t, "access denied: confirm order (cause: not a vendor of any item)", withCause.Error())
}

func TestTransitionIsInvalidError(t *testing.T) {
	err := errs.NewTransitionIsInvalidError("order", "confirmed", "shipped")

	assert.Equal(t, "transition is invalid: order cannot move from confirmed to shipped", err.Error())
	require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
}

func TestPolicyViolationError(t *testing.T) {
	t.Run("without violations", func(t *testing.T) {
		err := errs.NewPolicyViolationError("an open return request already exists")
		assert.Equal(t, "policy violation: an open return request already exists", err.Error())
		assert.Empty(t, err.Violations)
	})

	t.Run("with itemized violations", func(t *testing.T) {
		err := errs.NewPolicyViolationError("items are not returnable", "item a", "item b")
		assert.Equal(t, "policy violation: items are not returnable [item a; item b]", err.Error())
		assert.Equal(t, []string{"item a", "item b"}, err.Violations)
		require.ErrorIs(t, err, errs.ErrPolicyViolation)
	})
}

func TestResourceIsLockedError(t *testing.T) {
	err := errs.NewResourceIsLockedError("order", "42")

	assert.Equal(t, "resource is locked: order 42", err.Error())
	require.ErrorIs(t, err, errs.ErrResourceIsLocked)
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "1"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("status"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("limit", 0, 1, 100), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("orderId"), errs.ErrValueIsRequired)

	var target *errs.PolicyViolationError
	wrapped := errors.Join(errors.New("context"), errs.NewPolicyViolationError("rule", "x"))
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, []string{"x"}, target.Violations)
}
