package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := Wrap("orders.Submit", ErrEmptyCart)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.NotErrorIs(t, err, ErrMissingGuest)
	assert.Equal(t, Validation, KindOf(err))
	assert.Equal(t, "orders.Submit: please add items to your cart", err.Error())

	wrapped := fmt.Errorf("handler: %w", err)
	assert.ErrorIs(t, wrapped, ErrEmptyCart)
}

func TestRemote(t *testing.T) {
	assert.NoError(t, Remote("op", nil))

	cause := errors.New("i/o timeout")
	err := Remote("database.InsertOrder", cause)
	assert.Equal(t, RemoteOperation, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "database.InsertOrder: i/o timeout", err.Error())

	nf := NotFoundf("database.GetOrder", "order was not found")
	assert.Same(t, nf, Remote("other", nf), "typed errors keep their kind")
	assert.True(t, IsNotFound(Wrap("orders.Get", nf)))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Unknown, KindOf(errors.New("boom")))
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, Unknown, KindOf(Wrap("op", errors.New("boom"))))
}
