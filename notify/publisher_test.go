package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeConfirm struct {
	ack chan bool
}

func (f fakeConfirm) WaitContext(ctx context.Context) (bool, error) {
	select {
	case ack := <-f.ack:
		return ack, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func TestWaitConfirm(t *testing.T) {
	acked := fakeConfirm{ack: make(chan bool, 1)}
	acked.ack <- true
	assert.NoError(t, waitConfirm(context.Background(), acked))

	nacked := fakeConfirm{ack: make(chan bool, 1)}
	nacked.ack <- false
	assert.EqualError(t, waitConfirm(context.Background(), nacked), "publish NACK from broker")
}

func TestWaitConfirmTimeoutDoesNotLeakIntoNextPublish(t *testing.T) {
	slow := fakeConfirm{ack: make(chan bool, 1)}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, waitConfirm(ctx, slow), context.DeadlineExceeded)

	// the late ack of the first message belongs to it alone
	slow.ack <- true
	next := fakeConfirm{ack: make(chan bool, 1)}
	next.ack <- false
	assert.Error(t, waitConfirm(context.Background(), next))
}
