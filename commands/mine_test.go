package commands

import (
  "context"
  "errors"
  "sync/atomic"
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
)

func TestKeepLeaseLost(t *testing.T) {
  ctx, cancel := context.WithCancelCause(context.Background())
  defer cancel(nil)

  var refreshes atomic.Int32
  err := keepLease(ctx, cancel, make(chan struct{}), time.Millisecond, func() bool {
    return refreshes.Add(1) < 3
  })

  assert.ErrorIs(t, err, ErrLeaseLost)
  assert.Equal(t, int32(3), refreshes.Load())
  require.Error(t, ctx.Err())
  assert.ErrorIs(t, stopReason(ctx, nil), ErrLeaseLost)
}

func TestKeepLeaseReleased(t *testing.T) {
  ctx, cancel := context.WithCancelCause(context.Background())
  defer cancel(nil)

  done := make(chan struct{})
  result := make(chan error, 1)
  go func() {
    result <- keepLease(ctx, cancel, done, time.Millisecond, func() bool { return true })
  }()
  time.Sleep(10 * time.Millisecond)
  close(done)

  select {
  case err := <-result:
    require.NoError(t, err)
  case <-time.After(time.Second):
    t.Fatal("lease keeper did not stop")
  }
  assert.NoError(t, ctx.Err())
  assert.NoError(t, stopReason(ctx, nil))
}

func TestStopReason(t *testing.T) {
  operator, stop := context.WithCancel(context.Background())
  ctx, cancel := context.WithCancelCause(operator)
  defer cancel(nil)
  stop()

  assert.NoError(t, stopReason(ctx, nil))

  fatal := errors.New("reconnect attempts exhausted")
  assert.ErrorIs(t, stopReason(ctx, fatal), fatal)
}
