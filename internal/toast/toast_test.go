package toast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/volt/internal/ids"
	"github.com/roach88/volt/internal/testutil"
)

func newTestQueue(t *testing.T) (*Queue, *testutil.ManualClock) {
	t.Helper()
	clk := testutil.NewManualClock()
	return New(WithIDs(testutil.NewSequentialIDs("toast")), WithClock(clk)), clk
}

func TestQueue_AddGeneratesIDAndAppends(t *testing.T) {
	q, _ := newTestQueue(t)

	id1 := q.Add(Toast{ID: "ignored", Kind: KindInfo, Message: "first"})
	id2 := q.Add(Toast{Kind: KindInfo, Message: "second"})

	assert.Equal(t, "toast-1", id1)
	assert.Equal(t, "toast-2", id2)

	toasts := q.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, "first", toasts[0].Message)
	assert.Equal(t, "second", toasts[1].Message)
	assert.Equal(t, testutil.Epoch, toasts[0].CreatedAt)
}

func TestQueue_DuplicateMessagesAllowed(t *testing.T) {
	q, _ := newTestQueue(t)
	q.Info("saved")
	q.Info("saved")
	assert.Len(t, q.Toasts(), 2)
}

func TestQueue_Remove(t *testing.T) {
	q, _ := newTestQueue(t)
	a := q.Info("a")
	b := q.Info("b")
	q.Info("c")

	q.Remove(b)
	toasts := q.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, a, toasts[0].ID)
	assert.Equal(t, "c", toasts[1].Message)

	q.Remove("does-not-exist")
	assert.Len(t, q.Toasts(), 2)
}

func TestQueue_DefaultDurations(t *testing.T) {
	q, _ := newTestQueue(t)
	q.Success("ok")
	q.Error("boom")
	q.Info("fyi")
	q.Error("slow", 10*time.Second)

	toasts := q.Toasts()
	require.Len(t, toasts, 4)
	assert.Equal(t, KindSuccess, toasts[0].Kind)
	assert.Equal(t, 3000*time.Millisecond, toasts[0].Duration)
	assert.Equal(t, KindError, toasts[1].Kind)
	assert.Equal(t, 5000*time.Millisecond, toasts[1].Duration)
	assert.Equal(t, KindInfo, toasts[2].Kind)
	assert.Equal(t, 3000*time.Millisecond, toasts[2].Duration)
	assert.Equal(t, 10*time.Second, toasts[3].Duration)
}

func TestQueue_Prune(t *testing.T) {
	q, clk := newTestQueue(t)
	q.Success("short")
	q.Error("long")
	q.Add(Toast{Kind: KindInfo, Message: "sticky"})

	clk.Advance(2999 * time.Millisecond)
	assert.Equal(t, 0, q.Prune())

	clk.Advance(time.Millisecond)
	assert.Equal(t, 1, q.Prune())

	clk.Advance(time.Hour)
	assert.Equal(t, 1, q.Prune())

	toasts := q.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "sticky", toasts[0].Message)
}

func TestQueue_PruneNothingDoesNotPublish(t *testing.T) {
	q, _ := newTestQueue(t)
	q.Info("x")
	published := 0
	q.Subscribe(func([]Toast) { published++ })

	q.Prune()
	assert.Equal(t, 1, published, "only the initial subscription call")
}

func TestQueue_SnapshotsAreImmutable(t *testing.T) {
	q, _ := newTestQueue(t)
	q.Info("a")
	before := q.Toasts()

	q.Info("b")
	q.Remove(before[0].ID)

	assert.Len(t, before, 1)
	assert.Equal(t, "a", before[0].Message)
}

func TestQueue_Clear(t *testing.T) {
	q, _ := newTestQueue(t)
	q.Info("a")
	q.Error("b")
	q.Clear()
	assert.Empty(t, q.Toasts())
}

func TestQueue_Run(t *testing.T) {
	q := New(WithIDs(ids.NewFixedGenerator("only")))
	q.Add(Toast{Kind: KindInfo, Message: "quick", Duration: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		q.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return len(q.Toasts()) == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestToast_Expired(t *testing.T) {
	created := testutil.Epoch
	tt := Toast{CreatedAt: created, Duration: time.Second}
	assert.False(t, tt.Expired(created.Add(999*time.Millisecond)))
	assert.True(t, tt.Expired(created.Add(time.Second)))
	assert.False(t, Toast{CreatedAt: created}.Expired(created.Add(24*time.Hour)))
}
