package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diagbot/internal/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	s := model.NewSession()
	s.QuestionIndex = 2
	s.Answers["q1"] = model.NewScalar("hello")
	require.NoError(t, st.Put(ctx, 42, s))

	loaded, err := st.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 2, loaded.QuestionIndex)
	require.Contains(t, loaded.Answers, "q1")
	assert.Equal(t, "hello", loaded.Answers["q1"].Scalar)
}

func TestMemoryStoreMissingSessionIsNil(t *testing.T) {
	st := NewMemoryStore()

	loaded, err := st.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	require.NoError(t, st.Put(ctx, 7, model.NewSession()))

	first, err := st.Get(ctx, 7)
	require.NoError(t, err)
	first.QuestionIndex = 99

	second, err := st.Get(ctx, 7)
	require.NoError(t, err)
	assert.Zero(t, second.QuestionIndex)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	require.NoError(t, st.Put(ctx, 5, model.NewSession()))
	require.NoError(t, st.Delete(ctx, 5))

	loaded, err := st.Get(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Deleting again is a no-op.
	require.NoError(t, st.Delete(ctx, 5))
}

func TestLockerSerializesPerChat(t *testing.T) {
	l := NewLocker()

	unlock := l.Lock(1)
	acquired := make(chan struct{})
	go func() {
		u := l.Lock(1)
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first held")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()
	<-acquired

	// A different chat locks independently.
	u2 := l.Lock(2)
	u2()
}
