package stack_test

import (
	"sync"
	"testing"

	"github.com/lbryio/bisect/internal/metrics"
	"github.com/lbryio/bisect/stack"
	"github.com/lbryio/lbry.go/v2/extras/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOutOfOrder = stack.ErrOutOfOrder

func TestPush(t *testing.T) {
	var want uint32 = 3

	stack := stack.NewSliceBacked[int](10)

	require.NoError(t, stack.Push(0))
	require.NoError(t, stack.Push(1))
	require.NoError(t, stack.Push(2))

	if got := stack.Len(); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPushOutOfOrder(t *testing.T) {
	stack := stack.NewSliceBacked[int](2)
	before := testutil.ToFloat64(metrics.OutOfOrderPushCounter)

	require.NoError(t, stack.Push(5))
	require.NoError(t, stack.Push(5))

	err := stack.Push(4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errOutOfOrder), "got %v", err)
	assert.Contains(t, err.Error(), "push 4 onto tip 5")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.OutOfOrderPushCounter))

	if got := stack.Len(); got != 2 {
		t.Errorf("got %v, want %v", got, 2)
	}
	if got, _ := stack.GetTip(); got != 5 {
		t.Errorf("got %v, want %v", got, 5)
	}
}

func TestPushPop(t *testing.T) {
	stack := stack.NewSliceBacked[int](10)

	for i := 0; i < 5; i++ {
		require.NoError(t, stack.Push(i))
	}
	for i := 0; i < 5; i++ {
		wantLen := 5 - i

		if got := stack.Len(); int(got) != wantLen {
			t.Errorf("got %v, want %v", got, wantLen)
		}

		if got, ok := stack.Pop(); !ok || got != 5-i-1 {
			t.Errorf("got %v, want %v", got, 5-i-1)
		}

		wantLen -= 1

		if got := stack.Len(); int(got) != wantLen {
			t.Errorf("got %v, want %v", got, wantLen)
		}
	}

	if _, ok := stack.Pop(); ok {
		t.Errorf("pop on empty stack succeeded")
	}
}

func doPushes(t *testing.T, stack *stack.SliceBacked[int], numPushes int) {
	for i := 0; i < numPushes; i++ {
		if err := stack.Push(7); err != nil {
			t.Error(err)
			return
		}
	}
}

func doPops(stack *stack.SliceBacked[int], numPops int) {
	for i := 0; i < numPops; i++ {
		stack.Pop()
	}
}

func TestMultiThreaded(t *testing.T) {
	stack := stack.NewSliceBacked[int](100000)
	var wg sync.WaitGroup

	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doPushes(t, stack, 100000)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if idx, ok := stack.Search(7); ok {
				if got, _ := stack.Get(idx); got != 7 {
					t.Errorf("got %v, want %v", got, 7)
					return
				}
			}
		}
	}()
	wg.Wait()

	if stack.Len() != 300000 {
		t.Errorf("got %v, want %v", stack.Len(), 300000)
	}

	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doPops(stack, 100000)
		}()
	}
	wg.Wait()

	if stack.Len() != 0 {
		t.Errorf("got %v, want %v", stack.Len(), 0)
	}
}

func TestGet(t *testing.T) {
	stack := stack.NewSliceBacked[int](10)

	for i := 0; i < 5; i++ {
		require.NoError(t, stack.Push(i))
	}

	if got, _ := stack.GetTip(); got != 4 {
		t.Errorf("got %v, want %v", got, 4)
	}

	for i := 0; i < 5; i++ {
		if got, ok := stack.Get(uint32(i)); !ok || got != i {
			t.Errorf("got %v, want %v", got, i)
		}
	}
	if _, ok := stack.Get(5); ok {
		t.Errorf("get past the tip succeeded")
	}

	slice := stack.GetSlice()

	if len(slice) != 5 {
		t.Errorf("got %v, want %v", len(slice), 5)
	}
}

func TestLenCap(t *testing.T) {
	stack := stack.NewSliceBacked[int](10)

	if got := stack.Len(); got != 0 {
		t.Errorf("got %v, want %v", got, 0)
	}

	if got := stack.Cap(); got != 10 {
		t.Errorf("got %v, want %v", got, 10)
	}

	if _, ok := stack.GetTip(); ok {
		t.Errorf("tip of empty stack found")
	}
}

func TestSearch(t *testing.T) {
	stack := stack.NewSliceBacked[uint32](4)
	for _, v := range []uint32{1, 3, 5, 7} {
		require.NoError(t, stack.Push(v))
	}
	before := testutil.ToFloat64(metrics.SearchCount.WithLabelValues("stack_search", metrics.ResultMiss))

	tests := []struct {
		name   string
		target uint32
		want   uint32
		found  bool
		insert uint32
	}{
		{"first", 1, 0, true, 0},
		{"middle", 5, 2, true, 2},
		{"last", 7, 3, true, 3},
		{"gap", 4, 0, false, 2},
		{"below", 0, 0, false, 0},
		{"above", 9, 0, false, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := stack.Search(tt.target)
			if got != tt.want || found != tt.found {
				t.Errorf("got (%v, %v), want (%v, %v)", got, found, tt.want, tt.found)
			}
			if got := stack.InsertionPoint(tt.target); got != tt.insert {
				t.Errorf("insertion point: got %v, want %v", got, tt.insert)
			}
		})
	}

	after := testutil.ToFloat64(metrics.SearchCount.WithLabelValues("stack_search", metrics.ResultMiss))
	assert.Equal(t, before+3, after)
}

func TestTxCountsBisectRight(t *testing.T) {
	// cumulative tx counts per height
	txCounts := stack.NewSliceBacked[uint32](0)
	for _, v := range []uint32{1, 3, 3, 6, 10} {
		require.NoError(t, txCounts.Push(v))
	}

	tests := []struct {
		txNum     uint32
		rootTxNum uint32
		height    uint32
		created   uint32
	}{
		{0, 0, 0, 0},
		{1, 0, 1, 0},
		{3, 1, 3, 1},
		{5, 3, 3, 3},
		{10, 6, 5, 4},
		{11, 11, 5, 5},
	}

	for _, tt := range tests {
		height, created := txCounts.BisectRightPair(tt.txNum, tt.rootTxNum)
		if height != tt.height || created != tt.created {
			t.Errorf("(%v, %v): got (%v, %v), want (%v, %v)", tt.txNum, tt.rootTxNum, height, created, tt.height, tt.created)
		}
		if got := txCounts.BisectRight(tt.txNum); got != tt.height {
			t.Errorf("%v: got %v, want %v", tt.txNum, got, tt.height)
		}
	}
}
