package stream

import (
	"context"
	"strings"
	"testing"
)

func TestSliceTransformCollect(t *testing.T) {
	ctx := context.Background()
	got := Collect(ctx, Transform(ctx, func(n int) int {
		return n * n
	}, Slice(ctx, []int{1, 2, 3, 4})))
	want := []int{1, 4, 9, 16}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFilter(t *testing.T) {
	ctx := context.Background()
	got := Collect(ctx, Filter(ctx, func(n int) bool {
		return n%2 == 0
	}, Slice(ctx, []int{1, 2, 3, 4, 5, 6})))
	if len(got) != 3 || got[0] != 2 || got[2] != 6 {
		t.Errorf("got %v", got)
	}
}

func TestNDJSON(t *testing.T) {
	type row struct {
		Name string `json:"name"`
	}
	in := strings.NewReader(`{"name":"a"}
{"name":"b"}
{"name":"c"}`)
	ctx := context.Background()
	got := Collect(ctx, NDJSON[row](ctx, in))
	if len(got) != 3 || got[0].Name != "a" || got[2].Name != "c" {
		t.Errorf("got %v", got)
	}
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := Collect(ctx, Slice(ctx, []int{1, 2, 3}))
	if len(got) > 1 {
		t.Errorf("expected cancellation to cut the stream short, got %v", got)
	}
}
