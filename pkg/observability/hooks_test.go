package observability

import (
	"context"
	"testing"
	"time"
)

type recordingLayoutHooks struct {
	starts    int
	completes int
}

func (r *recordingLayoutHooks) OnLayoutStart(int, int)                      { r.starts++ }
func (r *recordingLayoutHooks) OnLayoutComplete(int, time.Duration, error)  { r.completes++ }
func (r *recordingLayoutHooks) OnRenderStart(string)                        {}
func (r *recordingLayoutHooks) OnRenderComplete(string, int, time.Duration) {}

type recordingCacheHooks struct {
	hits, misses, sets int
}

func (r *recordingCacheHooks) OnCacheHit(context.Context, string)      { r.hits++ }
func (r *recordingCacheHooks) OnCacheMiss(context.Context, string)     { r.misses++ }
func (r *recordingCacheHooks) OnCacheSet(context.Context, string, int) { r.sets++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Errorf("Layout() = %T, want NoopLayoutHooks", Layout())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}

	// No-op hooks must not panic.
	Layout().OnLayoutStart(1, 2)
	Layout().OnLayoutComplete(1, time.Second, nil)
	Cache().OnCacheHit(context.Background(), "layout")
}

func TestSetLayoutHooks(t *testing.T) {
	defer Reset()

	rec := &recordingLayoutHooks{}
	SetLayoutHooks(rec)

	Layout().OnLayoutStart(3, 2)
	Layout().OnLayoutComplete(3, time.Millisecond, nil)

	if rec.starts != 1 || rec.completes != 1 {
		t.Errorf("starts = %d, completes = %d, want 1 each", rec.starts, rec.completes)
	}
}

func TestSetCacheHooks(t *testing.T) {
	defer Reset()

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)

	ctx := context.Background()
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheSet(ctx, "layout", 128)
	Cache().OnCacheHit(ctx, "layout")

	if rec.hits != 1 || rec.misses != 1 || rec.sets != 1 {
		t.Errorf("hits = %d, misses = %d, sets = %d, want 1 each", rec.hits, rec.misses, rec.sets)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	defer Reset()

	rec := &recordingLayoutHooks{}
	SetLayoutHooks(rec)
	SetLayoutHooks(nil)

	Layout().OnLayoutStart(1, 0)
	if rec.starts != 1 {
		t.Errorf("starts = %d, want 1 (nil registration must be ignored)", rec.starts)
	}
}

func TestReset(t *testing.T) {
	SetLayoutHooks(&recordingLayoutHooks{})
	SetCacheHooks(&recordingCacheHooks{})
	Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Errorf("Layout() after Reset = %T, want NoopLayoutHooks", Layout())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() after Reset = %T, want NoopCacheHooks", Cache())
	}
}
