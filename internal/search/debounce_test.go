package search

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu    sync.Mutex
	calls []string
	done  chan struct{}
}

func newRecorder() *recorder {
	return &recorder{done: make(chan struct{}, 16)}
}

func (r *recorder) record(query string) {
	r.mu.Lock()
	r.calls = append(r.calls, query)
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestDebouncer_OnlyLatestRuns(t *testing.T) {
	rec := newRecorder()
	d := NewDebouncer(20*time.Millisecond, rec.record)
	defer d.Stop()

	for _, q := range []string{"к", "ко", "кон", "конц"} {
		d.Submit(q)
	}

	select {
	case <-rec.done:
	case <-time.After(time.Second):
		t.Fatal("debounced query never ran")
	}

	// nothing else may fire afterwards
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"конц"}, rec.snapshot())
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	rec := newRecorder()
	d := NewDebouncer(10*time.Millisecond, rec.record)
	defer d.Stop()

	d.Submit("джаз")
	<-rec.done
	d.Submit("jazz")
	<-rec.done

	assert.Equal(t, []string{"джаз", "jazz"}, rec.snapshot())
}

func TestDebouncer_Stop(t *testing.T) {
	rec := newRecorder()
	d := NewDebouncer(20*time.Millisecond, rec.record)

	d.Submit("концерт")
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	// usable after Stop
	d.Submit("лекция")
	<-rec.done
	assert.Equal(t, []string{"лекция"}, rec.snapshot())
}
