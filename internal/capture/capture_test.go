package capture

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
)

func fill(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i%26)
	}
	return b
}

func TestTailKeepsLastWindow(t *testing.T) {
	b := New(Tail)
	data := fill(20000, 'a')
	// Write in uneven chunks to exercise the ring wrap.
	for i := 0; i < len(data); {
		n := 777
		if i+n > len(data) {
			n = len(data) - i
		}
		if _, err := b.Write(data[i : i+n]); err != nil {
			t.Fatalf("write: %v", err)
		}
		i += n
	}
	got := b.Bytes()
	want := data[len(data)-Limit:]
	if len(got) != Limit {
		t.Fatalf("snapshot length %d, want %d", len(got), Limit)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("tail snapshot does not equal last %d bytes", Limit)
	}
	if !b.Truncated() {
		t.Fatalf("expected truncation to be reported")
	}
}

func TestTailSingleOversizedWrite(t *testing.T) {
	b := New(Tail)
	data := fill(3*Limit+13, 'x')
	_, _ = b.Write(data)
	if got := b.Bytes(); !bytes.Equal(got, data[len(data)-Limit:]) {
		t.Fatalf("oversized write not reduced to last window")
	}
}

func TestTailUnderCapacity(t *testing.T) {
	b := New(Tail)
	_, _ = b.Write([]byte("hello "))
	_, _ = b.Write([]byte("world"))
	if got := string(b.Bytes()); got != "hello world" {
		t.Fatalf("got %q", got)
	}
	if b.Truncated() {
		t.Fatalf("no truncation expected under capacity")
	}
}

func TestHeadKeepsFirstWindowAndFreezes(t *testing.T) {
	b := New(Head)
	data := fill(Limit+5000, 'a')
	_, _ = b.Write(data[:4000])
	_, _ = b.Write(data[4000:])
	before := b.Bytes()
	if !bytes.Equal(before, data[:Limit]) {
		t.Fatalf("head snapshot does not equal first %d bytes", Limit)
	}
	// Further writes are no-ops once full.
	_, _ = b.Write([]byte("late arrival"))
	if !bytes.Equal(b.Bytes(), before) {
		t.Fatalf("snapshot changed after buffer was full")
	}
	if !b.Truncated() {
		t.Fatalf("expected truncation to be reported")
	}
}

func TestNoneRetainsNothing(t *testing.T) {
	b := New(None)
	for i := 0; i < 100; i++ {
		n, err := b.Write(fill(1024, byte(i)))
		if err != nil || n != 1024 {
			t.Fatalf("write consumed %d, err=%v", n, err)
		}
	}
	if got := b.Bytes(); got != nil {
		t.Fatalf("none mode retained %d bytes", len(got))
	}
	if b.Total() != 100*1024 {
		t.Fatalf("total miscounted: %d", b.Total())
	}
}

func TestSnapshotNeverExceedsLimit(t *testing.T) {
	for _, mode := range []Mode{Tail, Head, None} {
		t.Run(mode.String(), func(t *testing.T) {
			b := New(mode)
			for i := 0; i < 50; i++ {
				_, _ = b.Write(fill(997, byte(i)))
			}
			if b.Len() > Limit {
				t.Fatalf("retained %d bytes, limit %d", b.Len(), Limit)
			}
		})
	}
}

func TestConcurrentWriterAndSnapshot(t *testing.T) {
	b := New(Tail)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, _ = b.Write([]byte(fmt.Sprintf("line %d\n", i)))
		}
	}()
	for i := 0; i < 50; i++ {
		if n := len(b.Bytes()); n > Limit {
			t.Errorf("snapshot length %d exceeds limit", n)
		}
	}
	wg.Wait()
}
