package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func receive(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			t.Fatalf("expected a snapshot, stream was closed")
		}
		return s
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for snapshot")
	}
	return Snapshot{}
}

func TestStreamBytesSource(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ds := NewDatasource(true)
	ch := ds.Stream(ctx, BytesSource("demo", []byte("pie\nA,1\nbroken\nB,3")))
	s := receive(t, ch)
	if s.Err != nil {
		t.Fatalf("expected no error, got %v", s.Err)
	}
	if s.Source != "demo" {
		t.Errorf("expected source name demo, got %q", s.Source)
	}
	if s.Data.Len() != 2 {
		t.Errorf("expected the bad row to be skipped, got %+v", s.Data.Pie)
	}
	if _, ok := <-ch; ok {
		t.Errorf("expected in-memory stream to close after one snapshot")
	}
}

func TestStreamMissingFile(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ds := NewDatasource(false)
	s := receive(t, ds.Stream(ctx, FileSource(filepath.Join(t.TempDir(), "missing.csv"))))
	if !errors.Is(s.Err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", s.Err)
	}
}

func TestStreamFollowsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.csv")
	if err := os.WriteFile(path, []byte("bar,value\nQ1,25\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ds := NewDatasource(true)
	src := FileSource(path)
	if src.Name != "bars.csv" || src.Path() != path {
		t.Errorf("unexpected source %+v", src)
	}
	ch := ds.Stream(ctx, src)
	s := receive(t, ch)
	if s.Err != nil || s.Data.Len() != 1 {
		t.Fatalf("expected one bar, got %+v", s)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteString("Q2,40\n"); err != nil {
		t.Fatal(err)
	}
	s = receive(t, ch)
	if s.Err != nil || s.Data.Len() != 2 || s.Data.Bars[1].Value != 40 {
		t.Errorf("expected appended bar, got %+v", s)
	}

	cancel()
	for range ch {
	}
}

func TestStreamUnwatchedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "line.csv")
	if err := os.WriteFile(path, []byte("line,BTC\nMon,1\nTue,2"), 0o644); err != nil {
		t.Fatal(err)
	}
	ds := NewDatasource(false)
	ch := ds.Stream(context.Background(), FileSource(path))
	s := receive(t, ch)
	if s.Err != nil || s.Data.Len() != 2 {
		t.Errorf("expected both rows including the unterminated one, got %+v", s)
	}
	if _, ok := <-ch; ok {
		t.Errorf("expected unwatched stream to close")
	}
}

func TestStreamWatchedUnterminatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "line.csv")
	if err := os.WriteFile(path, []byte("line,BTC\nMon,1\nTue,2"), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := NewDatasource(true).Stream(ctx, FileSource(path))
	s := receive(t, ch)
	if s.Err != nil || s.Data.Len() != 2 {
		t.Fatalf("expected both rows including the unterminated one, got %+v", s)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteString("5\nWed,3\n"); err != nil {
		t.Fatal(err)
	}
	s = receive(t, ch)
	if s.Err != nil || s.Data.Len() != 3 {
		t.Fatalf("expected completed row and a new one, got %+v", s)
	}
	if y := s.Data.Lines[0].Points[1].Y; y != 25 {
		t.Errorf("expected completed row to read 25, got %v", y)
	}

	cancel()
	for range ch {
	}
}
