package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gioui.org/x/explorer"
	"github.com/fsnotify/fsnotify"
)

// Source identifies a dataset that can be streamed any number of times.
type Source struct {
	Name string
	path string
	data []byte
}

// FileSource is a dataset stored at path. Streams of it follow the file as
// it grows when the Datasource watches files.
func FileSource(path string) Source {
	return Source{
		Name: filepath.Base(path),
		path: path,
	}
}

// BytesSource is a dataset held in memory.
func BytesSource(name string, data []byte) Source {
	return Source{
		Name: name,
		data: data,
	}
}

// IsZero reports whether s identifies no dataset.
func (s Source) IsZero() bool {
	return s.path == "" && s.data == nil
}

// Path returns the file backing s, if any.
func (s Source) Path() string {
	return s.path
}

// Snapshot is the state of a dataset at one point in time.
type Snapshot struct {
	Source string
	Data   Dataset
	// Err is set when the dataset could not be read at all. Bad rows are
	// logged and skipped instead.
	Err error
}

// Datasource turns dataset sources into snapshot streams.
type Datasource struct {
	watch bool
}

// NewDatasource returns a Datasource. When watch is set, file streams keep
// running and emit a new snapshot each time the file is written.
func NewDatasource(watch bool) *Datasource {
	return &Datasource{watch: watch}
}

// Choose lets the user pick a dataset with the platform file chooser. It
// blocks until the user makes a choice.
func (d *Datasource) Choose(expl *explorer.Explorer) (Source, error) {
	file, err := expl.ChooseFile("csv")
	if err != nil {
		return Source{}, fmt.Errorf("failed choosing dataset: %w", err)
	}
	defer file.Close()
	if f, ok := file.(*os.File); ok {
		return FileSource(f.Name()), nil
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return Source{}, fmt.Errorf("failed reading chosen dataset: %w", err)
	}
	return BytesSource("dataset", data), nil
}

// Stream emits snapshots of src until ctx is cancelled or, for sources that
// are not watched, until the first complete snapshot. Its signature matches
// the stream providers used by the UI.
func (d *Datasource) Stream(ctx context.Context, src Source) <-chan Snapshot {
	out := make(chan Snapshot, 1)
	go func() {
		defer close(out)
		d.follow(ctx, src, out)
	}()
	return out
}

func (d *Datasource) follow(ctx context.Context, src Source, out chan<- Snapshot) {
	send := func(s Snapshot) bool {
		s.Source = src.Name
		select {
		case out <- s:
			return true
		case <-ctx.Done():
			return false
		}
	}
	if src.path == "" {
		dec := NewDecoder(terminated(bytes.NewReader(src.data)))
		err := drain(src.Name, dec)
		send(Snapshot{Data: dec.Dataset(), Err: err})
		return
	}
	f, err := os.Open(src.path)
	if err != nil {
		send(Snapshot{Err: fmt.Errorf("failed opening dataset: %w", err)})
		return
	}
	defer f.Close()

	var watcher *fsnotify.Watcher
	if d.watch {
		watcher, err = watch(src.path)
		if err != nil {
			log.Printf("not following %s: %v", src.path, err)
		} else {
			defer watcher.Close()
		}
	}
	var dec *Decoder
	if watcher != nil {
		// The heading may not have been written yet.
		dec = NewDecoder(f)
		_, err = drainChanged(src.Name, dec)
	} else {
		dec = NewDecoder(terminated(f))
		err = drain(src.Name, dec)
	}
	if watcher == nil || err != nil {
		send(Snapshot{Data: dec.Dataset(), Err: err})
		return
	}
	// A file saved without a trailing newline still shows its last row.
	held := string(dec.lines.held())
	if !send(Snapshot{Data: dec.Preview()}) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				log.Printf("stopped following %s: file went away", src.path)
				return
			}
			if !ev.Has(fsnotify.Write) {
				continue
			}
			changed, err := drainChanged(src.Name, dec)
			if h := string(dec.lines.held()); h != held {
				held = h
				changed = true
			}
			if !changed && err == nil {
				continue
			}
			if err != nil {
				send(Snapshot{Data: dec.Dataset(), Err: err})
				return
			}
			if !send(Snapshot{Data: dec.Preview()}) {
				return
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("error watching %s: %v", src.path, err)
		}
	}
}

func watch(path string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		return nil, errors.Join(fmt.Errorf("failed watching file: %w", err), watcher.Close())
	}
	return watcher, nil
}

// terminated appends a newline so that a final unterminated row of a
// complete input is decoded.
func terminated(r io.Reader) io.Reader {
	return io.MultiReader(r, strings.NewReader("\n"))
}

func drain(name string, dec *Decoder) error {
	_, err := drainChanged(name, dec)
	if err == nil && !dec.Headed() {
		err = ErrNoHeading
	}
	return err
}

// drainChanged decodes all available rows, logging and skipping bad ones.
func drainChanged(name string, dec *Decoder) (changed bool, err error) {
	for {
		c, err := dec.ReadAvailable()
		changed = changed || c
		var rowErr *RowError
		if errors.As(err, &rowErr) {
			log.Printf("%s: skipping row: %v", name, rowErr)
			continue
		}
		return changed, err
	}
}
