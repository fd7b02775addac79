package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dieledev/showcase/internal/logger"
)

// Document is one whole-document resource. Reads walk the sources in order
// and fall back to the compiled default; writes go to the sink only.
//
// There is no locking across a read-modify-write cycle. Two concurrent
// writers both succeed and the later one wins.
type Document[T any] struct {
	name    string
	sources []Source
	sink    Sink
	decode  func([]byte) (T, error)
	encode  func(T) ([]byte, error)
	def     func() T
	log     logger.Logger

	mu     sync.Mutex
	served string
}

func (d *Document[T]) Name() string { return d.name }

func (d *Document[T]) Read(ctx context.Context) (T, error) {
	for _, src := range d.sources {
		data, err := src.Read(ctx)
		if err != nil {
			if errors.Is(err, ErrLoadFailed) {
				readsTotal.WithLabelValues(d.name, "error").Inc()
				var zero T
				return zero, fmt.Errorf("reading %s: %w", d.name, err)
			}
			d.log.Debug("source skipped", logger.String("source", src.Name()), logger.Error(err))
			continue
		}

		v, err := d.decode(data)
		if err != nil {
			d.log.Debug("undecodable document", logger.String("source", src.Name()), logger.Error(err))
			continue
		}
		d.markServed(src.Name())
		return v, nil
	}
	d.markServed("default")
	return d.def(), nil
}

func (d *Document[T]) Write(ctx context.Context, v T) error {
	if d.sink == nil {
		writesTotal.WithLabelValues(d.name, "failed").Inc()
		return fmt.Errorf("%w: %s: no storage configured", ErrSaveFailed, d.name)
	}
	data, err := d.encode(v)
	if err != nil {
		writesTotal.WithLabelValues(d.name, "failed").Inc()
		return fmt.Errorf("%w: encoding %s: %v", ErrSaveFailed, d.name, err)
	}
	if err := d.sink.Write(ctx, data); err != nil {
		writesTotal.WithLabelValues(d.name, "failed").Inc()
		d.log.Error("document write failed", logger.String("sink", d.sink.Name()), logger.Error(err))
		return err
	}
	writesTotal.WithLabelValues(d.name, "ok").Inc()
	return nil
}

// Served returns the source that answered the last read, or "" before any.
func (d *Document[T]) Served() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.served
}

func (d *Document[T]) markServed(source string) {
	readsTotal.WithLabelValues(d.name, source).Inc()
	d.mu.Lock()
	d.served = source
	d.mu.Unlock()
}

// Status describes the wiring and cache state of the document.
func (d *Document[T]) Status() DocumentStatus {
	st := DocumentStatus{Name: d.name, LastServed: d.Served()}
	for _, src := range d.sources {
		st.Sources = append(st.Sources, src.Name())
		if r, ok := src.(*RemoteSource); ok {
			st.Key = r.Key()
			st.Cache = r.State()
		}
	}
	st.Sources = append(st.Sources, "default")
	if d.sink != nil {
		st.Sink = d.sink.Name()
	}
	return st
}

type DocumentStatus struct {
	Name       string     `json:"name"`
	Key        string     `json:"key,omitempty"`
	Sources    []string   `json:"sources"`
	Sink       string     `json:"sink,omitempty"`
	LastServed string     `json:"lastServed,omitempty"`
	Cache      CacheState `json:"cache,omitempty"`
}
