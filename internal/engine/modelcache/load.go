package modelcache

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"time"

	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/modelcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// LoadOrCreate returns the model identified by project and name.
//
// A model recorded in this session, or inherited from the previous one, is
// read back from the block store and create is not called. Otherwise create
// runs, inside the fingerprint scope of project unless project is zero, and
// its result is stored and recorded. Concurrent calls for the same identity
// share a single computation.
//
// Errors from create are returned unchanged and record nothing, so a later
// call computes again. A recorded model that cannot be read back is an error
// and is never recomputed in this session; it is left out of the snapshot so
// the next session computes it afresh.
func LoadOrCreate[T any](
	ctx context.Context,
	c *Controller,
	project domain.Path,
	name string,
	create func(ctx context.Context) (T, error),
) (T, error) {
	var zero T
	key := domain.NewModelKey(project, name)

	if c.closed.Load() {
		return zero, zerr.With(domain.ErrCacheClosed, "model", key.String())
	}

	if addr, source, ok := c.locate(key); ok {
		return load[T](c, key, addr, source)
	}

	result, err, _ := c.flights.Do(flightKey(key), func() (any, error) {
		// Another flight for key may have finished since the lookup above.
		if addr, source, ok := c.locate(key); ok {
			return load[T](c, key, addr, source)
		}
		return compute(ctx, c, key, create)
	})
	if err != nil {
		return zero, err
	}

	value, ok := result.(T)
	if !ok {
		err := zerr.With(domain.ErrModelTypeMismatch, "model", key.String())
		return zero, zerr.With(err, "type", fmt.Sprintf("%T", result))
	}
	return value, nil
}

// flightKey is unambiguous for any project path and name.
func flightKey(key domain.ModelKey) string {
	return key.Project.String() + "\x00" + key.Name
}

func load[T any](c *Controller, key domain.ModelKey, addr domain.BlockAddress, source ports.LoadSource) (T, error) {
	var value T

	store, err := c.store.get()
	if err == nil {
		err = store.Read(addr, func(r io.Reader) error {
			return c.codec.Decode(r, &value)
		})
		if err != nil {
			c.markUnreadable(key, addr)
		}
	}
	if err != nil {
		c.failed.Add(1)
		c.metrics.ModelFailed(key)
		err = zerr.With(zerr.Wrap(err, domain.ErrModelReadFailed.Error()), "model", key.String())
		return value, zerr.With(err, "address", addr.String())
	}

	if source == ports.SourcePrevious {
		c.promoted.Add(1)
	} else {
		c.hits.Add(1)
	}
	c.metrics.ModelLoaded(key, source)
	return value, nil
}

func compute[T any](
	ctx context.Context,
	c *Controller,
	key domain.ModelKey,
	create func(ctx context.Context) (T, error),
) (T, error) {
	ctx, span := c.tracer.Start(ctx, "model.compute")
	defer span.End()
	span.SetAttribute("model.key", key.String())
	if key.HasProject() {
		span.SetAttribute("model.project", key.Project.String())
	}

	start := time.Now()
	var value T
	run := func(ctx context.Context) error {
		v, err := create(ctx)
		if err != nil {
			return err
		}
		if isNil(v) {
			return zerr.With(domain.ErrNilModel, "model", key.String())
		}
		value = v
		return nil
	}

	var err error
	if key.HasProject() {
		err = c.fingerprints.CollectFingerprintForProject(ctx, key.Project, run)
	} else {
		err = run(ctx)
	}
	if err == nil {
		var addr domain.BlockAddress
		addr, err = c.write(key, value)
		if err == nil {
			c.record(key, addr)
		}
	}
	if err != nil {
		c.failed.Add(1)
		c.metrics.ModelFailed(key)
		span.RecordError(err)
		var zero T
		return zero, err
	}

	c.computed.Add(1)
	c.metrics.ModelComputed(key, time.Since(start))
	return value, nil
}

func (c *Controller) write(key domain.ModelKey, value any) (domain.BlockAddress, error) {
	store, err := c.store.get()
	if err != nil {
		return domain.BlockAddress{}, zerr.With(zerr.Wrap(err, domain.ErrModelWriteFailed.Error()), "model", key.String())
	}

	addr, err := store.Write(func(w io.Writer) error {
		return c.codec.Encode(w, value)
	})
	if err != nil {
		return domain.BlockAddress{}, zerr.With(zerr.Wrap(err, domain.ErrModelWriteFailed.Error()), "model", key.String())
	}
	return addr, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
