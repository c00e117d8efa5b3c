package emit

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/bindgen/registry"
)

// Result holds everything emitted for one function.
type Result struct {
	Function  *registry.Function
	Native    string
	Java      string
	Invoke    string
	Overloads []string
	// JNI holds the C function, followed by the array overload when
	// there is one.
	JNI []string
}

// Emit renders all glue for fn.
func (e *Emitter) Emit(fn *registry.Function) (Result, error) {
	r := Result{
		Function: fn,
		Native:   e.NativeMethod(fn),
		Invoke:   e.InvokeName(fn),
	}
	var err error
	if r.Java, err = e.JavaMethod(fn); err != nil {
		return Result{}, err
	}
	if r.Overloads, err = e.ArrayOverloads(fn); err != nil {
		return Result{}, err
	}
	jni, err := e.JNIFunction(fn, false)
	if err != nil {
		return Result{}, err
	}
	r.JNI = append(r.JNI, jni)
	if r.Overloads != nil {
		if jni, err = e.JNIFunction(fn, true); err != nil {
			return Result{}, err
		}
		r.JNI = append(r.JNI, jni)
	}

	Logger().Debug("emitted function",
		zap.String("class", fn.Class),
		zap.String("name", fn.Name),
		zap.String("invoke", r.Invoke),
		zap.Int("overloads", len(r.Overloads)/2))
	return r, nil
}

// Batch emits fns in parallel with at most workers goroutines (no limit
// when workers <= 0). Results keep the order of fns. The first error
// cancels the remaining work.
func (e *Emitter) Batch(ctx context.Context, fns []*registry.Function, workers int) ([]Result, error) {
	results := make([]Result, len(fns))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, fn := range fns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := e.Emit(fn)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
