package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/slotkit/optvec"
)

// runner applies a random workload to an OptVec and to a model of it, and
// fails as soon as the two disagree.
//
// The model is an intmap of live index to expected value plus a stack of the
// holes the OptVec should reuse next.
type runner struct {
	vec      *optvec.OptVec[uint64]
	oracle   *intmap.Map[int, uint64]
	holes    []int
	workload Workload
	rng      *rand.Rand
	logger   *slog.Logger

	next     uint64
	ops      [numOps]int64
	verifies int64
}

func newRunner(w Workload, seed uint64, prefill int, logger *slog.Logger) *runner {
	r := &runner{
		vec:      optvec.WithCapacity[uint64](prefill),
		oracle:   intmap.New[int, uint64](max(prefill, 64)),
		workload: w,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger:   logger,
	}
	for range prefill {
		if err := r.push(); err != nil {
			panic(err)
		}
	}
	return r
}

// run steps until ctx is done or a check fails.
func (r *runner) run(ctx context.Context) error {
	total := r.workload.total()
	var n int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			op := r.workload.pick(r.rng.IntN(total))
			if err := r.step(op); err != nil {
				return fmt.Errorf("op %d (%s): %w", n, op, err)
			}
			n++

			if n%int64(r.workload.VerifyEvery) == 0 {
				if err := r.verify(); err != nil {
					return fmt.Errorf("verify after op %d: %w", n, err)
				}
			}
		}
	}

	return r.verify()
}

func (r *runner) step(op opKind) error {
	// Operations that need an existing slot fall back to push on an empty vec.
	if op != opPush && r.vec.RawLen() == 0 {
		op = opPush
	}
	r.ops[op]++

	switch op {
	case opRemove:
		return r.remove()
	case opPop:
		return r.pop()
	case opSet:
		return r.set()
	default:
		return r.push()
	}
}

func (r *runner) push() error {
	want := r.vec.RawLen()
	if n := len(r.holes); n > 0 {
		want = r.holes[n-1]
		r.holes = r.holes[:n-1]
	}

	r.next++
	got := r.vec.Push(r.next)
	if got != want {
		return fmt.Errorf("push returned index %d, expected %d", got, want)
	}
	r.oracle.Put(got, r.next)
	return nil
}

func (r *runner) remove() error {
	i := r.rng.IntN(r.vec.RawLen())
	want, live := r.oracle.Get(i)

	got, ok := r.vec.Remove(i)
	if ok != live {
		return fmt.Errorf("remove(%d) reported occupied=%t, expected %t", i, ok, live)
	}
	if !live {
		return nil
	}
	if got != want {
		return fmt.Errorf("remove(%d) returned %d, expected %d", i, got, want)
	}
	r.oracle.Del(i)
	r.holes = append(r.holes, i)
	return nil
}

func (r *runner) pop() error {
	i := r.vec.RawLen() - 1
	want, live := r.oracle.Get(i)

	got, ok := r.vec.Pop()
	if ok != live {
		return fmt.Errorf("pop at %d reported occupied=%t, expected %t", i, ok, live)
	}
	if live {
		if got != want {
			return fmt.Errorf("pop at %d returned %d, expected %d", i, got, want)
		}
		r.oracle.Del(i)
		return nil
	}
	if j := slices.Index(r.holes, i); j >= 0 {
		r.holes = slices.Delete(r.holes, j, j+1)
	}
	return nil
}

func (r *runner) set() error {
	i := r.rng.IntN(r.vec.RawLen())
	_, live := r.oracle.Get(i)

	r.next++
	err := r.vec.Set(i, r.next)
	switch {
	case live && err != nil:
		return fmt.Errorf("set(%d) on occupied slot: %w", i, err)
	case !live && !errors.Is(err, optvec.ErrEmptySlot):
		return fmt.Errorf("set(%d) on empty slot returned %v, expected %v", i, err, optvec.ErrEmptySlot)
	case live:
		r.oracle.Put(i, r.next)
	}
	return nil
}

// verify compares the whole OptVec against the model.
func (r *runner) verify() error {
	r.verifies++

	if r.vec.Len() != r.oracle.Len() {
		return fmt.Errorf("len %d, expected %d", r.vec.Len(), r.oracle.Len())
	}
	if r.vec.FreeLen() != len(r.holes) {
		return fmt.Errorf("free len %d, expected %d", r.vec.FreeLen(), len(r.holes))
	}
	if r.vec.Len()+r.vec.FreeLen() != r.vec.RawLen() {
		return fmt.Errorf("len %d + free %d != raw len %d", r.vec.Len(), r.vec.FreeLen(), r.vec.RawLen())
	}

	for i := range r.vec.RawLen() {
		want, live := r.oracle.Get(i)
		if r.vec.Has(i) != live {
			return fmt.Errorf("slot %d occupied=%t, expected %t", i, r.vec.Has(i), live)
		}
		if live && *r.vec.At(i) != want {
			return fmt.Errorf("slot %d holds %d, expected %d", i, *r.vec.At(i), want)
		}
	}

	r.logger.Debug("verify passed",
		"len", r.vec.Len(),
		"raw_len", r.vec.RawLen(),
		"free", r.vec.FreeLen(),
	)
	return nil
}
