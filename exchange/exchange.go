package exchange

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/fealab/adjbound/boundvars"
	"github.com/fealab/adjbound/core"
	"github.com/fealab/adjbound/vertexmap"
)

// ErrNotAllocated indicates a gather/scatter against an unallocated store.
var ErrNotAllocated = errors.New("boundary variables not allocated")

// ErrBufferSize indicates a partner buffer whose length does not match the
// store's slot-ordered layout.
type ErrBufferSize struct {
	Got  int
	Want int
}

func (e *ErrBufferSize) Error() string {
	return fmt.Sprintf("coupling buffer length %d does not match %d (rows × dims)", e.Got, e.Want)
}

// GatherSensitivities packs the flow-traction sensitivity matrix into a flat
// buffer laid out [slot0 dims..., slot1 dims..., ...]. dst is reused when it
// has sufficient capacity; pass nil to allocate.
func GatherSensitivities(st *boundvars.Store, dst []float64) ([]float64, error) {
	if !st.Allocated() {
		return nil, ErrNotAllocated
	}

	rows, dims := st.Rows(), st.NumDim()
	need := rows * dims
	if cap(dst) < need {
		dst = make([]float64, need)
	} else {
		dst = dst[:need]
	}

	m := st.FlowTractionSens()
	for i := 0; i < rows; i++ {
		copy(dst[i*dims:(i+1)*dims], m.RawRowView(i))
	}
	return dst, nil
}

// ScatterSourceTerms unpacks a partner buffer, laid out exactly as produced
// by GatherSensitivities, into the displacement-adjoint source-term matrix.
func ScatterSourceTerms(st *boundvars.Store, src []float64) error {
	if !st.Allocated() {
		return ErrNotAllocated
	}

	rows, dims := st.Rows(), st.NumDim()
	if len(src) != rows*dims {
		return &ErrBufferSize{Got: len(src), Want: rows * dims}
	}

	m := st.DispAdjSource()
	for i := 0; i < rows; i++ {
		m.SetRow(i, src[i*dims:(i+1)*dims])
	}
	return nil
}

// MarkFromClassifier marks every point for which classify returns true as a
// boundary vertex.
//
// Classification runs on up to workers goroutines over disjoint index ranges;
// the marking pass itself is sequential and ascends the global index, so the
// resulting slot assignment is the ascending-index order independent of
// workers. classify must be safe for concurrent calls on distinct indices.
func MarkFromClassifier(ctx context.Context, m *vertexmap.Map, classify func(core.PointIndex) bool, workers int) error {
	n := m.NumPoints()
	if n == 0 {
		return ctx.Err()
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	flags := make([]bool, n)
	chunk := (n + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		lo := lo
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				flags[i] = classify(core.PointIndex(i))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, isVertex := range flags {
		if !isVertex {
			continue
		}
		if err := m.SetIsVertex(core.PointIndex(i), true); err != nil {
			return err
		}
	}
	return nil
}
