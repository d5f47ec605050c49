package boundvars

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/fealab/adjbound/core"
	"github.com/fealab/adjbound/resource"
	"github.com/fealab/adjbound/vertexmap"
)

// ErrAlreadyAllocated is returned by Allocate after a successful allocation.
var ErrAlreadyAllocated = errors.New("boundary variables already allocated")

// ErrDimOutOfRange indicates a spatial dimension beyond the configured count.
type ErrDimOutOfRange struct {
	Dim    int
	NumDim int
}

func (e *ErrDimOutOfRange) Error() string {
	return fmt.Sprintf("dimension %d out of range: store holds %d dimensions", e.Dim, e.NumDim)
}

const bytesPerEntry = 8 // float64

// Store holds the boundary-only sensitivity and source-term matrices and
// gates access to them through a vertex map.
//
// Two-phase lifecycle: unallocated -> allocated. Before Allocate, all reads
// return zero and all writes are dropped. Allocate freezes the vertex map so
// the row count cannot be invalidated afterwards.
type Store struct {
	vm     *vertexmap.Map
	numDim int
	rc     *resource.Controller

	tractionSens  *mat.Dense
	dispAdjSource *mat.Dense
	allocated     bool
	sizeBytes     uint64
}

// New creates an unallocated Store over vm with numDim spatial dimensions.
// rc may be nil (no memory tracking).
func New(vm *vertexmap.Map, numDim int, rc *resource.Controller) *Store {
	return &Store{vm: vm, numDim: numDim, rc: rc}
}

// Allocate sizes both matrices to [NumSlots × NumDim], zero-filled, reading
// the vertex count from the map at call time, and freezes the map. The
// matrix bytes are acquired from the resource controller first; on a budget
// refusal or ctx cancellation the store stays unallocated.
//
// A second call fails with ErrAlreadyAllocated.
func (s *Store) Allocate(ctx context.Context) error {
	if s.allocated {
		return ErrAlreadyAllocated
	}

	s.vm.Freeze()

	rows := s.vm.NumSlots()
	if rows == 0 || s.numDim == 0 {
		s.allocated = true
		return nil
	}

	bytes := int64(rows) * int64(s.numDim) * bytesPerEntry * 2
	if err := s.rc.AcquireMemory(ctx, bytes); err != nil {
		return err
	}

	s.tractionSens = mat.NewDense(rows, s.numDim, nil)
	s.dispAdjSource = mat.NewDense(rows, s.numDim, nil)
	s.sizeBytes = uint64(bytes)
	s.allocated = true
	return nil
}

// Close releases the store's tracked memory back to the controller.
// The matrices themselves are reclaimed by the garbage collector.
func (s *Store) Close() {
	if s.sizeBytes > 0 {
		s.rc.ReleaseMemory(int64(s.sizeBytes))
		s.sizeBytes = 0
	}
	s.tractionSens = nil
	s.dispAdjSource = nil
	s.allocated = false
}

// SetFlowTractionSensitivity writes the traction sensitivity of point p in
// dimension dim. Dropped silently if p is not a boundary vertex or the store
// is unallocated.
func (s *Store) SetFlowTractionSensitivity(p core.PointIndex, dim int, v float64) error {
	if err := s.check(p, dim); err != nil {
		return err
	}
	slot, ok := s.vm.GetVertexIndex(p)
	if !ok || s.tractionSens == nil {
		return nil
	}
	s.tractionSens.Set(int(slot), dim, v)
	return nil
}

// FlowTractionSensitivity reads the traction sensitivity of point p in
// dimension dim. Zero if p is not a boundary vertex or the store is
// unallocated.
func (s *Store) FlowTractionSensitivity(p core.PointIndex, dim int) (float64, error) {
	if err := s.check(p, dim); err != nil {
		return 0, err
	}
	slot, ok := s.vm.GetVertexIndex(p)
	if !ok || s.tractionSens == nil {
		return 0, nil
	}
	return s.tractionSens.At(int(slot), dim), nil
}

// SetDispAdjointSourceTerm writes the displacement-adjoint source term of
// point p in dimension dim. Same silent-default contract as
// SetFlowTractionSensitivity.
func (s *Store) SetDispAdjointSourceTerm(p core.PointIndex, dim int, v float64) error {
	if err := s.check(p, dim); err != nil {
		return err
	}
	slot, ok := s.vm.GetVertexIndex(p)
	if !ok || s.dispAdjSource == nil {
		return nil
	}
	s.dispAdjSource.Set(int(slot), dim, v)
	return nil
}

// DispAdjointSourceTerm reads the displacement-adjoint source term of point p
// in dimension dim. Same silent-default contract as FlowTractionSensitivity.
func (s *Store) DispAdjointSourceTerm(p core.PointIndex, dim int) (float64, error) {
	if err := s.check(p, dim); err != nil {
		return 0, err
	}
	slot, ok := s.vm.GetVertexIndex(p)
	if !ok || s.dispAdjSource == nil {
		return 0, nil
	}
	return s.dispAdjSource.At(int(slot), dim), nil
}

func (s *Store) check(p core.PointIndex, dim int) error {
	if int(p) >= s.vm.NumPoints() {
		return &vertexmap.ErrOutOfRange{Point: p, NumPoints: s.vm.NumPoints()}
	}
	if dim < 0 || dim >= s.numDim {
		return &ErrDimOutOfRange{Dim: dim, NumDim: s.numDim}
	}
	return nil
}

// Allocated reports whether the matrices have been sized.
func (s *Store) Allocated() bool { return s.allocated }

// Rows returns the allocated row count (slot count at allocation time).
func (s *Store) Rows() int {
	if s.tractionSens == nil {
		return 0
	}
	r, _ := s.tractionSens.Dims()
	return r
}

// NumDim returns the spatial dimension count.
func (s *Store) NumDim() int { return s.numDim }

// SizeBytes returns the tracked size of both matrices in bytes.
func (s *Store) SizeBytes() uint64 { return s.sizeBytes }

// VertexMap returns the gate map the store translates indices through.
func (s *Store) VertexMap() *vertexmap.Map { return s.vm }

// FlowTractionSens returns the slot-ordered sensitivity matrix, or nil before
// allocation. Row i belongs to the vertex holding slot i.
func (s *Store) FlowTractionSens() *mat.Dense { return s.tractionSens }

// DispAdjSource returns the slot-ordered source-term matrix, or nil before
// allocation.
func (s *Store) DispAdjSource() *mat.Dense { return s.dispAdjSource }
