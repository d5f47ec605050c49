package adjbound

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/fealab/adjbound/core"
	"github.com/fealab/adjbound/resource"
	"github.com/fealab/adjbound/vertexmap"
)

const bytesPerEntry = 8 // float64

// State is the dense volumetric adjoint container: the displacement adjoint
// for every mesh node, plus velocity and acceleration adjoints in time-domain
// runs. Rows are keyed directly by the global node index.
type State struct {
	numPoints int
	numVar    int

	sol      *mat.Dense
	solVel   *mat.Dense // nil in steady runs
	solAccel *mat.Dense // nil in steady runs

	rc        *resource.Controller
	sizeBytes uint64
}

func newState(ctx context.Context, numPoints, numVar int, timeDomain bool, rc *resource.Controller) (*State, error) {
	s := &State{numPoints: numPoints, numVar: numVar, rc: rc}
	if numPoints == 0 || numVar == 0 {
		return s, nil
	}

	matrices := int64(1)
	if timeDomain {
		matrices = 3
	}
	bytes := int64(numPoints) * int64(numVar) * bytesPerEntry * matrices
	if err := rc.AcquireMemory(ctx, bytes); err != nil {
		return nil, err
	}
	s.sizeBytes = uint64(bytes)

	s.sol = mat.NewDense(numPoints, numVar, nil)
	if timeDomain {
		s.solVel = mat.NewDense(numPoints, numVar, nil)
		s.solAccel = mat.NewDense(numPoints, numVar, nil)
	}
	return s, nil
}

// NumPoints returns the total node count.
func (s *State) NumPoints() int { return s.numPoints }

// NumVar returns the adjoint variable count per node.
func (s *State) NumVar() int { return s.numVar }

// TimeDomain reports whether velocity/acceleration adjoints are allocated.
func (s *State) TimeDomain() bool { return s.solVel != nil }

// SetSolution writes the displacement adjoint of point p, variable v.
func (s *State) SetSolution(p core.PointIndex, v int, val float64) error {
	if err := s.check(p, v); err != nil {
		return err
	}
	s.sol.Set(int(p), v, val)
	return nil
}

// Solution reads the displacement adjoint of point p, variable v.
func (s *State) Solution(p core.PointIndex, v int) (float64, error) {
	if err := s.check(p, v); err != nil {
		return 0, err
	}
	return s.sol.At(int(p), v), nil
}

// SetSolutionVel writes the velocity adjoint. A no-op in steady runs.
func (s *State) SetSolutionVel(p core.PointIndex, v int, val float64) error {
	if err := s.check(p, v); err != nil {
		return err
	}
	if s.solVel == nil {
		return nil
	}
	s.solVel.Set(int(p), v, val)
	return nil
}

// SolutionVel reads the velocity adjoint. Zero in steady runs.
func (s *State) SolutionVel(p core.PointIndex, v int) (float64, error) {
	if err := s.check(p, v); err != nil {
		return 0, err
	}
	if s.solVel == nil {
		return 0, nil
	}
	return s.solVel.At(int(p), v), nil
}

// SetSolutionAccel writes the acceleration adjoint. A no-op in steady runs.
func (s *State) SetSolutionAccel(p core.PointIndex, v int, val float64) error {
	if err := s.check(p, v); err != nil {
		return err
	}
	if s.solAccel == nil {
		return nil
	}
	s.solAccel.Set(int(p), v, val)
	return nil
}

// SolutionAccel reads the acceleration adjoint. Zero in steady runs.
func (s *State) SolutionAccel(p core.PointIndex, v int) (float64, error) {
	if err := s.check(p, v); err != nil {
		return 0, err
	}
	if s.solAccel == nil {
		return 0, nil
	}
	return s.solAccel.At(int(p), v), nil
}

func (s *State) check(p core.PointIndex, v int) error {
	if int(p) >= s.numPoints {
		return translateError(&vertexmap.ErrOutOfRange{Point: p, NumPoints: s.numPoints})
	}
	if v < 0 || v >= s.numVar {
		return ErrOutOfRange
	}
	return nil
}

func (s *State) release() {
	if s.sizeBytes > 0 {
		s.rc.ReleaseMemory(int64(s.sizeBytes))
		s.sizeBytes = 0
	}
	s.sol = nil
	s.solVel = nil
	s.solAccel = nil
}
