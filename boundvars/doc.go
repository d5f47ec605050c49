// Package boundvars stores boundary-only adjoint quantities.
//
// Store holds two dense matrices shaped [NumSlots × NumDim]: the adjoint
// sensitivity of the externally applied flow tractions, and the source term
// injected into the displacement adjoint by a partner solver. Rows are keyed
// by compact vertex slot; all public accessors take the global node index and
// translate it through the vertex map. A non-vertex point is a defined
// silent default (writes are dropped, reads return zero), never an error —
// callers iterate over all mesh nodes uniformly and the accessor absorbs the
// boundary check.
//
// The matrices are allocated lazily, once, after boundary membership is
// final; runs without boundary coupling never pay for them.
package boundvars
