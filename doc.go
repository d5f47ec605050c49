// Package adjbound provides boundary-restricted adjoint variable storage for
// finite-element solvers.
//
// A discrete-adjoint FEA run stores displacement (and, in time-domain runs,
// velocity and acceleration) adjoints densely for every mesh node. Two more
// quantities — the sensitivity of externally applied flow tractions, and the
// source term a partner solver injects into the displacement adjoint — are
// only meaningful on the domain boundary, which is usually a small fraction
// of the mesh. BoundState composes the dense volumetric container with a
// compact boundary extension so those quantities cost memory proportional to
// the boundary, not the mesh.
//
// # Quick Start
//
//	ctx := context.Background()
//	st, _ := adjbound.New(ctx, numPoints, numDim,
//	    adjbound.WithBoundaryCoupling(),
//	    adjbound.WithTimeDomain(),
//	)
//
//	// Problem setup: classify boundary nodes, then size boundary storage.
//	for _, p := range boundaryNodes {
//	    _ = st.SetVertex(p, true)
//	}
//	_ = st.AllocateBoundaryVariables(ctx)
//
//	// Adjoint iterations: accessors take the global node index and no-op
//	// on interior nodes, so loops over the whole mesh need no branching.
//	for p := core.PointIndex(0); int(p) < numPoints; p++ {
//	    v, _ := st.FlowTractionSensitivity(p, 0)
//	    _ = v // zero for interior nodes
//	}
//
// Boundary slots are assigned in marking order; the exchange package relies
// on that order when packing coupling buffers for the partner solver.
//
// The package performs no internal locking. Concurrent writes are safe only
// when each worker owns a disjoint set of global node indices, matching the
// usual mesh-partition decomposition of the surrounding solver.
package adjbound
