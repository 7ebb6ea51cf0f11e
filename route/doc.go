// Package route turns an abstract visiting order into a concrete walkable
// polyline over the street network.
//
// The optimizer works on stop indices and a distance matrix; this package
// re-attaches the geometry. For every leg of the tour it reconstructs the
// street-level shortest path between the two snapped stop nodes, reusing
// the predecessor trees the matrix builder already computed and lazily
// recomputing the ones the builder served from cache.
//
// Guarantees:
//
//   - Legs share boundary nodes: each leg starts exactly where the previous
//     one ended, and the concatenated polyline never repeats the shared
//     node.
//   - The summed leg lengths are cross-checked against the optimizer's
//     reported distance; disagreement beyond a small relative tolerance is
//     a hard error (ErrDistanceMismatch), never silently patched over.
//
// Errors (sentinel): ErrNilInput, ErrBadOrder, ErrDistanceMismatch, plus
// network.ErrNoPath wrapped when a leg cannot be traced.
package route
