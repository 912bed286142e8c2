// Package mobility evaluates the hydrodynamic mobility of spherical blobs
// suspended in a viscous fluid above a single no-slip wall at z = 0.
//
// The central operation is the product M*F of the wall-corrected
// Rotne-Prager mobility tensor with a force field, computed without ever
// forming the dense 3N x 3N matrix:
//
//	u := mobility.SingleWallMobilityTransTimesForce(positions, forces, eta, a, box)
//
// Every blob shares the same hydrodynamic radius a and must sit strictly
// above the wall. The pairwise far field is the classical Rotne-Prager
// tensor, blobs closer than two radii use the regularized overlap form, and
// the image-system (Blake) correction for the wall is added to every pair.
//
// Known limitations, preserved from the reference operator: there is no
// periodic-image handling (the box argument is accepted and ignored) and no
// guard against coincident blobs or blobs on the wall. Both are
// precondition violations that propagate NaN/Inf instead of failing; the
// [SingleWall] operator type rejects the cheaply detectable ones before
// entering the O(N^2) loop.
package mobility
