// Package stark generates succinct proofs for algebraic execution traces
// over the Goldilocks field.
//
// Given a power-of-two-height table of field elements and an air.AIR
// describing the constraints that must hold between consecutive rows, Prove
// commits the trace columns, derives combination challenges from a
// Fiat-Shamir transcript, folds all constraint evaluations into quotient
// polynomials over the vanishing polynomial of the trace domain, and backs
// the resulting evaluation claims with a FRI low-degree opening proof.
//
// The pipeline is staged strictly as commit(trace) -> derive alphas ->
// build and commit quotient -> derive zeta -> open at zeta and g*zeta ->
// low-degree argument; every phase absorbs its commitment into the
// transcript before the next challenge is derived.
package stark
