// Package plan computes economic dispatch plans for a fleet of generation
// units. Units are ranked in merit order (cost per MWh ascending), power is
// allocated greedily up to each unit's available capacity, and a repair pass
// removes overproduction caused by minimum-output commitments. An optional
// linear-programming relaxation can be solved first.
//
// All functions are pure: a computation holds no state across calls and
// performs no I/O, so concurrent invocations need no locking.
package plan
