// Package plan implements the fuel load planning engine: density and thermal
// correction, bias mapping, capacity-respecting proportional allocation and
// the weight-constrained capacity search tying them together. Every function
// here is a deterministic, side-effect-free function of its inputs; callers
// recompute plans whenever any tracked input changes.
package plan
