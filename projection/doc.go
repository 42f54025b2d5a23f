// Package projection tabulates and evaluates the second-order projection
// functions
//
//	J_Llm(x) = (-1)^m (2L+1) sum_l1 s(l1) (2l1+1) j_l1(x) (l l1 L; a 0 -a) (l l1 L; -m 0 m)
//
// which replace the spherical Bessel function j_l(x) in the line-of-sight
// integration of second-order observables. a is 0 for the temperature
// function [TT] and 2 for the polarised functions [EE] and [EB]; TT and EE
// sum over even l+l1+L, EB over odd. J_0l0 reduces to j_l.
//
// # Tables
//
// [Init] builds a uniform grid on [0, xx_max], tabulates j_l1 for every l1
// of the l1-list and then every enabled J_Llm. Each function is stored
// sparsely: only the contiguous range of nodes where it exceeds its cutoff
// is kept, together with natural cubic spline second derivatives. Both
// fills run in parallel, one goroutine per function.
//
//	cfg := projection.DefaultConfig()
//	cfg.Multipoles = []int{2, 10, 50}
//	cfg.M = []int{0, 1, 2}
//	tables, err := projection.Init(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer tables.Free()
//	v, err := tables.JAt(projection.TT, 2, 10, 0, 500)
//
// # Evaluation
//
// [Tables.J] and [Tables.JAt] interpolate a projection function,
// [Tables.BesselAt] and [Tables.BesselAtLinear] a Bessel function. Points
// outside the stored range evaluate to zero; points outside the grid are
// domain errors. [Tables.Convolve] and [Tables.ConvolveJ] integrate a
// product of two sampled functions against a tabulated kernel.
//
// # Errors
//
// Failures are *[Error] values classified by [ErrorKind]; test them with
// errors.Is against [ErrConfig], [ErrAllocation] or [ErrDomain].
// [ErrNoAdmissibleL1] marks a function that vanishes by the selection
// rules.
//
// # Observability
//
// [WithLogger], [WithRegisterer] and [WithTracerProvider] attach a zap
// logger, a Prometheus registerer and an OpenTelemetry tracer provider.
package projection
