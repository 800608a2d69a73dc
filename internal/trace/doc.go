// Package trace records compiler activity as a stream of span and point
// events.
//
// Tracing is enabled from the command line:
//
//	vecl build --trace=- --trace-level=phase main.vl
//
// A Tracer is carried through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "infer", 0)
//	defer span.End("")
//
// Scopes go from coarse to fine: driver, pass, function, node. The level
// decides which scopes are written.
package trace
