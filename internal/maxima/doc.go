// Package maxima hands symbolic sub-expressions to an external computer
// algebra system and collects its output.
//
// A ProcessConnection writes the request lines to a temporary file, runs the
// CAS in batch mode on that file ("maxima -b <file>"), and returns every line
// the process printed on stdout. The temporary file is removed on every path.
// Calls are independent and may run concurrently.
//
// Every failure (spawn, I/O, non-zero exit, timeout) is reported as an
// *Error that matches ErrUnavailable, so callers can fall back to leaving
// the expression unoptimized.
//
// CachedConnection memoizes results in a store keyed by ir.RequestKey, and
// OptimizeAll runs a batch of requests with bounded concurrency.
package maxima
