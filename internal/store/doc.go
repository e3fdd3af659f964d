// Package store provides a SQLite-backed cache of CAS optimization results.
//
// Each row maps a request key (ir.RequestKey over the submitted lines) to the
// lines the CAS printed. Rows are append-only: the first result stored for a
// key wins and later writes are ignored. Lines come back exactly as stored,
// byte for byte.
//
// Ordering uses the seq column (insertion order), never timestamps, so
// listings are stable across runs. Ties break on request_key COLLATE BINARY.
//
// The cache only saves CAS time. A row lost to a crash is recomputed on the
// next request, so commits are not fsynced individually (WAL with
// synchronous=NORMAL). Several gappc processes may share one file; writers
// wait on the lock instead of failing. Purge or delete the file at will.
package store
