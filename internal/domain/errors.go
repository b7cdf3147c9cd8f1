package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. A per-cliente query
// for an unknown id resolves to ErrClienteNotFound so callers can render a
// fallback instead of failing.

var (
	ErrClienteNotFound = errors.New("cliente not found")
	ErrEmptyDataset    = errors.New("dataset contains no clientes")
)
