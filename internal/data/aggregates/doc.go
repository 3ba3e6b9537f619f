// Package aggregates contains the implementations of the sales contracts:
// customer registry, product catalog, order aggregate and payment ledger.
//
// Implementations compose table-level repos from internal/data/repos and own
// the transaction boundary of every write. Reads that must be consistent with
// a write happen inside that write's transaction.
package aggregates
