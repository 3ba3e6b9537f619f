// Package aggregates defines domain-facing component contracts for the order
// management tool: the customer registry, the product catalog, the order
// aggregate and the payment ledger.
//
// These contracts avoid persistence details and represent the write
// boundaries where invariants must be enforced atomically.
package aggregates
