// Package billing provides the fee ledger domain for the tuition center.
//
// This package implements the billing bounded context, which is responsible for:
//   - Deriving the fee ledger (due amount, fee status) from a student's fee figures
//   - Building and resizing installment plans over a student's total fee
//   - Recording payments against a student's account
//
// Key Aggregates:
//   - Payment: Immutable record of a single payment received
//
// Value Objects:
//   - Ledger: Derived due amount and fee status, never persisted
//   - InstallmentPlan: Ordered amount/due-date tuples stored as JSONB
//
// The billing domain integrates with:
//   - Student domain: Fee figures live on the student aggregate
//   - Reporting domain: Ledgers feed the fee summary and dashboard
package billing
