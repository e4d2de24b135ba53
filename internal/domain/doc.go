// Package domain defines the core business types for the newsletter service.
//
// The Subscriber aggregate owns its own invariants: every instance reachable
// from this package was either built through the validating constructors or
// rehydrated from rows that passed validation before they were persisted.
//
// Rules for this package:
//   - No imports from other internal/ packages
//   - No *sql.DB, no http.Request in struct fields
//   - Untrusted input enters only through the Parse* constructors; the
//     Rehydrate* constructors exist for the persistence layer alone
package domain
