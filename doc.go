// Package banking provides a local-first bank ledger kept in a single CSV
// file, designed so that the file stays the one source of truth and can be
// read or repaired with ordinary tools.
//
// The core functionalities include:
//   - Ledger Record Store: keyed storage of account profiles with point
//     lookups by account number and by phone number, account number
//     generation under collision, and crash-safe single-field updates by
//     copy-and-swap of the whole file.
//   - Account Operations: opening accounts, deposits and withdrawals under a
//     configurable minimum-balance floor, and profile edits.
//   - Money: decimal amounts formatted in the ledger's currency.
//
// The amortization engine lives in the loan subpackage and reads applicant
// ages through the Store's read API only.
package banking
