// Package loan computes reducing-balance repayment schedules.
//
// A loan is priced by a tier, selected from the applicant's age and the loan
// term, and repaid by a fixed monthly installment (EMI). The Engine persists
// each schedule as a CSV file keyed by term and principal next to the ledger.
package loan
