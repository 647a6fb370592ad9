// Package finance computes the balances and statistics of a personal budget:
// bank accounts, their transactions and the recurring transactions expected
// in the future.
//
// Every computation is a pure function of its inputs, no state is kept
// between calls and the input slices are never modified:
//   - Replay: reconstructs the balance of an account at any date from its
//     current balance, walking the history backward.
//   - Aggregate and Buckets: income, expenses and transfers over a period,
//     in total or split in daily, weekly or monthly buckets for charts.
//   - FindDivergent: transactions whose period depends on the date field
//     used (accounting or value date) and the impact of switching.
//   - Occurrences and Project: the dates of recurring transactions and the
//     balance they lead to.
//
// Amounts are exact decimals, a replay forward then backward always returns
// the balance it started from.
//
// This package serves as the foundational logic for the `fin` command-line
// tool, reading the data files described by DecodeLedger.
package finance
