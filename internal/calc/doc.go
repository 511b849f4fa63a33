// Package calc holds the financial calculations behind the dashboard:
// locale-aware decimal input handling, the total/quantity/price field solver,
// per-transaction and portfolio gain/loss, and futures P&L with fee accrual.
//
// Every function is pure. Callers pass fully materialized records and market
// values and receive fresh results; nothing here performs I/O or keeps state
// between calls, so the functions are safe for concurrent use.
package calc
