// Package audit triggers the database-side security audit and reshapes its
// rows into a summary report.
//
// The checks themselves live in a stored function; this package only invokes
// it, counts outcomes, and serves the result at POST /audit behind a bearer token.
package audit
