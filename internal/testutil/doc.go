// Package testutil provides builders for metric records and ledgers used
// across the module's tests.
package testutil
