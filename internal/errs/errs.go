// Package errs define custom error types and utilities.
//
// Its purpose is to give every failure that reaches the client a single,
// stable shape:
//
//	{ "error": "Invalid search query" }
//
// Internal details (codes, wrapped causes) stay server side.
package errs
