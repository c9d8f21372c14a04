// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated queries from the handler, loads
// topics through the repository and runs the filter, sort
// and projection stages on them.
package service
