// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules defined
// in struct tags and turns failures into client errors.
package validation
