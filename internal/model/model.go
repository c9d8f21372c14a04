// Package model holds the domain records and request DTOs shared by the
// repository, service and handler layers.
package model
