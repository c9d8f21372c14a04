// Package lib holds helpers that do not belong strictly to any layer.
package lib
