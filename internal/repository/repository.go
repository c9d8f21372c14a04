// Package repository handles all interactions with the topic store.
//
// It reads the static topics source, checks its shape and decodes the
// records, abstracting storage away from the service layer.
package repository
