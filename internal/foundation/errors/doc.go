// Package errors provides the classified error type used across seekinject.
//
// Every failure that reaches the CLI carries a category (config, validation,
// not_found, filesystem, ...) and a severity. Fatal errors abort a run before
// any page is touched; warnings describe a single page that could not be
// processed while the run carried on.
//
// Example usage:
//
//	err := errors.NotFoundError("site root does not exist").
//		WithContext("path", root).
//		WithCause(statErr).
//		Build()
package errors
