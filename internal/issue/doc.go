// SPDX-License-Identifier: MPL-2.0

// Package issue provides the error types that carry simulation context to
// the user: ActionableError for configuration and usage problems, DataError
// for failures tied to a model, package, and path, a Sink that receives
// DataErrors as they happen, and a catalog of Markdown guidance rendered
// with glamour.
package issue
