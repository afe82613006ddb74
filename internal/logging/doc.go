// Package logging provides the structured logging interface used by fibconv.
// Components log through Logger; the zerolog adapter is the default backend
// and a standard library adapter exists for embedders.
package logging
