// Package logging is the small Logger interface the reducer and the
// application log through, with a zerolog backend for real runs and a
// standard library backend for tests and embedders.
package logging
