// Package orchestration runs one reduction per selected strategy concurrently
// and compares their sums. It decouples the reducers from presentation via
// the ProgressReporter and ResultPresenter interfaces.
package orchestration
