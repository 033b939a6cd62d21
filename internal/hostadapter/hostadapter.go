// Package hostadapter defines the driving-port boundary between an analysis
// run and whatever is watching it: a CLI terminal UI, a watch-mode loop, or
// a test double. It is grounded on the teacher's internal/core/ports/ports.go
// driving-port idiom, narrowed to a single closed interface instead of a
// stringly-typed {command,data} protocol.
package hostadapter

// Stage is the closed set of progress checkpoints a run reports through.
type Stage string

const (
	StageScanStart Stage = "scan-start"
	StageScanDone  Stage = "scan-done"
	StageDepsStart Stage = "deps-start"
	StageDepsDone  Stage = "deps-done"
	StageDone      Stage = "done"
)

// Adapter receives progress and error notifications from a running
// analysis. Percent may be nil when a stage has no meaningful completion
// fraction (e.g. StageScanStart and StageDepsStart).
type Adapter interface {
	Progress(stage Stage, message string, percent *int)
	Error(kind string, path string, cause error)
}

// Noop is an Adapter that discards every notification, used when a caller
// has no host to report to (library consumers, tests); Analyze also falls
// back to it when given a nil host.
type Noop struct{}

func (Noop) Progress(Stage, string, *int) {}
func (Noop) Error(string, string, error)  {}

// Percent is a small helper for constructing the *int Progress expects
// from a plain int literal at call sites.
func Percent(p int) *int { return &p }
