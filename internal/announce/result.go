package announce

import "time"

// Outcome is how a single pingback attempt ended.
type Outcome string

const (
	// OutcomeDisabled means the endpoint was not an http(s) URL.
	OutcomeDisabled Outcome = "disabled"
	// OutcomeFingerprintFailed means the local platform query failed.
	OutcomeFingerprintFailed Outcome = "fingerprint_failed"
	// OutcomeTransportError covers connect, resolve, TLS and read failures.
	OutcomeTransportError Outcome = "transport_error"
	// OutcomeBadStatus means the server answered with something other than 200.
	OutcomeBadStatus Outcome = "bad_status"
	// OutcomeTooLong means the first line was over MaxAnnouncementLen bytes.
	OutcomeTooLong Outcome = "too_long"
	// OutcomeWritten means the announce file now holds the response.
	OutcomeWritten Outcome = "written"
	// OutcomeWriteFailed means the response was fine but the file could not be written.
	OutcomeWriteFailed Outcome = "write_failed"
)

// Result describes one finished attempt.
type Result struct {
	ID           string
	Version      string
	AnnouncePath string
	URL          string
	Outcome      Outcome
	StatusCode   int
	Announcement string
	Error        string
	Started      time.Time
	Finished     time.Time
}

// Recorder is told about every finished attempt, on the worker goroutine.
type Recorder interface {
	Record(res Result)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(res Result)

// Record calls f(res).
func (f RecorderFunc) Record(res Result) {
	f(res)
}
