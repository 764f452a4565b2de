package session

import "github.com/yourusername/linkedin-connect/internal/connection"

// StopReason tells why a multi-page run ended
type StopReason string

const (
	StopMaxPages         StopReason = "max_pages"
	StopNavigationFailed StopReason = "navigation_failed"
	StopConnectFailed    StopReason = "connect_failed"
	StopCanceled         StopReason = "canceled"
)

// PageResult is what happened on one results page
type PageResult struct {
	Page     int
	Outcomes []connection.Outcome
	Err      error
}

// Report is the result of ConnectOnMultiplePages
type Report struct {
	Pages []PageResult
	Stop  StopReason
	Err   error
}

func (r *Report) abort(reason StopReason, err error) {
	r.Stop = reason
	r.Err = err
}

// Outcomes returns every per-profile outcome in visiting order
func (r Report) Outcomes() []connection.Outcome {
	var all []connection.Outcome
	for _, p := range r.Pages {
		all = append(all, p.Outcomes...)
	}
	return all
}

// Summary counts the outcomes of the run
func (r Report) Summary() connection.Summary {
	return connection.Summarize(r.Outcomes())
}
