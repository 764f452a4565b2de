package connection

import "fmt"

// Status is the result of one connection attempt
type Status int

const (
	StatusSent Status = iota
	StatusSkipped
	StatusFailed
)

// String returns the name stored in the history database
func (s Status) String() string {
	switch s {
	case StatusSent:
		return "sent"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome records what happened to one profile in the search results
type Outcome struct {
	Name   string
	Status Status
	Reason string
	Note   string
}

// Sent records a request sent with note
func Sent(name, note string) Outcome {
	return Outcome{Name: name, Status: StatusSent, Note: note}
}

// Skipped records a profile left alone, such as an existing connection
func Skipped(name, reason string) Outcome {
	return Outcome{Name: name, Status: StatusSkipped, Reason: reason}
}

// Failed records a request that could not be completed
func Failed(name string, err error) Outcome {
	return Outcome{Name: name, Status: StatusFailed, Reason: err.Error()}
}

// Summary counts outcomes by status
type Summary struct {
	Sent    int
	Skipped int
	Failed  int
}

// Summarize counts outcomes by status
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Status {
		case StatusSent:
			s.Sent++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

// Total is the number of profiles considered
func (s Summary) Total() int {
	return s.Sent + s.Skipped + s.Failed
}
