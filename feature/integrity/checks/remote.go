package checks

import (
	"context"

	"audience-sync/feature/mailchimp"
)

// Remote is the part of the connector the remote check needs.
type Remote interface {
	Lists(ctx context.Context) ([]mailchimp.ListSummary, error)
	ListID(ctx context.Context) (string, error)
}

// RemoteReport is the result of a remote API check.
type RemoteReport struct {
	Reachable bool   `json:"reachable"`
	Lists     int    `json:"lists"`
	ListID    string `json:"list_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CheckRemote lists the audiences and resolves the configured one.
// With resolve false only the directory is read.
func CheckRemote(ctx context.Context, remote Remote, resolve bool) *RemoteReport {
	report := &RemoteReport{}

	lists, err := remote.Lists(ctx)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Reachable = true
	report.Lists = len(lists)

	if !resolve {
		return report
	}
	id, err := remote.ListID(ctx)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.ListID = id
	return report
}
