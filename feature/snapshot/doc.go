// Package snapshot stores projected rows and change sets in object storage.
//
// A snapshot is a JSON document holding every row read for one resource
// kind at one point in time. Snapshots are written under
// {prefix}/{kind}/{timestamp}.json so object names sort chronologically.
// The external comparer can diff two snapshots and upload its change set,
// which LoadChangeSet reads back for the apply command.
//
// # Components
//
//   - Store: save, list, load and prune snapshot objects.
//   - Service: takes a snapshot from a Source (the mailchimp service).
//   - Handler: HTTP endpoints under /snapshots.
//
// # HTTP Endpoints
//
//   - GET  /snapshots/:kind : List snapshot objects.
//   - POST /snapshots/:kind : Take a snapshot now.
package snapshot
