// Package mailchimp connects list members of the Mailchimp Marketing API to
// the reconcile engine.
//
// # Read path
//
// Projector walks a schema.Set against a decoded resource and fills a
// table.Row. Reader pages through lists and members (offset based, until the
// server reported total is reached) and resolves keyed fetches through
// LookupKey, which addresses members by the MD5 hash of the lowercased email.
//
// # Write path
//
// Compiler builds the minimal payload for an add or update. Tags are written
// as a set difference against the tags sub-resource. MemberWriter implements
// reconcile.Writer on top of it.
//
// # Components
//
//   - Endpoint: base URL derivation from the API key data center suffix.
//   - ListDirectory: cached list name to id resolution.
//   - Service: wires transport, reader, writer and executor from config.
//   - Handler: HTTP endpoints under /mailchimp.
//   - Feature: registers the handler with the loader.
//
// # HTTP Endpoints
//
//   - GET  /mailchimp/lists : List audiences.
//   - GET  /mailchimp/schema/:kind : Default logical schema for list or member.
//   - GET  /mailchimp/members : Full member scan.
//   - POST /mailchimp/members/fetch : Keyed member fetch.
//   - POST /mailchimp/members/apply : Apply a change set.
package mailchimp
