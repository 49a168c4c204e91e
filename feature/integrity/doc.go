// Package integrity provides deployment health checks.
//
// Unlike the mailchimp package which moves data, this package validates the
// infrastructure audience-sync depends on. Each check is optional and
// reports "disabled" when its dependency is not configured.
//
// # Checks Provided
//
//   - Storage: The snapshot bucket exists and holds a folder per kind.
//   - Journal: The journal table has every column of the outcome model.
//   - Remote: The API key can list audiences and the configured audience resolves.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
//   - GET /integrity/journal : Runs the journal schema check.
//   - GET /integrity/remote : Runs the remote API check.
package integrity
