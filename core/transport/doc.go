// Package transport performs JSON requests against the remote API.
//
// Client is the contract the read and write paths depend on. HTTPClient is
// the production implementation: it sets basic authentication, decodes
// response bodies with json.Decoder.UseNumber so integers survive intact, and
// turns every non-2xx answer into *Error carrying the status code and the raw
// response body.
//
// # Retries
//
// 429 Too Many Requests is retried for every method. 5xx answers and network
// failures are retried only for idempotent methods (GET, PUT, DELETE), since a
// repeated POST could create a record twice. Backoff doubles from
// Config.BackoffMs up to Config.BackoffMaxMs and a Retry-After header takes
// precedence.
package transport
