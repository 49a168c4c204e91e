// Package utils provides common utility functions for the audience-sync
// application. It includes loose scalar conversions used where a best-effort
// value is good enough (query parameters, log fields, string rendering of
// remote values).
package utils
