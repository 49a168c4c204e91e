// Package coerce converts between remote JSON values and typed row values.
//
// FromRemote turns a decoded JSON value (decoded with json.Decoder.UseNumber)
// into the Go type used for the column: string, []string, int64, float64,
// time.Time or bool. ToRemote goes the other way and produces values that
// encoding/json serialises the way the remote API expects.
//
// A nil value is never an error: it means "no value" and the caller leaves the
// destination cell untouched. A value that cannot be parsed for the declared
// type is reported as *Error, which names the field and the raw value.
package coerce
