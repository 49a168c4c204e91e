// Package table holds the row model shared by the read path and the host.
//
// A Row is an ordered set of column values plus the identifier assigned when
// the row is handed to a Store. Stores answer every insertion with a Signal;
// Abort tells the producer to stop projecting further rows. MemoryStore is the
// in-process Store used by the CLI, the HTTP handlers and the tests.
package table
