// Package journal records change set outcomes in the database.
//
// Journal implements reconcile.Hooks: every committed or failed item becomes
// one row in sync_outcomes tagged with the run id, so an operator can audit
// what a run did after the fact. The journal is optional and only active
// when sync.journal is enabled and the database connects.
package journal
