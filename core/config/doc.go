// Package config loads audience-sync settings.
//
// Values come from a .env file (if present) and the environment. Every key
// is declared by a mapstructure tag on a section struct and gets its
// default from the matching default tag. Nested keys map to upper-case
// environment names, so mailchimp.page_size reads MAILCHIMP_PAGE_SIZE.
//
// # Sections
//
//   - Server: HTTP port, API key and public paths
//   - Storage: MinIO endpoint and bucket for snapshots
//   - Log: level, format and optional rotating file
//   - Database: journal database driver and DSN parts
//   - Mailchimp: API key, audience and transport tuning
//   - Sync: apply and snapshot behaviour
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Mailchimp.PageSize)
package config
