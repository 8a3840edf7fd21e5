// Package files stores uploaded workbooks in a local directory.
//
// Every upload gets a fresh id of 32 lowercase hex characters and is
// written once as <id>.xlsx. Ids are validated before any path is built
// from them, so callers may pass untrusted ids straight through.
//
// Example usage:
//
//	store, err := files.NewStore("data/uploads", logger)
//	stored, err := store.Save(ctx, "sales.xlsx", body)
//	path, err := store.Path(stored.ID)
package files
