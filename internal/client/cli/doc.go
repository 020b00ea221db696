// Package cli provides the interactive command-line blog client.
//
// It wires configuration, the local SQLite store, the REST API client and
// the session manager, and runs a REPL over them. A persisted session is
// restored at start-up; a 401 from any command ends it with a "Session
// expired" alert.
//
// Key features:
//   - Register / Login / Logout / Whoami
//   - Browse blogs with paging and search, read a blog with its comments
//   - Create a blog in an editor sub-loop with debounced draft autosave,
//     Markdown content and an optional cover image
//   - Edit / Delete own blogs, add / delete comments, view profiles
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
