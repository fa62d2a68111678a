// Package cli provides the interactive SiteReg admin console.
//
// It wires configuration, the portal API client and the local dashboard
// board into a REPL. Typical flow: prompt for the admin credential, load
// installations and mobility accounts, start a background connectivity
// watcher, and execute commands.
//
// Key features:
//   - Login / Logout against the portal's admin API
//   - Installations and mobility-account tables with search and status filter
//   - Month calendar with next / prev / today navigation
//   - Status changes, account toggles and rescheduling ("move")
//   - Attachment listing and download through presigned links
//   - hash-password for producing the server's admin hash
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
