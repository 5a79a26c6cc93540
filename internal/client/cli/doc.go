// Package cli provides the FraudShield command-line client.
//
// It wires configuration, the credential database, the backend client and
// the session manager, and exposes them two ways: a cobra command tree for
// one-shot use (fraudshield check ..., fraudshield dashboard) and an
// interactive REPL when no subcommand is given.
//
// Key features:
//   - Login / Signup / Logout, with the session persisted across runs
//   - Check a message and show its status, risk and detected links
//   - Role-based dashboard: analytics and user management for admins,
//     check history for everyone else
//
// See NewRootCommand, App and runREPL for details.
package cli
