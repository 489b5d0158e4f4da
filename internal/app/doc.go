// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the dry-run lifecycle that builds and
// evaluates every registered node type against the recording backend,
// decoupled from any specific entrypoint like a CLI.
package app
