// Package registry maps node type names to the factories that describe them.
//
// Types come from two places: compiled-in modules, which implement Module and
// call Register from their Register method, and manifest files, which
// LoadManifests decodes and registers. Both are looked up the same way:
// Create stamps a new unconfigured node with the type name and Build also
// initializes it from a fresh descriptor.
//
// Registration is expected during startup; lookups may happen at any time
// and from any goroutine.
package registry
