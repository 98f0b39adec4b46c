// Package cache implements the content-addressed response cache that maps
// (model, prompt) pairs to raw model output. Entries live one-per-file under
// the cache directory, named by fingerprint, fronted by a bounded in-memory
// LRU layer. Entries older than the configured age are purged at startup.
package cache
