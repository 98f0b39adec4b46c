// Package gateway abstracts text generation against a local Ollama service
// over two transports: the HTTP API and the ollama executable. Construction
// probes both and fails when neither is reachable, preferring HTTP. Generate
// consults the response cache before any transport call, retries transient
// failures with a fixed backoff, and stores successful responses back into
// the cache.
package gateway
