// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the two stores, the remote Ollama services,
// and document loading.
package driven
