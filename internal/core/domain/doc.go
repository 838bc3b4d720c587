// Package domain contains the core business entities and rules for recall.
// It has no dependencies on other packages in this project, making it the
// innermost layer of the hexagonal architecture.
package domain
