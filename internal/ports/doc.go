// Package ports defines interfaces between layers in the hexagonal architecture.
// The repository port is implemented by the application layer and called by
// handlers. The datasource port is implemented by outbound storage adapters
// and called by the repository.
package ports
