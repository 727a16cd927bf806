// Package domain contains shared domain types used across entity sub-packages.
// The todo entity and its DTOs live in domain/todo. This root package holds
// sentinel errors, the typed validation and not-found errors, and the
// discriminated Result type returned by DTO constructors.
package domain
