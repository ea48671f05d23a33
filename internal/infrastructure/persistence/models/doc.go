// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities should be free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. ToDomain / FromDomain convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: shared id, timestamp and version columns
// - identity.go: users (sellers, administrators, clients)
// - catalog.go: menu items
// - trade.go: orders and order lines, as written by the ordering module
// - billing.go: invoices and invoice lines
// - audit.go: append-only audit records
//
// Timestamps are written in UTC so that range filters compare correctly on
// every supported dialect.
package models
