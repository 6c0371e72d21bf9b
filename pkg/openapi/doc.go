// Package openapi exposes the public contracts for loading form declarations.
// Forms are described as OpenAPI request bodies; implementations live under
// internal/openapi so kin-openapi stays hidden from consumers.
package openapi
