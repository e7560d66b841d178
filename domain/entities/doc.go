// Package entities provides core domain entities for the bridge.
// These are general-purpose types used across all bridge operations.
// Adapter-specific types (CDP payloads, wire formats) belong in the
// infrastructure packages that speak them.
package entities
