// Package domain defines the core business entities for CultureBridge.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CulturalBehaviorProfile: bounded behavioral scores for a region
//   - MappingRule / FiredAdaptation: the dimension→UX rule vocabulary
//   - PipelineState / VariantSpec: the state threaded through a run
//   - AuditResult / LiftPrediction: terminal stage outputs
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
