// Package domain defines the core business entities for Lexdraft.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Template: An immutable document template with required fields and optional clauses
//   - GeneratedDocument: A generated document body plus its RiskAnalysis
//   - SavedDocument: A generated document promoted to persistent storage
//   - UserProfile: The entitlement state of an account (tier and credit balances)
//   - RiskAnalysis: The normalised score, level, summary and breakdown of a document
//   - QuizQuestion: A question of the legal health check quiz
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
