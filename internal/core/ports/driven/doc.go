// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - KeyValueStore: Profile, document and session persistence
//   - ConfigStore: Application configuration
//   - PromptStore: System instructions for the model
//   - DocumentExporter: Writes downloaded documents
//   - PurchaseGateway: Initiates payment for a product
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - GenerationService: Schema-constrained document generation. Without it, generate is disabled.
//   - GroundedAnswerService: Streamed web-grounded answers. Without it, ask is disabled.
//   - NewsletterService: Welcome email on first login. Without it, signup is skipped.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
