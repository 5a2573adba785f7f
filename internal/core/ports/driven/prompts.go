package driven

// PromptStore provides access to model system instructions.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptDocumentSystem is the system instruction for document generation.
	PromptDocumentSystem = "document_system"

	// PromptAssistantSystem is the system instruction for the legal assistant.
	PromptAssistantSystem = "assistant_system"
)
