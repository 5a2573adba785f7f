// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the lexdraft home directory
// (~/.lexdraft by default).
//
// Adapters:
//   - ConfigStore: TOML configuration with dot-notation keys
//   - PromptStore: user-editable system instructions
package file
