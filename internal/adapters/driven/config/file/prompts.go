package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads model system instructions from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
// Files are created on the first Load, never in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptDocumentSystem: `You are an AI legal drafting assistant working as an experienced Australian commercial lawyer. You draft accurate, compliant and professional legal documents for Australian businesses.

Directives:
1. Compliance: the document must comply with current Commonwealth, state and territory law relevant to the document type and the stated jurisdiction (for example the Fair Work Act 2009, the National Employment Standards, the Australian Consumer Law, the Corporations Act 2001 and the Privacy Act 1988).
2. Plain English: write clearly enough for a business owner to follow while staying legally robust.
3. Data: use every value the user supplied. Where information is missing, use a standard protective clause and insert a placeholder such as '**[ACTION: Insert specific details here]**'.
4. Optional clauses: when optional clauses are supplied, integrate each one where it fits most naturally.
5. Risk analysis: tie every risk to the user's input and Australian law (for example sham contracting or Privacy Act non-compliance) and give short, actionable reasoning. Score risk from 0 to 100.
6. Formatting: 'documentText' must be clean Markdown using '##' headings, '*' bullets and '**bold**'.
7. Output: return one JSON object that matches the provided schema with no other text.`,

	driven.PromptAssistantSystem: `You are an AI legal information assistant for Australian business questions. Summarise what the Google Search results say.

Directives:
1. Australian context: tailor every answer to Australian law and business practice.
2. Sources only: answer from the search results alone. If they do not answer the question, say so.
3. No legal advice: you are an information tool, not a lawyer. Avoid statements like "you must"; prefer "According to sources..." or "Information suggests...".
4. Formatting: use simple Markdown with bullet points and bold text.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.lexdraft/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt for the given name.
// The first call seeds the prompt directory with the defaults. A missing
// or blank file falls back to the embedded default.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)

	s.mu.RLock()
	prompt, cached := s.cache[name]
	s.mu.RUnlock()
	if cached {
		return prompt, nil
	}

	def, hasDefault := defaultPrompts[name]
	if s.initErr != nil {
		if hasDefault {
			return def, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	prompt, err := s.loadFromFile(name)
	switch {
	case err == nil && prompt != "":
	case hasDefault:
		prompt = def
	case err != nil:
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	default:
		return "", fmt.Errorf("prompt %q is empty", name)
	}

	s.mu.Lock()
	if existing, ok := s.cache[name]; ok {
		prompt = existing
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Reset overwrites a prompt file with its embedded default.
func (s *PromptStore) Reset(name string) error {
	def, ok := defaultPrompts[name]
	if !ok {
		return fmt.Errorf("unknown prompt %q", name)
	}
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		return fmt.Errorf("create prompt directory: %w", err)
	}
	if err := os.WriteFile(s.Path(name), []byte(def), 0600); err != nil {
		return fmt.Errorf("reset prompt %q: %w", name, err)
	}
	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()
	return nil
}

// Names returns the names of the built-in prompts in sorted order.
func (s *PromptStore) Names() []string {
	names := make([]string, 0, len(defaultPrompts))
	for name := range defaultPrompts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// Path returns the file backing a prompt.
func (s *PromptStore) Path(name string) string {
	return filepath.Join(s.promptDir, name+".txt")
}

// initialise creates the prompt directory, missing default files and the
// README. Existing files are never overwritten.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := s.Path(name)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

func (s *PromptStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# LexDraft Prompts

These files hold the system instructions sent to the generative model.

## Files

- ` + "`document_system.txt`" + ` - Drafting directives for document generation and risk analysis
- ` + "`assistant_system.txt`" + ` - Directives for the grounded legal assistant

## Customisation

Edit a file to change model behaviour. Changes take effect on the next
command, or after restarting ` + "`lexdraft serve`" + `.

The structured output schema is fixed. The document instruction must keep
asking for a single JSON object or generation will fail validation.
Delete a file to restore its default.
`
	return os.WriteFile(path, []byte(content), 0600)
}
