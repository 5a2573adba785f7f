package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
)

var (
	generateFields       []string
	generateJurisdiction string
	generateClauses      []string
	generateSave         bool
	generateUpdate       string
	generateJSON         bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [template-id]",
	Short: "Generate a legal document",
	Long: `Generates a document from a template and the form values given with
--field, then prints it with its risk analysis.

Generating is free. Saving a new document with --save uses one document
credit on the free plan; updating a saved document with --update does not.

Examples:
  lexdraft generate privacy --field businessName="Acme Pty Ltd" \
    --field website=acme.com.au --clause cookies --save
  lexdraft generate contractor --jurisdiction VIC --field ...`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringArrayVarP(&generateFields, "field", "f", nil, "form value as key=value (repeatable)")
	generateCmd.Flags().StringVarP(&generateJurisdiction, "jurisdiction", "j", domain.DefaultJurisdiction,
		"governing state or territory")
	generateCmd.Flags().StringSliceVarP(&generateClauses, "clause", "c", nil, "optional clause ID (repeatable)")
	generateCmd.Flags().BoolVarP(&generateSave, "save", "s", false, "save the document to your account")
	generateCmd.Flags().StringVar(&generateUpdate, "update", "", "overwrite the saved document with this ID")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if accountService == nil {
		return errAccountNotConfigured
	}

	form, err := parseFields(generateFields)
	if err != nil {
		return err
	}

	if !generateJSON {
		cmd.PrintErrln("Drafting your document...")
	}
	doc, err := accountService.Generate(cmd.Context(), driving.GenerateInput{
		TemplateID:   args[0],
		Form:         form,
		Jurisdiction: generateJurisdiction,
		ClauseIDs:    generateClauses,
	})
	if err != nil {
		return err
	}

	var saved *domain.SavedDocument
	if generateSave || generateUpdate != "" {
		saved, err = accountService.SaveDocument(cmd.Context(), *doc, generateUpdate)
		if err != nil {
			return fmt.Errorf("document generated but not saved: %w", err)
		}
	}

	if generateJSON {
		if saved != nil {
			return printJSON(cmd, saved)
		}
		return printJSON(cmd, doc)
	}

	cmd.Println(strings.TrimSpace(doc.Body))
	cmd.Println()
	printRisk(cmd, doc.Risk)
	if saved != nil {
		cmd.Printf("\nSaved %q as %s (version %s).\n", saved.Title, saved.ID, saved.Version)
	}
	return nil
}

// parseFields converts key=value pairs into form data. Later pairs win.
func parseFields(pairs []string) (domain.FormData, error) {
	form := make(domain.FormData, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: --field %q must be key=value", domain.ErrInvalidInput, pair)
		}
		form[key] = value
	}
	return form, nil
}

func printRisk(cmd *cobra.Command, risk domain.RiskAnalysis) {
	cmd.Printf("Risk: %s (%d/100)\n", risk.Level, risk.Score)
	if risk.Summary != "" {
		cmd.Printf("  %s\n", risk.Summary)
	}
	for _, f := range risk.Breakdown {
		cmd.Printf("  - %s: %s\n", f.Title, f.Reasoning)
	}
}
