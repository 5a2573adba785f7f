package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

var templatesJSON bool

var templatesCmd = &cobra.Command{
	Use:   "templates [template-id]",
	Short: "List document templates",
	Long: `Lists the document templates. With a template ID, shows its form fields
and optional clauses.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplates,
}

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		t, ok := domain.LookupTemplate(args[0])
		if !ok {
			return fmt.Errorf("%w: unknown template %q", domain.ErrNotFound, args[0])
		}
		if templatesJSON {
			return printJSON(cmd, t)
		}
		printTemplate(cmd, t)
		return nil
	}

	templates := domain.Templates()
	if templatesJSON {
		return printJSON(cmd, templates)
	}
	for _, t := range templates {
		cmd.Printf("  %-14s %s [%s risk]\n", t.ID, t.Title, t.RiskTier)
		cmd.Printf("  %-14s %s\n", "", t.Description)
	}
	cmd.Println()
	cmd.Println("Show fields with: lexdraft templates <id>")
	return nil
}

func printTemplate(cmd *cobra.Command, t domain.Template) {
	cmd.Printf("%s (%s)\n", t.Title, t.ID)
	cmd.Printf("%s\n\n", t.Description)
	if t.Urgency != "" {
		cmd.Printf("Why it matters: %s\n", t.Urgency)
	}
	if len(t.Compliance) > 0 {
		cmd.Printf("Compliance: %s\n", strings.Join(t.Compliance, ", "))
	}
	cmd.Println()
	cmd.Println("Fields:")
	for _, f := range t.Fields {
		cmd.Printf("  --field %s=...   %s\n", f, domain.FieldLabel(f))
	}
	if len(t.Clauses) > 0 {
		cmd.Println()
		cmd.Println("Optional clauses:")
		for _, c := range t.Clauses {
			cmd.Printf("  --clause %s   %s: %s\n", c.ID, c.Title, c.Description)
		}
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
