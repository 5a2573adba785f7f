package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexdraft-cli/internal/core/services"
)

var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"docs"},
	Short:   "Manage saved documents",
	Long:    `List, view, download, or copy the documents saved to your account.`,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Print a saved document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsShow,
}

var documentsDownloadCmd = &cobra.Command{
	Use:   "download [doc-id]",
	Short: "Export a saved document",
	Long: `Exports a saved document as Markdown. On the free plan each document
can be downloaded once.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentsDownload,
}

var documentsCopyCmd = &cobra.Command{
	Use:   "copy [doc-id]",
	Short: "Copy a saved document to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsCopy,
}

var (
	documentsJSON bool
	downloadOpen  bool
)

func init() {
	documentsListCmd.Flags().BoolVar(&documentsJSON, "json", false, "output as JSON")
	documentsDownloadCmd.Flags().BoolVar(&downloadOpen, "open", false, "open the exported file")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsShowCmd)
	documentsCmd.AddCommand(documentsDownloadCmd)
	documentsCmd.AddCommand(documentsCopyCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if accountService == nil {
		return errAccountNotConfigured
	}

	docs, err := accountService.ListDocuments(cmd.Context())
	if err != nil {
		return err
	}
	if documentsJSON {
		return printJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No saved documents. Generate one with 'lexdraft generate <template> --save'.")
		return nil
	}

	for i := range docs {
		d := &docs[i]
		cmd.Printf("  %s\n", d.ID)
		cmd.Printf("    Title: %s (v%s, %s)\n", d.Title, d.Version, d.State)
		cmd.Printf("    Risk: %s (%d/100)\n", d.Risk.Level, d.Risk.Score)
		cmd.Printf("    Updated: %s\n", d.UpdatedAt.Format("2006-01-02 15:04"))
		if d.Downloaded {
			cmd.Println("    Downloaded: yes")
		}
		cmd.Println()
	}
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentsShow(cmd *cobra.Command, args []string) error {
	if accountService == nil {
		return errAccountNotConfigured
	}

	doc, err := accountService.GetDocument(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Print(services.RenderDocument(*doc))
	cmd.Println()
	printRisk(cmd, doc.Risk)
	return nil
}

func runDocumentsDownload(cmd *cobra.Command, args []string) error {
	if accountService == nil {
		return errAccountNotConfigured
	}

	res, err := accountService.Download(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	cmd.Printf("Saved %s to %s\n", res.Document.FileName(), res.Location)

	if downloadOpen {
		if documentActions == nil {
			return errors.New("document actions not configured")
		}
		if err := documentActions.Open(res.Location); err != nil {
			return err
		}
	}
	return nil
}

func runDocumentsCopy(cmd *cobra.Command, args []string) error {
	if accountService == nil {
		return errAccountNotConfigured
	}
	if documentActions == nil {
		return errors.New("document actions not configured")
	}

	doc, err := accountService.GetDocument(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := documentActions.CopyToClipboard(doc); err != nil {
		return err
	}
	cmd.Printf("Copied %q to the clipboard.\n", doc.Title)
	return nil
}
