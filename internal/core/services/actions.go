package services

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure DocumentActions implements the interface.
var _ driving.DocumentActions = (*DocumentActions)(nil)

// DocumentActions hands documents to desktop tools.
type DocumentActions struct {
	goos     string
	lookPath func(string) (string, error)
	run      func(cmd *exec.Cmd) error
}

// NewDocumentActions creates document actions for the running platform.
func NewDocumentActions() *DocumentActions {
	return &DocumentActions{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run:      (*exec.Cmd).Run,
	}
}

// CopyToClipboard copies the rendered document to the system clipboard.
func (a *DocumentActions) CopyToClipboard(doc *domain.SavedDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", domain.ErrInvalidInput)
	}
	cmd, err := a.clipboardCommand()
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(RenderDocument(*doc))
	return a.run(cmd)
}

// Open opens an exported location in the default application.
func (a *DocumentActions) Open(location string) error {
	target := openableLocation(location)
	if target == "" {
		return fmt.Errorf("%w: nothing to open", domain.ErrInvalidInput)
	}

	var cmd *exec.Cmd
	switch a.goos {
	case osDarwin:
		cmd = exec.Command("open", target)
	case osLinux:
		cmd = exec.Command("xdg-open", target)
	case osWindows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("unsupported platform: %s", a.goos)
	}
	return a.run(cmd)
}

func (a *DocumentActions) clipboardCommand() (*exec.Cmd, error) {
	switch a.goos {
	case osDarwin:
		return exec.Command("pbcopy"), nil
	case osLinux:
		// Try xclip first, fall back to xsel
		if _, err := a.lookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard"), nil
		}
		if _, err := a.lookPath("xsel"); err == nil {
			return exec.Command("xsel", "--clipboard", "--input"), nil
		}
		return nil, fmt.Errorf("no clipboard utility found (install xclip or xsel)")
	case osWindows:
		return exec.Command("cmd", "/c", "clip"), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", a.goos)
	}
}

// openableLocation converts export locations to something a desktop opener
// understands. gs:// objects open in the Cloud console.
func openableLocation(location string) string {
	switch {
	case strings.HasPrefix(location, "gs://"):
		return "https://console.cloud.google.com/storage/browser/_details/" + strings.TrimPrefix(location, "gs://")
	case strings.HasPrefix(location, "file://"):
		return strings.TrimPrefix(location, "file://")
	default:
		return location
	}
}
