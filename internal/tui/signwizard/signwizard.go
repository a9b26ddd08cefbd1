// Package signwizard is an interactive prompt flow for `linksbom sign`,
// adapted from the teacher's internal/tui/wizard.go: the same huh-form
// + lipgloss-style combination, gated on an isatty terminal check the way
// the teacher's internal/tui/non_interactive.go gates interactive vs.
// scripted mode, generalized from vendor-add/edit prompts to key-material
// and algorithm prompts.
package signwizard

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
)

// algorithmOptions lists the seven JSF algorithms the wizard offers,
// RS256 first as the signer package's default.
var algorithmOptions = []string{"RS256", "RS384", "RS512", "ES256", "ES384", "ES512", "Ed25519"}

// Request holds the answers collected by Run, handed to the signer package
// by the caller.
type Request struct {
	PrivateKeyPath  string
	CertificatePath string
	Algorithm       string
	Confirmed       bool
}

// IsInteractive reports whether stdout is a terminal, the same gate the
// teacher's TUI package uses to decide between wizard and flag-driven flows.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// Run prompts for the signing key material and algorithm, pre-filling
// fields from defaults (e.g. values already supplied via flags or
// internal/config). If the form fails or the user cancels it, the form's
// error is returned wrapped with a "signwizard:" prefix.
func Run(defaults Request) (Request, error) {
	req := defaults
	if req.Algorithm == "" {
		req.Algorithm = "RS256"
	}

	fmt.Println(styleTitle.Render("linksbom sign"))

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Private key path").
				Description("PEM-encoded RSA, EC, or Ed25519 private key").
				Value(&req.PrivateKeyPath).
				Validate(validateExistingFile),
			huh.NewInput().
				Title("Certificate path (optional)").
				Description("PEM-encoded X.509 certificate to embed alongside the signature").
				Value(&req.CertificatePath),
			huh.NewSelect[string]().
				Title("Algorithm").
				Options(toOptions(algorithmOptions)...).
				Value(&req.Algorithm),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Sign with these settings?").
				Value(&req.Confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return req, fmt.Errorf("signwizard: %w", err)
	}
	return req, nil
}

// ShowSuccess prints a styled success line, matching the teacher's
// ShowSuccess convention.
func ShowSuccess(message string) {
	fmt.Println(styleSuccess.Render(message))
}

// ShowError prints a styled error line, matching the teacher's ShowError
// convention.
func ShowError(title, message string) {
	fmt.Fprintf(os.Stderr, "%s\n", styleErr.Render(fmt.Sprintf("%s: %s", title, message)))
}

func toOptions(values []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(values))
	for _, v := range values {
		opts = append(opts, huh.NewOption(v, v))
	}
	return opts
}

func validateExistingFile(path string) error {
	if path == "" {
		return fmt.Errorf("a private key path is required")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	return nil
}
