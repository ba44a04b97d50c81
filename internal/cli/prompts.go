package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/0x1723/mfbldr/internal/assets"
	"github.com/0x1723/mfbldr/internal/signer"
	mferr "github.com/0x1723/mfbldr/pkg/errors"
)

// promptPassword prompts for a password with hidden input.
// The caller is responsible for zeroing the returned bytes after use.
func promptPassword(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	password, err := term.ReadPassword(syscall.Stdin)
	outln(os.Stderr) // Newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	return password, nil
}

// promptNewPassword prompts for a new key encryption password with
// confirmation. The caller zeroes the returned bytes after use.
func promptNewPassword() ([]byte, error) {
	password, err := promptPassword("Enter encryption password: ")
	if err != nil {
		return nil, err
	}

	if len(password) < 8 {
		signer.ZeroBytes(password)
		return nil, mferr.WithSuggestion(
			mferr.ErrInvalidInput,
			"password must be at least 8 characters",
		)
	}

	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		signer.ZeroBytes(password)
		return nil, err
	}
	defer signer.ZeroBytes(confirm)

	if string(password) != string(confirm) {
		signer.ZeroBytes(password)
		return nil, mferr.WithSuggestion(
			mferr.ErrInvalidInput,
			"passwords do not match",
		)
	}

	return password, nil
}

// promptMnemonic reads a mnemonic phrase from stdin on one line.
func promptMnemonic() (string, error) {
	outln(os.Stderr, "Enter your mnemonic phrase (all words on one line):")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", mferr.WithSuggestion(mferr.ErrInvalidInput, "no input provided")
	}

	return strings.TrimSpace(line), nil
}

// promptSelectAsset shows a numbered token list and reads a selection.
// Tokens that already claimed a domain are marked; picking one is still
// allowed since the registry is the final authority. Invalid input
// re-prompts rather than aborting.
func promptSelectAsset(list []assets.Asset) (assets.Asset, error) {
	outln(os.Stderr, "\nYou own several MFBLDR tokens. Pick the one to claim with:")
	for i, a := range list {
		name := a.Name
		if name == "" {
			name = "token " + a.TokenID
		}
		if a.Domain != "" {
			out(os.Stderr, "  %d) %s (already claimed %s)\n", i+1, name, a.Domain)
		} else {
			out(os.Stderr, "  %d) %s\n", i+1, name)
		}
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		out(os.Stderr, "Selection [1-%d]: ", len(list))

		line, err := reader.ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			return assets.Asset{}, mferr.ErrSelectionRequired
		}

		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && n >= 1 && n <= len(list) {
			return list[n-1], nil
		}
		outln(os.Stderr, "Invalid selection.")
	}
}

// promptConfirm asks a yes/no question, defaulting to no.
func promptConfirm(question string) bool {
	out(os.Stderr, "%s [y/N]: ", question)

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// isInteractive reports whether stdin is a terminal. Pickers and
// prompts are only offered interactively.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // G115: Fd() fits an int on supported platforms
}
