package main

import (
	"fmt"
	"os"

	"github.com/linksbom/linksbom/internal/signer"
)

func runVerify(args []string) error {
	flags, args := parseCommonFlags(args)
	publicKeyPath, args := valueFlag(args, "--public-key")
	paths := args

	if len(paths) != 1 {
		return fmt.Errorf("expected exactly one file to verify, got %d", len(paths))
	}

	content, err := os.ReadFile(paths[0])
	if err != nil {
		return err
	}

	s := signer.New()
	if publicKeyPath != "" {
		if err := s.LoadPublicKey(publicKeyPath); err != nil {
			return err
		}
	}

	ok, err := s.Verify(string(content))
	if err != nil {
		return err
	}

	if flags.Mode == outputJSON {
		return printJSON(map[string]interface{}{"status": "success", "verified": ok})
	}
	if ok {
		fmt.Println("Signature valid")
		return nil
	}
	fmt.Println("Signature invalid")
	if lastErr := s.LastError(); lastErr != nil && flags.Verbose {
		fmt.Fprintf(os.Stderr, "  %v\n", lastErr)
	}
	os.Exit(1)
	return nil
}
