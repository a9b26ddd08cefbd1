package main

import (
	"fmt"
	"os"

	"github.com/linksbom/linksbom/internal/model"
	"github.com/linksbom/linksbom/internal/signer"
	"github.com/linksbom/linksbom/internal/tui/signwizard"
)

func runSign(args []string) error {
	flags, args := parseCommonFlags(args)
	keyPath, args := valueFlag(args, "--key")
	certPath, args := valueFlag(args, "--cert")
	algorithm, args := valueFlag(args, "--algorithm")
	output, args := valueFlag(args, "--output")
	strict, args := boolFlag(args, "--strict")
	paths := args

	if len(paths) != 1 {
		return fmt.Errorf("expected exactly one file to sign, got %d", len(paths))
	}
	input := paths[0]

	if keyPath == "" && signwizard.IsInteractive() && !flags.Yes {
		req, err := signwizard.Run(signwizard.Request{
			PrivateKeyPath:  keyPath,
			CertificatePath: certPath,
			Algorithm:       algorithm,
		})
		if err != nil {
			return err
		}
		if !req.Confirmed {
			return fmt.Errorf("signing aborted")
		}
		keyPath, certPath, algorithm = req.PrivateKeyPath, req.CertificatePath, req.Algorithm
	}
	if keyPath == "" {
		return fmt.Errorf("--key is required (or run interactively in a terminal)")
	}
	if algorithm == "" {
		algorithm = "RS256"
	}
	if output == "" {
		output = input
	}

	content, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	s := signer.New()
	if err := s.LoadPrivateKey(keyPath, nil); err != nil {
		return err
	}
	if certPath != "" {
		if err := s.LoadCertificate(certPath); err != nil {
			return err
		}
	}

	sig, err := s.Sign(string(content), model.Algorithm(algorithm))
	if err != nil {
		return err
	}
	if strict {
		sig = sig.JSF()
	}
	signed, err := s.Embed(string(content), sig)
	if err != nil {
		return err
	}
	if err := writeFile(output, signed); err != nil {
		return err
	}

	if flags.Mode == outputJSON {
		return printJSON(map[string]interface{}{"status": "success", "output": output, "algorithm": sig.Algorithm})
	}
	if flags.Mode != outputQuiet {
		if signwizard.IsInteractive() {
			signwizard.ShowSuccess(fmt.Sprintf("Signed %s -> %s (%s)", input, output, sig.Algorithm))
		} else {
			fmt.Printf("Signed %s -> %s (%s)\n", input, output, sig.Algorithm)
		}
	}
	return nil
}
