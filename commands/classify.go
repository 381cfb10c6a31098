package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bassamadnan/mailsort/classifier"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func classifyCmd(getEnv func() *env) *cobra.Command {
	var (
		file     string
		copyText bool
	)
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify emails from a file, stdin, or Gmail and print the results",
		Long: `Reads emails separated by blank lines, sends them to the classification
service in one request and prints one "email → category" line per result.
Input comes from --file or stdin; with --gmail it comes from the inbox instead.

Example:
  mailsort classify --file inbox.txt --copy
  pbpaste | mailsort classify`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := getEnv()
			ctx := cmd.Context()

			if e.useGmail && file != "" {
				return errors.New("--file and --gmail cannot be used together")
			}

			var emails []string
			if e.useGmail {
				importer, err := newImporter(ctx, e)
				if err != nil {
					return err
				}
				bodies, err := importer.FetchBodies(ctx)
				if err != nil {
					return fmt.Errorf("failed to import from Gmail: %w", err)
				}
				emails = classifier.Split(classifier.Join(bodies))
			} else {
				raw, err := readInput(cmd, file)
				if err != nil {
					return err
				}
				emails = classifier.Split(raw)
			}
			if len(emails) == 0 {
				e.logger.Debug("No emails to classify")
				return nil
			}

			out := cmd.OutOrStdout()
			results, err := e.client.Classify(ctx, emails)
			if err != nil {
				e.logger.Error("Classification failed", zap.String("endpoint", e.client.Endpoint()), zap.Error(err))
				fmt.Fprintln(out, classifier.Format(classifier.FailureResult()))
				return err
			}

			text := classifier.Format(results)
			fmt.Fprintln(out, text)
			if copyText {
				if err := clipboardWriteAll(text); err != nil {
					return fmt.Errorf("failed to copy results to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "Results copied to clipboard!")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read emails from this file instead of stdin")
	cmd.Flags().BoolVar(&copyText, "copy", false, "also copy the results to the clipboard")
	return cmd
}

func readInput(cmd *cobra.Command, file string) (string, error) {
	if file == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}
	return string(data), nil
}
