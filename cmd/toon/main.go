// Package main provides the CLI entry point for toon, a converter
// between TOON (Token-Oriented Object Notation) and JSON or YAML, with
// JSON Schema inference and validation for TOON documents.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/toon/toon"
	"go.jacobcolvin.com/toon/log"
	"go.jacobcolvin.com/toon/profile"
	"go.jacobcolvin.com/toon/schema"
	"go.jacobcolvin.com/toon/version"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	logCfg := log.NewConfig()

	profCfg := profile.NewConfig()
	profiler := profCfg.NewProfiler()

	rootCmd := &cobra.Command{
		Use:   "toon",
		Short: "Convert between TOON and JSON or YAML",
		Long: `toon converts JSON and YAML documents to TOON (Token-Oriented Object
Notation) and back. TOON is a compact, indentation-structured format that
elides the structural tokens JSON repeats, cutting token counts when
documents travel through language-model tokenizers.`,
		Version:       version.Print(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			handler, err := logCfg.NewHandler(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(handler))

			return profiler.Start()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return profiler.Stop()
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	// RegisterFlags resets Format to the flag default, so the
	// terminal-dependent default is applied afterwards.
	logCfg.Format = defaultLogFormat()

	profCfg.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newSchemaCmd(),
		newValidateCmd(),
	)

	for _, register := range []func(*cobra.Command) error{
		logCfg.RegisterCompletions,
		profCfg.RegisterCompletions,
	} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
		}
	}

	return rootCmd
}

// defaultLogFormat picks human-readable text on terminals and logfmt for
// pipes.
func defaultLogFormat() string {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return string(log.FormatText)
	}

	return string(log.FormatLogfmt)
}

func newEncodeCmd() *cobra.Command {
	cfg := toon.NewEncodeConfig()

	var (
		from   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a JSON or YAML document as TOON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			var v toon.Value

			switch from {
			case "json":
				v, err = toon.DecodeJSON(data)
			case "yaml":
				v, err = yamlToValue(data)
			default:
				return fmt.Errorf("%w: unknown input format %q", toon.ErrInvalidOption, from)
			}

			if err != nil {
				return err
			}

			enc, err := cfg.NewEncoder()
			if err != nil {
				return err
			}

			out, err := enc.MarshalValue(v)
			if err != nil {
				return err
			}

			slog.Debug("encoded document",
				slog.Int("input_bytes", len(data)),
				slog.Int("output_bytes", len(out)),
			)

			return writeOutput(cmd.OutOrStdout(), output, append(out, '\n'))
		},
	}

	cfg.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&from, "from", "json", "input format, one of: json, yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file path (- for stdout)")

	return cmd
}

func newDecodeCmd() *cobra.Command {
	cfg := toon.NewDecodeConfig()

	var (
		to         string
		output     string
		jsonIndent int
	)

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a TOON document to JSON or YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			dec, err := cfg.NewDecoder()
			if err != nil {
				return err
			}

			v, err := dec.Decode(data)
			if err != nil {
				return err
			}

			var out []byte

			switch to {
			case "json":
				out, err = toon.EncodeJSON(v, jsonIndent)
				out = append(out, '\n')
			case "yaml":
				out, err = valueToYAML(v)
			default:
				return fmt.Errorf("%w: unknown output format %q", toon.ErrInvalidOption, to)
			}

			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), output, out)
		},
	}

	cfg.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&to, "to", "json", "output format, one of: json, yaml")
	cmd.Flags().IntVar(&jsonIndent, "json-indent", 2, "JSON indentation spaces (0 for compact)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file path (- for stdout)")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	cfg := schema.NewConfig()
	decCfg := toon.NewDecodeConfig()

	cmd := &cobra.Command{
		Use:   "schema [file...]",
		Short: "Infer a JSON Schema from TOON documents",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			dec, err := decCfg.NewDecoder()
			if err != nil {
				return err
			}

			gen := cfg.NewGenerator(schema.WithDecoder(dec))

			s, err := gen.Generate(inputs...)
			if err != nil {
				return err
			}

			out, err := schemaJSON(s)
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), cfg.Output, out)
		},
	}

	cfg.RegisterFlags(cmd.Flags())
	decCfg.RegisterFlags(cmd.Flags())

	return cmd
}

func newValidateCmd() *cobra.Command {
	decCfg := toon.NewDecodeConfig()

	var schemaPath string

	cmd := &cobra.Command{
		Use:   "validate --schema schema.json [file]",
		Short: "Validate a TOON document against a JSON Schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaData, err := os.ReadFile(schemaPath)
			if err != nil {
				return fmt.Errorf("%w: %w", schema.ErrReadInput, err)
			}

			s, err := schema.ParseSchema(schemaData)
			if err != nil {
				return err
			}

			data, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			dec, err := decCfg.NewDecoder()
			if err != nil {
				return err
			}

			v, err := dec.Decode(data)
			if err != nil {
				return err
			}

			err = schema.Validate(s, v)
			if err != nil {
				return err
			}

			slog.Info("document is valid", slog.String("schema", schemaPath))

			return nil
		},
	}

	decCfg.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&schemaPath, "schema", "", "JSON Schema file to validate against")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

// readInput reads one document from the named file, or stdin when the
// argument is absent or "-".
func readInput(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %w", schema.ErrReadInput, err)
		}

		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schema.ErrReadInput, err)
	}

	return data, nil
}

// readInputs reads every named file, or stdin when no arguments are
// given.
func readInputs(stdin io.Reader, args []string) ([][]byte, error) {
	if len(args) == 0 {
		data, err := readInput(stdin, nil)
		if err != nil {
			return nil, err
		}

		return [][]byte{data}, nil
	}

	inputs := make([][]byte, 0, len(args))

	for _, arg := range args {
		data, err := readInput(stdin, []string{arg})
		if err != nil {
			return nil, err
		}

		inputs = append(inputs, data)
	}

	return inputs, nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		if err != nil {
			return fmt.Errorf("%w: %w", schema.ErrWriteOutput, err)
		}

		return nil
	}

	err := os.WriteFile(path, data, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", schema.ErrWriteOutput, err)
	}

	return nil
}
