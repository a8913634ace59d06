package toon

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// EncodeFlags holds CLI flag names for encoder configuration, allowing
// callers to customize flag names while keeping sensible defaults.
type EncodeFlags struct {
	Indent    string
	Delimiter string
}

// EncodeConfig holds CLI flag values for encoder configuration.
//
// Create instances with [NewEncodeConfig] and register CLI flags with
// [EncodeConfig.RegisterFlags]. Use [EncodeConfig.NewEncoder] to create
// an [Encoder].
type EncodeConfig struct {
	Flags     EncodeFlags
	Delimiter string
	Indent    int
}

// NewEncodeConfig returns a new [EncodeConfig] with default flag names.
func NewEncodeConfig() *EncodeConfig {
	return &EncodeConfig{
		Flags: EncodeFlags{
			Indent:    "indent",
			Delimiter: "delimiter",
		},
	}
}

// RegisterFlags adds encoder flags to the given [*pflag.FlagSet].
func (c *EncodeConfig) RegisterFlags(flags *pflag.FlagSet) {
	flags.IntVar(&c.Indent, c.Flags.Indent, defaultIndent,
		"spaces per indentation level")
	flags.StringVar(&c.Delimiter, c.Flags.Delimiter, "comma",
		"array delimiter, one of: comma, tab, pipe")
}

// RegisterCompletions registers shell completions for encoder flags on cmd.
func (c *EncodeConfig) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Delimiter,
		cobra.FixedCompletions([]string{"comma", "tab", "pipe"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Delimiter, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Indent,
		cobra.NoFileCompletions)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Indent, err)
	}

	return nil
}

// NewEncoder creates an [Encoder] using this [EncodeConfig].
func (c *EncodeConfig) NewEncoder() (*Encoder, error) {
	delim, err := ParseDelimiter(c.Delimiter)
	if err != nil {
		return nil, err
	}

	return NewEncoder(WithIndent(c.Indent), WithDelimiter(delim))
}

// ParseDelimiter maps a delimiter name to its [Delimiter]. Both the names
// ("comma") and the literal characters (",") are accepted.
func ParseDelimiter(s string) (Delimiter, error) {
	switch s {
	case "comma", ",":
		return DelimiterComma, nil
	case "tab", "\t":
		return DelimiterTab, nil
	case "pipe", "|":
		return DelimiterPipe, nil
	}

	return 0, fmt.Errorf("%w: unknown delimiter %q", ErrInvalidOption, s)
}

// DecodeFlags holds CLI flag names for decoder configuration.
type DecodeFlags struct {
	Indent string
	Strict string
}

// DecodeConfig holds CLI flag values for decoder configuration.
//
// Create instances with [NewDecodeConfig] and register CLI flags with
// [DecodeConfig.RegisterFlags]. Use [DecodeConfig.NewDecoder] to create
// a [Decoder].
type DecodeConfig struct {
	Flags  DecodeFlags
	Indent int
	Strict bool
}

// NewDecodeConfig returns a new [DecodeConfig] with default flag names.
func NewDecodeConfig() *DecodeConfig {
	return &DecodeConfig{
		Flags: DecodeFlags{
			Indent: "indent",
			Strict: "strict",
		},
	}
}

// RegisterFlags adds decoder flags to the given [*pflag.FlagSet].
func (c *DecodeConfig) RegisterFlags(flags *pflag.FlagSet) {
	flags.IntVar(&c.Indent, c.Flags.Indent, defaultIndent,
		"spaces the decoder maps to one depth level")
	flags.BoolVar(&c.Strict, c.Flags.Strict, true,
		"require declared array lengths to match observed counts")
}

// RegisterCompletions registers shell completions for decoder flags on cmd.
func (c *DecodeConfig) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Indent,
		cobra.NoFileCompletions)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Indent, err)
	}

	return nil
}

// NewDecoder creates a [Decoder] using this [DecodeConfig].
func (c *DecodeConfig) NewDecoder() (*Decoder, error) {
	return NewDecoder(WithDecodeIndent(c.Indent), WithStrict(c.Strict))
}
