package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sdejongh/durduff/pkg/models"
	"github.com/spf13/cobra"
)

// DiffFlags holds the diff flag values
type DiffFlags struct {
	Brief        bool
	Null         bool
	Color        whenValue
	Progress     whenValue
	BlockSize    blockSizeValue
	Bandwidth    byteRateValue
	Report       string
	ReportFormat string
	LogFile      string

	// Global flags
	ConfigFile string
	Verbose    bool
}

// AddGlobalFlags adds the flags shared by every command
func AddGlobalFlags(cmd *cobra.Command, flags *DiffFlags) {
	cmd.PersistentFlags().StringVar(
		&flags.ConfigFile,
		"config",
		"",
		"config file (default is $HOME/.config/durduff/config.yaml)",
	)
	cmd.PersistentFlags().BoolVarP(
		&flags.Verbose,
		"verbose",
		"v",
		false,
		"log at debug level",
	)
}

// AddDiffFlags adds the diff flags to the root command
func AddDiffFlags(cmd *cobra.Command, flags *DiffFlags) {
	flags.Color = whenValue(models.WhenAuto)
	flags.Progress = whenValue(models.WhenAuto)

	cmd.Flags().BoolVarP(&flags.Brief, "brief", "q", false, "report only when directories differ")
	cmd.Flags().BoolVarP(&flags.Null, "null", "0", false, "print raw NUL-separated paths")
	cmd.Flags().Var(&flags.Color, "color", "print output in color: never, always, auto")
	cmd.Flags().Var(&flags.Progress, "progress", "print progress reports: never, always, auto")
	cmd.Flags().VarP(&flags.BlockSize, "block-size", "b", "read files in blocks of <n> bytes")
	cmd.Flags().Var(&flags.Bandwidth, "bandwidth", "limit content reads to <n> bytes/second (e.g. \"10M\", 0 = unlimited)")
	cmd.Flags().StringVar(&flags.Report, "report", "", "write a run report to file")
	cmd.Flags().StringVar(&flags.ReportFormat, "report-format", "human", "run report format: human, json")
	cmd.Flags().StringVar(&flags.LogFile, "log-file", "", "write logs to file (enables logging)")
}

// whenValue is a never/always/auto flag
type whenValue models.When

func (w *whenValue) String() string { return string(*w) }

func (w *whenValue) Set(s string) error {
	v, err := models.ParseWhen(s)
	if err != nil {
		return errors.New("valid values are never, always, auto")
	}
	*w = whenValue(v)
	return nil
}

func (w *whenValue) Type() string { return "when" }

// blockSizeValue is a positive byte count
type blockSizeValue int

func (b *blockSizeValue) String() string {
	if *b == 0 {
		return ""
	}
	return strconv.Itoa(int(*b))
}

func (b *blockSizeValue) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return errors.New("must be a positive number of bytes")
	}
	*b = blockSizeValue(n)
	return nil
}

func (b *blockSizeValue) Type() string { return "n" }

// byteRateValue is a bytes-per-second rate with an optional K/M/G suffix
type byteRateValue int64

func (r *byteRateValue) String() string {
	if *r == 0 {
		return ""
	}
	return strconv.FormatInt(int64(*r), 10)
}

func (r *byteRateValue) Set(s string) error {
	n, err := parseByteRate(s)
	if err != nil {
		return err
	}
	*r = byteRateValue(n)
	return nil
}

func (r *byteRateValue) Type() string { return "n" }

// parseByteRate parses "1048576", "512K", "10M" or "1G" (binary multiples,
// an optional trailing "B" is accepted)
func parseByteRate(s string) (int64, error) {
	str := strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(s)), "B")
	if str == "" {
		return 0, fmt.Errorf("invalid rate %q", s)
	}

	multiplier := int64(1)
	switch str[len(str)-1] {
	case 'K':
		multiplier = 1 << 10
	case 'M':
		multiplier = 1 << 20
	case 'G':
		multiplier = 1 << 30
	}
	if multiplier > 1 {
		str = str[:len(str)-1]
	}

	n, err := strconv.ParseInt(str, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid rate %q", s)
	}
	if n > (1<<63-1)/multiplier {
		return 0, fmt.Errorf("rate %q is too large", s)
	}

	return n * multiplier, nil
}
