package cli

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at link time with -ldflags "-X github.com/sdejongh/durduff/internal/cli.Version=..."
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

type buildInfo struct {
	version   string
	commit    string
	buildDate string
	goVersion string
	platform  string
}

// currentBuild falls back to the VCS revision stamped by the go tool when
// no commit was set at link time
func currentBuild() buildInfo {
	b := buildInfo{
		version:   Version,
		commit:    Commit,
		buildDate: BuildDate,
		goVersion: runtime.Version(),
		platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if b.commit != "none" {
		return b
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				b.commit = s.Value
			}
		}
	}
	return b
}

func (b buildInfo) write(w io.Writer, binName string) {
	fmt.Fprintf(w, "%s %s\n", binName, b.version)
	fmt.Fprintf(w, "  Commit:     %s\n", b.commit)
	fmt.Fprintf(w, "  Built:      %s\n", b.buildDate)
	fmt.Fprintf(w, "  Go version: %s\n", b.goVersion)
	fmt.Fprintf(w, "  OS/Arch:    %s\n", b.platform)
}

// NewVersionCommand creates the version command. The root command's
// --version flag prints only the first line of its output.
func NewVersionCommand(binName string) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), Version)
				return
			}
			currentBuild().write(cmd.OutOrStdout(), binName)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "print only the version number")

	return cmd
}
