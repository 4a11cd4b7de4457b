package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/rvext/internal/config"
	"github.com/reglet-dev/rvext/internal/extension"
	"github.com/reglet-dev/rvext/internal/hostsim"
)

// defaultCapacity matches the output buffer size the Host passes.
const defaultCapacity = 10240

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rvext-cli",
		Short: "Drive the rvext entry points without the Host",
		Long: `rvext-cli - call RVExtensionVersion, RVExtension and RVExtensionArgs
in-process, exactly as the Host would, and print the response buffer and any
callback the extension pushes back.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "Settings file (default $RVEXT_CONFIG or rvext.yaml)")
	root.PersistentFlags().Int("capacity", defaultCapacity, "Output buffer capacity in bytes")
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")

	root.AddCommand(newVersionCmd(), newCallCmd(), newArgsCmd(), newSchemaCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session is one simulated Host: a loaded extension with a printing callback.
type session struct {
	ext      *extension.Extension
	capacity int
	out      io.Writer
}

func newSession(cmd *cobra.Command) (*session, error) {
	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor {
		color.NoColor = true
	}

	capacity, _ := cmd.Flags().GetInt("capacity")
	if capacity < 0 {
		return nil, fmt.Errorf("capacity must not be negative, got %d", capacity)
	}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := os.Setenv(config.EnvPath, path); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", config.EnvPath, err)
		}
	}

	out := cmd.OutOrStdout()
	mem := hostsim.NewMemory()
	ext := extension.Load(mem)

	cbColor := color.New(color.FgYellow)
	ext.RegisterCallback(hostsim.NewRecorder(mem, hostsim.WithOnCall(func(inv hostsim.Invocation) {
		cbColor.Fprintf(out, "callback: name=%q function=%q data=%q\n", inv.Name, inv.Function, inv.Data)
	})))

	return &session{ext: ext, capacity: capacity, out: out}, nil
}

func (s *session) close() {
	_ = s.ext.Close()
}

// print writes the buffer as the Host would read it.
func (s *session) print(buf *hostsim.Buffer) {
	color.New(color.FgGreen).Fprintln(s.out, buf.String())
}
