package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/rvext/internal/config"
	"github.com/reglet-dev/rvext/internal/hostsim"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Call RVExtensionVersion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			buf := hostsim.NewBuffer(s.capacity)
			s.ext.Version(buf.Ptr(), buf.Cap())
			s.print(buf)
			return nil
		},
	}
}

func newCallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call <request>",
		Short: "Call RVExtension with a single request string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			buf := hostsim.NewBuffer(s.capacity)
			s.ext.Call(buf.Ptr(), buf.Cap(), hostsim.CString(args[0]))
			s.print(buf)
			return nil
		},
	}
}

func newArgsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "args <function> [arg...]",
		Short: "Call RVExtensionArgs with a function name and arguments",
		Long: `Call RVExtensionArgs with a function name and arguments.

Arguments are passed verbatim; quote them the way the Host serializes them,
e.g. rvext-cli args echo '"hello"' 42`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			buf := hostsim.NewBuffer(s.capacity)
			argv, argc := hostsim.Argv(args[1:]...)
			s.ext.CallArgs(buf.Ptr(), buf.Cap(), hostsim.CString(args[0]), argv, argc)
			s.print(buf)
			return nil
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
