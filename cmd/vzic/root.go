package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "vzic",
		Short:        "Convert the IANA time zone database into RFC 5545 VTIMEZONE files",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().String("config", "", "YAML config file path (default: ./vzic.yaml if present)")
	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newFetchCmd())
	return cmd
}
