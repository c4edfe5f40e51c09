package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/zeusync/crowdsim/internal/core/scenario"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective scenario configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}
			data, err := cfg.ToYAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func loadConfig(cmd *cobra.Command) (*scenario.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		cfg := scenario.DefaultConfig()
		return &cfg, nil
	}
	return scenario.LoadFile(path)
}
