package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/registry"
)

var configCmd = &cobra.Command{
	Use:   "config <game>",
	Short: "Print the default config of a game",
	Long: `Print the embedded default YAML of a game. Save it to
~/.playroom/configs/<game>.yaml or ./configs/<game>.yaml to customize it.

Examples:
  playroom config snake > ~/.playroom/configs/snake.yaml
  playroom config match`,
	Args: cobra.ExactArgs(1),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	name := args[0]
	if strings.HasPrefix(name, "match_") {
		name = "match"
	}
	data := config.GetDefaultYAML(name)
	if data == nil {
		return fmt.Errorf("%w %q", registry.ErrUnknownGame, args[0])
	}
	_, err := cmd.OutOrStdout().Write(data)
	return err
}
