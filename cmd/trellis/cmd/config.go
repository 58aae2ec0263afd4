package cmd

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func init() {
	RegisterCommand(&Command{
		Name:  "config",
		Short: "Show the resolved configuration",
		Long: `Print the configuration trellis would run with: trellis.yaml from
the project directory over the built-in defaults, with the application
name taken from go.mod when unset.`,
		Usage: "trellis config",
		Run:   runConfig,
	})
}

func runConfig(env *Env, _ []string) error {
	cfg, err := loadConfig(env)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = env.Out.Write(data)
	return err
}
