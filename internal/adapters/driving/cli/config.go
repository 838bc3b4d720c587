package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

// knownConfigKeys documents the settings the pipeline reads. Other keys are
// stored but ignored.
var knownConfigKeys = map[string]string{
	"ollama.url":                  "Ollama base URL (default http://localhost:11434)",
	"ollama.embedding_model":      "embedding model (default nomic-embed-text)",
	"ollama.llm_model":            "generation model (default llama3.2)",
	"ollama.requests_per_second":  "embedding request rate cap (default 10)",
	"chunking.size":               "characters per chunk (default 800)",
	"chunking.overlap":            "overlapping characters between chunks (default 80)",
	"chunking.entries_per_chunk":  "transcript entries per chunk (default 10)",
	"storage.data_dir":            "data directory (default ~/.recall/data)",
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and change settings stored in ~/.recall/config.toml.`,
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a single configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	keys := make([]string, 0, len(knownConfigKeys))
	for key := range knownConfigKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		val, ok := configStore.Get(key)
		if !ok {
			cmd.Printf("%-28s (default)  %s\n", key, knownConfigKeys[key])
			continue
		}
		cmd.Printf("%-28s %-10v %s\n", key, val, knownConfigKeys[key])
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	val, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	cmd.Printf("%v\n", val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	if _, known := knownConfigKeys[key]; !known {
		cmd.PrintErrf("warning: %q is not a key recall reads\n", key)
	}

	if err := configStore.Set(key, parseConfigValue(raw)); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("%s = %s\n", key, raw)
	return nil
}

// parseConfigValue keeps TOML types sensible: bools and integers are stored
// as such, everything else as a string.
func parseConfigValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil && (raw == "true" || raw == "false") {
		return b
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return raw
}
