package main

import (
	"context"
	"fmt"
	"time"

	"github.com/orgpilot/orgpilot/internal/config"
	"github.com/orgpilot/orgpilot/internal/llm/huggingface"
	"github.com/orgpilot/orgpilot/internal/llm/ollama"
	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Probe configured LLM providers and report availability",
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	hf := huggingface.New(cfg.LLM.HuggingFace.APIKey, cfg.LLM.HuggingFace.Model, cfg.LLM.HuggingFace.Endpoint)
	status, message := hf.Status(ctx)
	fmt.Printf("huggingface: %s", status)
	if message != "" {
		fmt.Printf(" (%s)", message)
	}
	fmt.Println()

	local := ollama.New(cfg.LLM.Ollama.Endpoint, cfg.LLM.Ollama.Model)
	if err := local.Ping(ctx); err != nil {
		fmt.Printf("ollama: unavailable (%v)\n", err)
	} else {
		fmt.Println("ollama: available")
	}

	return nil
}
