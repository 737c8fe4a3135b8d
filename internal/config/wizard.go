package config

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// RunWizard interactively builds a starter ~/.movrrc.yaml, backing the
// "movr init" subcommand. Adapted from the teacher's setup.RunSetup.
func RunWizard(mgr *Manager) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("===========================================")
	fmt.Println("   movr configuration")
	fmt.Println("===========================================")
	fmt.Println("Let's set up your default structure and AI backend.")
	fmt.Println()

	cfg, _ := mgr.Load()

	cfg.Structure = promptChoice(reader, "Default input structure", cfg.Structure,
		[]string{"flat", "paragraphs", "pairs", "rows"})

	indentStr := prompt(reader, "Indent width", strconv.Itoa(cfg.Indent))
	if v, err := strconv.Atoi(indentStr); err == nil && v >= 1 {
		cfg.Indent = v
	}

	backend := promptChoice(reader, "AI rename-hook backend (none/ollama/openai)", defaultIfEmpty(cfg.AI.Backend, "none"),
		[]string{"none", "ollama", "openai"})
	if backend == "none" {
		cfg.AI.Backend = ""
	} else {
		cfg.AI.Backend = backend
		if backend == "ollama" {
			configureOllama(reader, &cfg.AI.Ollama)
		} else {
			configureOpenAI(reader, &cfg.AI.OpenAI)
		}
	}

	cfg.ExecutionLogPath = prompt(reader, "Execution log path", cfg.ExecutionLogPath)

	fmt.Println("\nConfiguration summary:")
	fmt.Println("----------------------")
	fmt.Printf("Structure: %s\n", cfg.Structure)
	fmt.Printf("Indent: %d\n", cfg.Indent)
	fmt.Printf("AI backend: %s\n", defaultIfEmpty(cfg.AI.Backend, "none"))
	fmt.Printf("Execution log: %s\n", cfg.ExecutionLogPath)
	fmt.Println("----------------------")

	confirm := prompt(reader, "Save configuration? (y/n)", "y")
	if strings.ToLower(confirm) != "y" {
		return fmt.Errorf("init cancelled by user")
	}

	if err := mgr.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("\nConfiguration saved.")
	return nil
}

func configureOllama(reader *bufio.Reader, cfg *OllamaConfig) {
	fmt.Println("\n--- Ollama configuration ---")
	for {
		cfg.BaseURL = prompt(reader, "Ollama base URL", cfg.BaseURL)
		if !validateURL(cfg.BaseURL) {
			fmt.Println("Invalid URL format. Please enter a valid URL (e.g., http://localhost:11434)")
			continue
		}
		fmt.Print("Testing connection... ")
		if testOllamaConnection(cfg.BaseURL) {
			fmt.Println("connected")
			break
		}
		fmt.Println("connection failed")
		if strings.ToLower(prompt(reader, "Retry? (y/n)", "y")) != "y" {
			break
		}
	}
	cfg.Model = prompt(reader, "Model name", cfg.Model)

	for {
		timeoutStr := prompt(reader, "Timeout (seconds)", fmt.Sprintf("%.0f", cfg.Timeout.Seconds()))
		if v, err := strconv.Atoi(timeoutStr); err == nil && v > 0 && v <= 300 {
			cfg.Timeout = time.Duration(v) * time.Second
			break
		}
		fmt.Println("Invalid timeout. Must be between 1 and 300 seconds")
	}
}

func configureOpenAI(reader *bufio.Reader, cfg *OpenAIConfig) {
	fmt.Println("\n--- OpenAI configuration ---")
	for {
		cfg.BaseURL = prompt(reader, "API base URL", cfg.BaseURL)
		if validateURL(cfg.BaseURL) {
			break
		}
		fmt.Println("Invalid URL format. Please enter a valid URL")
	}
	for {
		cfg.APIKey = prompt(reader, "API key", "")
		if len(cfg.APIKey) >= 10 {
			break
		}
		fmt.Println("API key is required and must be at least 10 characters")
	}
	cfg.Model = prompt(reader, "Model name", cfg.Model)
}

func prompt(reader *bufio.Reader, label, defaultValue string) string {
	if defaultValue != "" {
		fmt.Printf("%s [%s]: ", label, defaultValue)
	} else {
		fmt.Printf("%s: ", label)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue
	}
	return input
}

func promptChoice(reader *bufio.Reader, label, defaultValue string, choices []string) string {
	for {
		v := prompt(reader, fmt.Sprintf("%s (%s)", label, strings.Join(choices, "/")), defaultValue)
		for _, c := range choices {
			if v == c {
				return v
			}
		}
		fmt.Printf("Invalid choice. Pick one of: %s\n", strings.Join(choices, ", "))
	}
}

func defaultIfEmpty(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func validateURL(urlStr string) bool {
	return strings.HasPrefix(urlStr, "http://") || strings.HasPrefix(urlStr, "https://")
}

func testOllamaConnection(baseURL string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
