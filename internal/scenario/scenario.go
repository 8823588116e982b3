// Package scenario provides quick-start prompts for the conversation.
//
// Four scenarios are built in. More can be added as TOML files:
//
//	title   = "Plan a wedding budget"
//	input   = "Help me budget a wedding for {{guests}} guests"
//	context = "The user is saving for a wedding next year."
//	mode    = "student"
//
// Only title and input are required. Input may carry {{key}} placeholders
// filled from key:value arguments; {{input}} is replaced by the user's own
// message.
package scenario

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/longkey1/fincoach/internal/fincoach"
)

// Scenario is one quick-start prompt.
type Scenario struct {
	Name    string  `toml:"-"`
	Title   string  `toml:"title"`
	Input   string  `toml:"input"`
	Context string  `toml:"context,omitempty"`
	Mode    *string `toml:"mode,omitempty"`

	// Dir is the directory the scenario was loaded from, empty for built-ins.
	Dir string `toml:"-"`
}

// Builtins returns the built-in scenarios in display order.
func Builtins() []Scenario {
	return []Scenario{
		{Name: "emergency-fund", Title: "Build an emergency fund", Input: "Build an emergency fund"},
		{Name: "credit-card-debt", Title: "Pay off credit card debt", Input: "Pay off credit card debt"},
		{Name: "invest-monthly", Title: "Invest $200 per month", Input: "Invest $200 per month"},
		{Name: "credit-score", Title: "Improve my credit score", Input: "Improve my credit score"},
	}
}

// Builtin returns the n-th built-in scenario, counting from 1.
func Builtin(n int) (Scenario, bool) {
	all := Builtins()
	if n < 1 || n > len(all) {
		return Scenario{}, false
	}
	return all[n-1], true
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	var s Scenario
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("error decoding scenario file: %w", err)
	}
	if strings.TrimSpace(s.Input) == "" {
		return nil, fmt.Errorf("scenario file %s has no input", path)
	}
	if s.Mode != nil {
		if _, err := fincoach.ParseUserMode(*s.Mode); err != nil {
			return nil, fmt.Errorf("invalid mode in scenario file %s: %w", path, err)
		}
	}
	return &s, nil
}

// DisplayTitle returns the title, falling back to the name.
func (s Scenario) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Name
}

// UserMode returns the scenario's mode, or fallback when it sets none.
func (s Scenario) UserMode(fallback fincoach.UserMode) fincoach.UserMode {
	if s.Mode == nil {
		return fallback
	}
	mode, err := fincoach.ParseUserMode(*s.Mode)
	if err != nil {
		return fallback
	}
	return mode
}

// Render fills the input's placeholders. message replaces {{input}}; args
// are key:value pairs for the other placeholders.
func (s Scenario) Render(message string, args []string) (string, error) {
	argMap, err := processArgs(args)
	if err != nil {
		return "", fmt.Errorf("error processing arguments: %w", err)
	}

	replacements := map[string]string{"input": message}
	for key, value := range argMap {
		replacements[key] = value
	}

	text := s.Input
	for key, value := range replacements {
		text = strings.ReplaceAll(text, fmt.Sprintf("{{%s}}", key), value)
	}

	// A built-in has no placeholder; a message given alongside it is appended.
	if message != "" && !strings.Contains(s.Input, "{{input}}") {
		text = text + "\n\n" + message
	}
	return strings.TrimSpace(text), nil
}

// processArgs parses key:value arguments.
func processArgs(args []string) (map[string]string, error) {
	result := make(map[string]string)
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if strings.HasPrefix(arg, `"`) && strings.HasSuffix(arg, `"`) {
			arg = strings.Trim(arg, `"`)
		}

		parts := strings.SplitN(arg, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid argument format: %s. Expected format: key:value", arg)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.ReplaceAll(value, `\:`, ":")
		value = strings.ReplaceAll(value, `\"`, `"`)

		if key == "input" {
			return nil, fmt.Errorf("'input' is a reserved keyword and cannot be used as a key")
		}
		result[key] = value
	}
	return result, nil
}
