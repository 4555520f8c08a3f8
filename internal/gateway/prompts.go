package gateway

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPack []byte

// PromptPack is the fixed set of prompts the gateway chooses from.
type PromptPack struct {
	ImagePrompts    []string `yaml:"image_prompts"`
	QuestionPrompts []string `yaml:"question_prompts"`
	Feedback        struct {
		System string `yaml:"system"`
		Rubric string `yaml:"rubric"`
	} `yaml:"feedback"`
}

// DefaultPack returns the embedded Ozempic prompt pack.
func DefaultPack() PromptPack {
	pack, err := ParsePack(defaultPack)
	if err != nil {
		panic(fmt.Sprintf("embedded prompt pack is invalid: %v", err))
	}

	return pack
}

// LoadPack reads a prompt pack from a YAML file.
func LoadPack(path string) (PromptPack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PromptPack{}, fmt.Errorf("read prompt pack: %w", err)
	}

	return ParsePack(data)
}

// ParsePack decodes and validates a YAML prompt pack.
func ParsePack(data []byte) (PromptPack, error) {
	var pack PromptPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return PromptPack{}, fmt.Errorf("parse prompt pack: %w", err)
	}

	if err := pack.Validate(); err != nil {
		return PromptPack{}, err
	}

	return pack, nil
}

// Validate checks that every prompt set is populated.
func (p PromptPack) Validate() error {
	var errs []error
	if len(p.ImagePrompts) == 0 {
		errs = append(errs, errors.New("image_prompts is empty"))
	}

	if len(p.QuestionPrompts) == 0 {
		errs = append(errs, errors.New("question_prompts is empty"))
	}

	if p.Feedback.Rubric == "" {
		errs = append(errs, errors.New("feedback.rubric is empty"))
	}

	return errors.Join(errs...)
}

// FeedbackPrompt embeds the question and answer verbatim ahead of the rubric.
func (p PromptPack) FeedbackPrompt(question, answer string) string {
	return fmt.Sprintf("\nThe doctor's question was: \"%s\"\n\nThe sales rep's answer was: \"%s\"\n\n%s",
		question, answer, p.Feedback.Rubric)
}
