package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alkime/coach/internal/app"
	"github.com/alkime/coach/internal/audio"
	"github.com/alkime/coach/internal/keyring"
	"github.com/alkime/coach/internal/logger"
	"github.com/alkime/coach/internal/recorder"
	"github.com/alkime/coach/internal/storage"
	"github.com/alkime/coach/internal/trainer"
	"github.com/alkime/coach/internal/tui"
	"github.com/alkime/coach/internal/workdir"
	tea "github.com/charmbracelet/bubbletea"
)

// CLI defines the coach command structure.
type CLI struct {
	// Default TUI command (runs when no subcommand given)
	TUI TUICmd `cmd:"" default:"withargs" help:"Launch the terminal sales trainer"`

	Scenario ScenarioCmd `cmd:"" help:"Generate one training scenario and print it"`
	Feedback FeedbackCmd `cmd:"" help:"Get feedback on an answer to a question"`
	Devices  DevicesCmd  `cmd:"" help:"List available audio capture devices"`
	Config   ConfigCmd   `cmd:"" help:"Manage configuration"`
}

// TUICmd is the default command that runs the TUI.
type TUICmd struct {
	GenerationFlags `embed:""`

	MaxTakeBytes int64  `flag:"" default:"16777216" help:"Max size of a rehearsal take (16MB)"`
	NoMic        bool   `flag:"" help:"Disable the rehearsal recorder"`
	Opener       string `flag:"" env:"COACH_OPENER" help:"Command that opens images and takes (default: open/xdg-open)"`
	Debug        bool   `flag:"" help:"Debug logging"`
}

// Run executes the TUI command.
//
//nolint:funlen // CLI command with multiple setup steps
func (c *TUICmd) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workdir.Prep(); err != nil {
		return fmt.Errorf("failed to prepare working directory: %w", err)
	}

	logPath, err := workdir.LogPath()
	if err != nil {
		return err
	}

	_, logFile, err := logger.SetupFileLogger(logPath, c.Debug)
	if err != nil {
		return err
	}
	defer logFile.Close()

	opts, err := c.options()
	if err != nil {
		return err
	}

	gw, _, err := app.NewGateway(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to set up generation: %w", err)
	}

	config := tui.Config{
		Controller: trainer.New(gw),
		Opener:     tui.SystemOpener{Command: c.Opener},
		Cancel:     cancel,
	}

	if !c.NoMic {
		rec, meter, err := c.newRecorder(opts.Media.Dir)
		if err != nil {
			return err
		}

		// always release the microphone, whatever state the UI left it in
		defer rec.Reset(context.WithoutCancel(ctx))

		config.Recorder = makeRecorderControls(ctx, rec, meter)
	}

	p := tea.NewProgram(tui.New(ctx, config), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}

	fmt.Println("finished. bye!")

	return nil
}

// newRecorder wires the microphone, MP3 finalizer and level meter. Takes are
// always written locally, even when scenario media lives in a bucket.
func (c *TUICmd) newRecorder(mediaDir string) (*recorder.Controller, *audio.LevelMeter, error) {
	takes, err := storage.NewLocal(mediaDir)
	if err != nil {
		return nil, nil, err
	}

	devConf := audio.DefaultDeviceConfig()
	meter := audio.NewLevelMeter(devConf.SampleRate*2, devConf.SampleRate*2)

	rec, err := recorder.New(recorder.Config{
		Capture:   audio.NewMicrophone(devConf),
		Finalizer: audio.MP3Finalizer{Store: takes, Device: devConf},
		Meter:     meter,
		MaxBytes:  c.MaxTakeBytes,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create recorder: %w", err)
	}

	return rec, meter, nil
}

// ScenarioCmd prints one generated scenario.
type ScenarioCmd struct {
	GenerationFlags `embed:""`

	JSON bool `flag:"" help:"Print the scenario as JSON"`
}

// Run executes the scenario command.
func (c *ScenarioCmd) Run() error {
	ctx := context.Background()

	opts, err := c.options()
	if err != nil {
		return err
	}

	gw, _, err := app.NewGateway(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to set up generation: %w", err)
	}

	slog.Info(trainer.LoadingScenario)

	sc, err := gw.GenerateScenario(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", trainer.ScenarioFailed, err)
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(sc)
	}

	if strings.HasPrefix(sc.ImageRef, "data:") {
		fmt.Println("Image: (inline; use --json to get the data URL)")
	} else {
		fmt.Printf("Image: %s\n", sc.ImageRef)
	}

	fmt.Printf("Question: %s\n", sc.Question)

	return nil
}

// FeedbackCmd evaluates an answer to a doctor's question.
type FeedbackCmd struct {
	GenerationFlags `embed:""`

	Question string `arg:"" help:"The doctor's question"`
	Answer   string `arg:"" help:"Your answer"`
}

// Run executes the feedback command.
func (c *FeedbackCmd) Run() error {
	if strings.TrimSpace(c.Answer) == "" {
		return errors.New("answer cannot be empty")
	}

	ctx := context.Background()

	opts, err := c.options()
	if err != nil {
		return err
	}

	// nothing is stored for feedback
	opts.Media.Store = app.MediaInline

	gw, _, err := app.NewGateway(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to set up generation: %w", err)
	}

	slog.Info(trainer.LoadingFeedback)

	text, err := gw.GetFeedback(ctx, c.Question, c.Answer)
	if err != nil {
		return fmt.Errorf("%s: %w", trainer.FeedbackFailed, err)
	}

	fmt.Println(text)

	return nil
}

// DevicesCmd lists available audio devices.
type DevicesCmd struct{}

// Run executes the devices command.
func (dcmd *DevicesCmd) Run() error {
	slog.Info("Enumerating audio capture devices...")

	devices, err := audio.EnumerateDevices()
	if err != nil {
		return fmt.Errorf("failed to enumerate audio devices: %w", err)
	}

	for _, dev := range devices {
		slog.Info("Audio Device",
			"name", dev.Name,
			"isDefault", dev.IsDefault,
			"formats", dev.Formats,
		)
	}

	return nil
}

// ConfigCmd groups configuration-related subcommands.
type ConfigCmd struct {
	SetKey    SetKeyCmd    `cmd:"" help:"Store an API key in system keychain"`
	DeleteKey DeleteKeyCmd `cmd:"" name:"delete-key" help:"Remove an API key from the system keychain"`
	ListKeys  ListKeysCmd  `cmd:"" name:"list-keys" help:"Show which API keys are configured"`
}

// SetKeyCmd stores an API key in the system keychain.
type SetKeyCmd struct {
	Service string `arg:"" enum:"gemini,openai,anthropic" help:"Service name (gemini, openai or anthropic)"`
	Secret  string `arg:"" help:"API key value"`
}

// Run executes the set-key command.
func (c *SetKeyCmd) Run() error {
	if strings.TrimSpace(c.Secret) == "" {
		return errors.New("API key cannot be empty")
	}

	apiKey, err := keyring.APIKeyFromServiceName(c.Service)
	if err != nil {
		return fmt.Errorf("invalid service: %w", err)
	}

	if err := keyring.Set(apiKey, c.Secret); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	fmt.Printf("%s API key stored in keychain\n", c.Service)

	return nil
}

// DeleteKeyCmd removes an API key from the system keychain.
type DeleteKeyCmd struct {
	Service string `arg:"" enum:"gemini,openai,anthropic" help:"Service name (gemini, openai or anthropic)"`
}

// Run executes the delete-key command.
func (c *DeleteKeyCmd) Run() error {
	apiKey, err := keyring.APIKeyFromServiceName(c.Service)
	if err != nil {
		return fmt.Errorf("invalid service: %w", err)
	}

	if err := keyring.Delete(apiKey); err != nil {
		return err
	}

	fmt.Printf("%s API key removed from keychain\n", c.Service)

	return nil
}

// ListKeysCmd shows which API keys are configured.
type ListKeysCmd struct{}

// Run executes the list-keys command.
//
//nolint:unparam // error return required by Kong interface
func (c *ListKeysCmd) Run() error {
	for _, apiKey := range keyring.AllAPIKeys() {
		switch {
		case os.Getenv(apiKey.EnvVar()) != "":
			fmt.Printf("%s: set by %s\n", apiKey.DisplayName(), apiKey.EnvVar())
		case keyring.IsSet(apiKey):
			fmt.Printf("%s: configured\n", apiKey.DisplayName())
		default:
			fmt.Printf("%s: not set\n", apiKey.DisplayName())
		}
	}

	fmt.Println("\nOnly the providers you select need a key. Run 'coach config set-key <service> <key>' to configure.")

	return nil
}

func main() {
	// Logs go to stderr so scenario and feedback output can be piped.
	logger.SetupConsoleLogger(os.Stderr, os.Getenv("COACH_DEBUG") != "")

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("coach"),
		kong.Description("Practice answering doctors' questions about Ozempic and get AI feedback."),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}
