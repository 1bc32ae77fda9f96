package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/lonely-engine/audio"
	"github.com/lixenwraith/lonely-engine/config"
	"github.com/lixenwraith/lonely-engine/engine"
	"github.com/lixenwraith/lonely-engine/input"
	"github.com/lixenwraith/lonely-engine/render"
	"github.com/lixenwraith/lonely-engine/terminal"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// RootOptions holds global flags and the resolved configuration
type RootOptions struct {
	ConfigPath string
	Debug      bool
	Color      string

	cfg     *config.Config
	logFile *os.File
}

// NewRootCommand creates the root command, running the demo by default
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lonely",
		Short:         "lonely - a tiny real-time terminal loop",
		Long:          "A fixed-cadence terminal loop with key transitions, a command queue and a double-buffered renderer.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logFile != nil {
				opts.logFile.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts, demoOptions{})
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "write logs to logs/lonely.log")
	cmd.PersistentFlags().StringVar(&opts.Color, "color", "", "color mode: auto, truecolor, 256")

	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewKeysCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// resolve loads the configuration, applies flag overrides and starts logging
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = o.Debug
	}
	if flags.Changed("color") {
		cfg.ColorMode = o.Color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	o.logFile = setupLogging(cfg.Debug)
	return nil
}

// NewVersionCommand prints the build version
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lonely %s\n", version)
		},
	}
}

// closingSource stops the engine once the terminal input is gone
type closingSource struct {
	src  engine.KeySource
	stop func()
}

func (c *closingSource) Poll() (input.KeySet, error) {
	keys, err := c.src.Poll()
	if errors.Is(err, input.ErrInputClosed) && c.stop != nil {
		c.stop()
	}
	return keys, err
}

// runLoop wires terminal, input, audio and engine, then runs until quit
func runLoop(cfg *config.Config, setup func(e *engine.Engine, p *audio.Player) error) error {
	colorMode, err := terminal.ParseColorMode(cfg.ColorMode)
	if err != nil {
		return err
	}
	presentMode, err := render.ParsePresentMode(cfg.PresentMode)
	if err != nil {
		return err
	}

	term := terminal.New(colorMode)

	width, height := cfg.Width, cfg.Height
	if width == 0 || height == 0 {
		tw, th := term.Size()
		if width == 0 {
			width = tw
		}
		if height == 0 {
			height = th
		}
	}

	player := audio.NewPlayer(audio.Config{
		Enabled:    cfg.Audio.Enabled,
		Volume:     cfg.Audio.Volume,
		SampleRate: cfg.Audio.SampleRate,
	})
	if err := player.Init(); err != nil {
		// Non-fatal, the loop runs without sound
		log.Printf("[AUDIO] initialization failed: %v", err)
	}
	defer player.Close()

	src := &closingSource{src: input.NewTerminalSource(term.Events(), cfg.Input.Hold)}
	eng := engine.New(width, height,
		engine.WithTerminal(term),
		engine.WithSink(term.Output()),
		engine.WithInput(src),
		engine.WithFrameBudget(cfg.FrameBudget),
		engine.WithPresentMode(presentMode),
		engine.WithColorMode(colorMode),
	)
	src.stop = eng.Stop

	if err := setup(eng, player); err != nil {
		return err
	}

	log.Printf("[MAIN] loop start %dx%d color=%s present=%s budget=%v",
		width, height, colorMode, presentMode, cfg.FrameBudget)
	err = eng.Run()
	log.Printf("[MAIN] loop exit: %v [%s]", err, eng.Status().Snapshot())
	return err
}
