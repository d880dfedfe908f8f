package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/planetsim/internal/config"
	"github.com/san-kum/planetsim/internal/experiment"
	"github.com/san-kum/planetsim/internal/gui"
	"github.com/san-kum/planetsim/internal/viz"
	"github.com/spf13/cobra"
)

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, presetArg(args))
	if err != nil {
		return err
	}

	exp, err := experiment.Build(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}

	opts := gui.DefaultOptions()
	opts.Width = cfg.Window.Width
	opts.Height = cfg.Window.Height
	opts.Title = cfg.Window.Title
	opts.FPS = cfg.Window.FPS
	opts.FontSize = cfg.Window.FontSize
	opts.Scale = cfg.Window.Scale()
	opts.Logger = logger.WithPrefix("gui")

	return gui.NewApp(exp.Simulator(), exp.System(), opts).Run(cmd.Context())
}

func runLive(cmd *cobra.Command, args []string) error {
	name := presetArg(args)
	if name == "" && configFile == "" {
		info := make(map[string]string)
		for _, p := range config.ListPresets() {
			info[p] = config.Describe(p)
		}
		final, err := tea.NewProgram(viz.NewPicker(config.ListPresets(), info), tea.WithContext(cmd.Context())).Run()
		if err != nil {
			return err
		}
		name = final.(viz.Picker).Chosen
		if name == "" {
			return nil
		}
	}

	cfg, err := loadConfig(cmd, name)
	if err != nil {
		return err
	}

	exp, err := experiment.Build(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}

	model := viz.NewModel(exp.Simulator(), exp.System(), cfg.Label())
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
		return fmt.Errorf("live view: %w", err)
	}
	return nil
}
