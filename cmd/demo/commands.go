package main

import (
	"flag"
	"fmt"
	"strings"

	"primitive-viewer/internal/commands"
	"primitive-viewer/internal/config"
	"primitive-viewer/internal/controller"
	"primitive-viewer/internal/debug"
	"primitive-viewer/internal/logger"
	"primitive-viewer/internal/primitives"
)

// app is the state the terminal commands act on.
type app struct {
	lines     *logger.Logger
	ctl       *controller.Controller
	hud       *debug.Debug
	catalog   *primitives.Catalog
	// saved is the config file content without env overrides; save updates only
	// the values the terminal can change.
	saved     config.Prefs
	prefsPath string
}

func (a *app) register(reg *commands.Registry) {
	reg.Register("device", "switch to the next display and pick a new primitive", nil, func([]string) error {
		a.ctl.ChangeDevice()
		a.report()
		return nil
	})

	primFS := flag.NewFlagSet("primitive", flag.ContinueOnError)
	kind := primFS.String("kind", "", "primitive kind ("+kindList()+"); random when empty")
	reg.Register("primitive", "pick a random primitive, or -kind K", primFS, func([]string) error {
		k := *kind
		*kind = ""
		if k == "" {
			a.ctl.ChangePrimitive()
		} else if err := a.ctl.SelectKind(primitives.Kind(k)); err != nil {
			return err
		}
		a.report()
		return nil
	})

	reg.Register("list", "list the primitive catalog", nil, func([]string) error {
		for i, d := range a.catalog.All() {
			a.lines.Log(fmt.Sprintf("%d: %s", i+1, d))
		}
		return nil
	})

	rateFS := flag.NewFlagSet("rate", flag.ContinueOnError)
	rate := rateFS.Float64("value", 0, "per-frame clear color step in (0,1]")
	reg.Register("rate", "show the color rate, or set it with -value F", rateFS, func([]string) error {
		v := *rate
		*rate = 0
		if v != 0 {
			if err := a.ctl.SetRate(v); err != nil {
				return err
			}
		}
		a.lines.Log(fmt.Sprintf("color rate %g", a.ctl.Rate()))
		return nil
	})

	fpsFS, fpsRun := toggle("fps", func() bool { return a.hud.ShowFPS }, a.hud.SetShowFPS)
	reg.Register("fps", "toggle the FPS counter, or force it with -show/-hide", fpsFS, fpsRun)
	memFS, memRun := toggle("mem", func() bool { return a.hud.ShowMemAlloc }, a.hud.SetShowMemAlloc)
	reg.Register("mem", "toggle the heap counter, or force it with -show/-hide", memFS, memRun)

	reg.Register("save", "write the current settings to the config file", nil, func([]string) error {
		a.saved.ColorRate = a.ctl.Rate()
		a.saved.ShowFPS = a.hud.ShowFPS
		a.saved.ShowMem = a.hud.ShowMemAlloc
		if err := config.Save(a.prefsPath, a.saved); err != nil {
			return fmt.Errorf("save %s: %w", a.prefsPath, err)
		}
		a.lines.Log("saved " + a.prefsPath)
		return nil
	})

	reg.Register("help", "list commands", nil, func([]string) error {
		for _, line := range reg.Help() {
			a.lines.Log(line)
		}
		return nil
	})
}

// toggle builds the flags and run function of a -show/-hide overlay command.
// Without either flag the overlay flips.
func toggle(name string, get func() bool, set func(bool)) (*flag.FlagSet, func([]string) error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	show := fs.Bool("show", false, "show the overlay")
	hide := fs.Bool("hide", false, "hide the overlay")
	return fs, func([]string) error {
		// Parsed values persist in the flag set between executions.
		defer func() { *show, *hide = false, false }()
		switch {
		case *show && *hide:
			return fmt.Errorf("%s: -show and -hide are exclusive", name)
		case *show:
			set(true)
		case *hide:
			set(false)
		default:
			set(!get())
		}
		return nil
	}
}

func (a *app) report() {
	a.lines.Log(a.ctl.Status())
}

func kindList() string {
	names := make([]string, len(primitives.Kinds))
	for i, k := range primitives.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
