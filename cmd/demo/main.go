package main

import (
	"flag"
	"math/rand/v2"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"primitive-viewer/internal/commands"
	"primitive-viewer/internal/config"
	"primitive-viewer/internal/controller"
	"primitive-viewer/internal/debug"
	"primitive-viewer/internal/env"
	"primitive-viewer/internal/graphics"
	"primitive-viewer/internal/logger"
	"primitive-viewer/internal/primitives"
	"primitive-viewer/internal/terminal"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "preferences file")
	envPath := flag.String("env", env.DefaultPath, "dotenv file with DEMO_* overrides")
	flag.Parse()

	envKeys, envErr := env.Load(*envPath)
	st := loadPrefs(*configPath)
	prefs := st.effective

	lines := logger.New(prefs.LogFile)
	log := lines.Slog(logger.ParseLevel(prefs.LogLevel))
	if envErr != nil {
		log.Warn("reading env file failed", "path", *envPath, "error", envErr)
	} else if len(envKeys) > 0 {
		log.Debug("env file loaded", "path", *envPath, "keys", envKeys)
	}
	if st.loadErr != nil {
		log.Warn("config unusable; using defaults", "path", *configPath, "error", st.loadErr)
	}
	if st.envErr != nil {
		log.Warn("ignoring environment overrides", "error", st.envErr)
	}

	catalog, err := primitives.LoadOrDefault(prefs.Catalog)
	if err != nil {
		log.Warn("catalog unusable; using built-in primitives", "path", prefs.Catalog, "error", err)
	}

	seed := prefs.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	log.Info("starting", "seed", seed, "primitives", catalog.Len(), "rate", prefs.ColorRate)

	ctl := controller.New(log, graphics.NewBackend(prefs.TiltDegrees), graphics.Monitors{}, catalog, rng, prefs.ColorRate)
	hud := debug.New()
	hud.SetShowFPS(prefs.ShowFPS)
	hud.SetShowMemAlloc(prefs.ShowMem)

	a := &app{
		lines:     lines,
		ctl:       ctl,
		hud:       hud,
		catalog:   catalog,
		saved:     st.saved,
		prefsPath: *configPath,
	}
	reg := commands.NewRegistry()
	a.register(reg)

	term := terminal.New(lines, reg)
	term.Bind(rl.KeyD, "device")
	term.Bind(rl.KeyP, "primitive")
	term.Bind(rl.KeySpace, "primitive")
	term.Bind(rl.KeyF, "fps")

	graphics.Run(prefs.Window, graphics.Hooks{
		Start:  ctl.Start,
		Update: term.Update,
		Clear:  ctl.ClearColor,
		Draw: func() {
			ctl.Draw()
			hud.Draw(ctl.Status())
			term.Draw()
		},
		Stop: ctl.Close,
	})
	log.Info("stopped")
}

// prefsState is the preferences as stored in the config file and as run with
// DEMO_* overrides applied on top.
type prefsState struct {
	saved     config.Prefs
	effective config.Prefs
	loadErr   error
	envErr    error
}

func loadPrefs(path string) prefsState {
	var st prefsState
	st.saved, st.loadErr = config.Load(path)
	st.effective, st.envErr = config.ApplyEnv(st.saved)
	return st
}
