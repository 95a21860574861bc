package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/kpango/glg"

	pkg "github.com/gucio321/symbolcleanup/pkg"
	"github.com/gucio321/symbolcleanup/pkg/buildconfig"
)

type Flags struct {
	Pattern    string
	ConfigPath string
	Workers    int
	Verify     bool
	Quiet      bool
	preset     string
	makePreset bool
}

func main() {
	var f Flags
	flag.StringVar(&f.Pattern, "p", "", "sprite path or glob (overrides -c)")
	flag.StringVar(&f.ConfigPath, "c", "", "build config.json; dist.cssimg + src.images.vectorSprite.symbolName is used as the pattern")
	flag.IntVar(&f.Workers, "j", 1, "number of files processed at once")
	flag.BoolVar(&f.Verify, "verify", false, "make sure cleaned sprites still load as SVG before writing")
	flag.BoolVar(&f.Quiet, "q", false, "do not log processed files")
	flag.StringVar(&f.preset, "preset", "", "JSON preset file path. This will override all other flags")
	flag.BoolVar(&f.makePreset, "make-preset", false, "auto-generate preset")
	flag.Parse()

	if f.makePreset {
		out, err := json.MarshalIndent(f, "", "\t")
		if err != nil {
			glg.Fatalf("Unable to generate preset: %v", err)
		}
		fmt.Println(string(out))
		glg.Infof("Presets generated")
		return
	}

	if f.preset != "" {
		data, err := os.ReadFile(f.preset)
		if err != nil {
			glg.Fatalf("Unable to read preset from %s: %v (use valid file or empty to not use presets)", f.preset, err)
		}

		if err := json.Unmarshal(data, &f); err != nil {
			glg.Fatalf("Unable to parse preset from %s: %v", f.preset, err)
		}
	}

	if f.Quiet {
		glg.Get().SetLevelMode(glg.INFO, glg.NONE)
	}

	pattern, err := resolvePattern(f)
	if err != nil {
		glg.Fatalf("Cannot resolve sprite location: %v", err)
	}

	cleaner := pkg.NewCleaner().Workers(f.Workers)
	if f.Verify {
		cleaner.Verify()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cleaner.Process(ctx, pattern); err != nil {
		stop()
		glg.Fatalf("Cannot clean up %s: %v", pattern, err)
	}
}

func resolvePattern(f Flags) (string, error) {
	if f.Pattern != "" {
		return f.Pattern, nil
	}

	var (
		cfg *buildconfig.Config
		err error
	)

	if f.ConfigPath != "" {
		cfg, err = buildconfig.Load(f.ConfigPath)
	} else {
		cfg, err = buildconfig.Default()
	}

	if err != nil {
		return "", err
	}

	return cfg.Pattern(), nil
}
