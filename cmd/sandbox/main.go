package main

import (
	"log"

	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/platform"
	"github.com/hubastard/canopy/engine/scratch"
)

func main() {
	cfg, err := loadConfig("canopy.yaml")
	if err != nil {
		log.Fatal(err)
	}

	scratch.Init(4 * 1024)

	if err := core.Run(&sandboxApp{}, cfg, platform.NewGLFWBackend); err != nil {
		log.Fatal(err)
	}
}
