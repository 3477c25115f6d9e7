// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rulegen/internal/adapters/cas"
	_ "go.trai.ch/rulegen/internal/adapters/config"
	_ "go.trai.ch/rulegen/internal/adapters/fs"
	_ "go.trai.ch/rulegen/internal/adapters/logger"
	_ "go.trai.ch/rulegen/internal/adapters/telemetry"
	_ "go.trai.ch/rulegen/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/rulegen/internal/app"
)
