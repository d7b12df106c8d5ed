// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/railfare/internal/adapters/admission"
	_ "go.trai.ch/railfare/internal/adapters/cache"
	_ "go.trai.ch/railfare/internal/adapters/config"
	_ "go.trai.ch/railfare/internal/adapters/logger"
	_ "go.trai.ch/railfare/internal/adapters/railway"
	_ "go.trai.ch/railfare/internal/adapters/runnumber"
	_ "go.trai.ch/railfare/internal/adapters/session"
	_ "go.trai.ch/railfare/internal/adapters/stations"
	_ "go.trai.ch/railfare/internal/adapters/store"
	_ "go.trai.ch/railfare/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/railfare/internal/app"
	_ "go.trai.ch/railfare/internal/engine/fare"
	_ "go.trai.ch/railfare/internal/engine/query"
)
