package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rulegen/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/rulegen/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/rulegen/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/rulegen/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/rulegen/internal/adapters/telemetry"          //nolint:depguard // Wired in app layer
	"go.trai.ch/rulegen/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/rulegen/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds the objects the command line layer needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.NodeID,
			logger.NodeID,
			cas.NodeID,
			progrock.NodeID,
			telemetry.CacheEventsNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	filesystem, err := graft.Dep[ports.ProjectFilesystem](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.StateStore](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	events, err := graft.Dep[ports.CacheEventLogFactory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, filesystem, log, store, tel, events), nil
}
