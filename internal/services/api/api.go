// Package api provides the HTTP API for the application
package api

import (
	"minutes/internal/platform/config"
	"minutes/internal/platform/logger"
	phttp "minutes/internal/platform/net/http"
	"minutes/internal/platform/store"

	"minutes/internal/modkit"
	"minutes/internal/modkit/httpkit"
	"minutes/internal/modkit/module"
	"minutes/internal/modkit/swaggerkit"

	apiextract "minutes/internal/services/api/extract/module"
	metamod "minutes/internal/services/api/meta/module"
	extractmod "minutes/internal/services/extract/module"
	leadsmod "minutes/internal/services/leads/module"
	minutesmod "minutes/internal/services/minutes/module"
	songsmod "minutes/internal/services/songs/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
// the only failure is a grammar or books file that does not load
func Mount(r phttp.Router, opt Options) error {
	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		if sql, err := opt.Store.SQL(); err == nil {
			deps.SQL = sql
		}
		if opt.Store.CH != nil {
			deps.CH = opt.Store.CH
		}
	}

	// data modules first; extract pulls its ports out of them
	minutes := minutesmod.New(deps)
	songs := songsmod.New(deps)
	leads := leadsmod.New(deps)

	extract, err := extractmod.New(deps, extractmod.Options{},
		extractmod.WithDepsModules(minutes, songs, leads))
	if err != nil {
		return err
	}
	ex := module.MustPortsOf[extractmod.Ports](extract).Extractor

	mods := []module.Module{
		minutes,
		songs,
		leads,
		extract,
		metamod.New(deps, modkit.WithPorts(metamod.Info{
			ServiceName: "minutes-api",
			Grammar:     ex.Grammar().Fingerprint,
		})),
		apiextract.New(deps, modkit.WithPorts(apiextract.Ports{Extractor: ex})),
	}

	apiCfg := opt.Config.Prefix("CORE_API_")
	swaggerkit.Mount(r, swaggerkit.Options{
		Enabled:     opt.EnableSwagger,
		TitleSuffix: apiCfg.MayString("DOCS_TITLE_SUFFIX", ""),
	})
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// everything else is versioned and runs behind the common stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(apiCfg), func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
	return nil
}
