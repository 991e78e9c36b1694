package module

import (
	modkit "minutes/internal/modkit"
	mmodule "minutes/internal/modkit/module"
	"minutes/internal/services/extract/domain"
	leadsdom "minutes/internal/services/leads/domain"
	mindom "minutes/internal/services/minutes/domain"
	songsdom "minutes/internal/services/songs/domain"
)

// WithDepsModules pulls the extract ports out of the minutes, songs and leads modules
// leads may be nil for surfaces that never write
func WithDepsModules(minutes, songs, leads mmodule.Module) modkit.Option {
	p := domain.Ports{
		Minutes: mmodule.MustPortsOf[mindom.ReaderPort](minutes),
		Songs:   mmodule.MustPortsOf[songsdom.IndexPort](songs),
	}
	if leads != nil {
		p.Leads = mmodule.MustPortsOf[leadsdom.WriterPort](leads)
		p.Recorded = mmodule.MustPortsOf[leadsdom.RecordedPort](leads)
	}
	return modkit.WithPorts(p)
}
