package domain

import (
	leadsdom "minutes/internal/services/leads/domain"
	mindom "minutes/internal/services/minutes/domain"
	songsdom "minutes/internal/services/songs/domain"
)

// Ports the extract module consumes from other modules
// Leads and Recorded may be nil for read-only surfaces
type Ports struct {
	Minutes  mindom.ReaderPort
	Songs    songsdom.IndexPort
	Leads    leadsdom.WriterPort
	Recorded leadsdom.RecordedPort
}
