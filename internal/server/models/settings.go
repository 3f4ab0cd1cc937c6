package models

import "time"

// SettingsRecord is the stored form of the Bynder settings singleton. The
// permanent token is kept sealed; AvailableDerivatives is nil until the
// first successful derivative fetch.
type SettingsRecord struct {
	Domain               string
	SealedToken          []byte
	DefaultSearchTerm    string
	ImageDerivative      string
	AvailableDerivatives []string
	UpdatedAt            time.Time
}
