package types

// GenesisState is a portable snapshot of the local stealth history.
type GenesisState struct {
	Params Params `json:"params" yaml:"params"`
	// Announcements carry their stealth address in StealthAddress.
	Announcements []Announcement `json:"announcements" yaml:"announcements"`
}
