package types

// Stealth module log events and attribute keys
const (
	EventTypeGenerate = "generate_stealth_address"
	EventTypeOpen     = "open_stealth_address"
	EventTypeScan     = "scan_stealth_addresses"
	EventTypeSave     = "save_announcement"

	AttributeKeyAddress   = "address"
	AttributeKeyRecipient = "recipient"
	AttributeKeyEphemeral = "ephemeral_public_key"
	AttributeKeyMethod    = "method"
	AttributeKeyStrategy  = "strategy"
	AttributeKeyState     = "state"
	AttributeKeyIndex     = "index"
	AttributeKeyCount     = "count"
	AttributeKeyOwned     = "owned"
)
