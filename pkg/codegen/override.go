package codegen

// OverrideData is the live radio state the override tables are rendered for
type OverrideData struct {
	TxPower   string // txPower field, hex
	TxPowerHi string // high PA dBm, empty when unused
	LoDivider uint64
	Freq      string // carrier frequency text in MHz
	FrontEnd  uint64 // config.frontEndMode
}
