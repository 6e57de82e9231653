package models

// TransferRecord is one row pulled from the legacy join query. The three
// serialized fields are opaque blobs whose meaning is defined by the legacy
// codec, not by this package. Records are built once during extraction and
// never mutated.
type TransferRecord struct {
	User                 User
	SerializedInventory  string
	SerializedArmor      string
	SerializedEnderChest string
	ExpLevel             int
	ExpProgress          float32
	TotalExp             int
}
