package codec

// BSSIDSize is the fixed length of a hardware address within a record.
const BSSIDSize = 6

// FillByte marks freed storage inside a record area. It is distinct from
// the 0x00 field terminator, so a scan can tell "no data here" from the
// end of a field.
const FillByte = 0xFF

// Credential is one stored network credential: the unit of storage.
type Credential struct {
	SSID       string          // uniqueness key, never empty in a live record
	Passphrase string          // may be empty (open network)
	BSSID      [BSSIDSize]byte // raw hardware address, no terminator
}

// EncodedSize returns the number of bytes the credential occupies on
// storage: both string fields with their terminators plus the BSSID.
func (c *Credential) EncodedSize() int {
	return len(c.SSID) + 1 + len(c.Passphrase) + 1 + BSSIDSize
}

// WriteRecord encodes a credential at the cursor position.
// Format: ssid bytes, 0x00, passphrase bytes, 0x00, 6 BSSID bytes.
func WriteRecord(c *Cursor, cred *Credential) {
	c.WriteField([]byte(cred.SSID))
	c.WriteField([]byte(cred.Passphrase))
	c.WriteBytes(cred.BSSID[:])
}

// ReadRecord decodes the next credential at the cursor, skipping any fill
// run that precedes it. It returns the credential, the offset of its first
// SSID byte, and false when the cursor ran out of bounds before a full
// record was read.
func ReadRecord(c *Cursor) (Credential, int, bool) {
	if !c.SkipFill() {
		return Credential{}, 0, false
	}
	start := c.Pos()

	var cred Credential
	ssid, ok := c.ReadUntilZero()
	if !ok {
		return Credential{}, 0, false
	}
	cred.SSID = string(ssid)

	pass, ok := c.ReadUntilZero()
	if !ok {
		return Credential{}, 0, false
	}
	cred.Passphrase = string(pass)

	bssid, ok := c.ReadBytes(BSSIDSize)
	if !ok {
		return Credential{}, 0, false
	}
	copy(cred.BSSID[:], bssid)

	return cred, start, true
}

// EraseRecord overwrites the record starting at the cursor position with
// the fill byte: both terminated fields including their terminators, then
// the BSSID bytes. Surrounding bytes are not touched and nothing shifts.
func EraseRecord(c *Cursor) bool {
	if !c.EraseField() {
		return false
	}
	if !c.EraseField() {
		return false
	}
	return c.Fill(BSSIDSize)
}
