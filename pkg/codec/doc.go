// Package codec implements the on-storage encoding of network credentials.
//
// A credential is stored as three fields packed back to back with no
// length prefixes:
//
//	[SSID bytes][0x00][Passphrase bytes][0x00][BSSID (6 bytes)]
//
// Field boundaries are discovered by scanning for the 0x00 terminator;
// the BSSID is fixed length and carries no terminator. A record therefore
// occupies len(ssid) + 1 + len(passphrase) + 1 + 6 bytes.
//
// # Free space
//
// Inside a record area, freed spans are overwritten with the fill byte
// 0xFF. The fill byte can never appear as a terminator, so a scan can skip
// freed spans without confusing them with the end of a field. Backends
// reuse fill runs for later insertions.
//
// # Cursor
//
// Scanning a terminator-delimited format by hand is easy to get wrong, so
// every read, write, and erase of the record area goes through Cursor:
// a position plus an explicit bound over any ByteRegion. ReadRecord,
// WriteRecord, and EraseRecord compose cursor primitives and are the only
// record-level operations the backends use.
//
// The package is pure: it performs no I/O and has no error conditions.
// An empty SSID is the sentinel for a malformed or absent entry and is
// rejected by the store before a save is ever scheduled.
package codec
