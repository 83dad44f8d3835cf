package codec

// ByteRegion is any byte-addressable area a cursor can walk. Both the raw
// storage region and plain in-memory buffers satisfy it.
type ByteRegion interface {
	ReadByte(off int) byte
	WriteByte(off int, v byte)
}

// Bytes adapts a byte slice to the ByteRegion interface for decoding and
// building serialized pools in memory.
type Bytes []byte

// ReadByte returns the byte at off, or the fill byte when off is past the
// end of the slice.
func (b Bytes) ReadByte(off int) byte {
	if off >= len(b) {
		return FillByte
	}
	return b[off]
}

// WriteByte stores v at off. Writes past the end are dropped; the caller
// sizes the slice before building into it.
func (b Bytes) WriteByte(off int, v byte) {
	if off < len(b) {
		b[off] = v
	}
}

// Cursor walks a ByteRegion within an explicit bound. All record scanning
// goes through it so the terminator-delimited format is decoded and bounds
// checked in exactly one place.
type Cursor struct {
	region ByteRegion
	pos    int
	limit  int
}

// NewCursor returns a cursor positioned at pos that refuses to read or
// write at offsets >= limit.
func NewCursor(region ByteRegion, pos, limit int) *Cursor {
	return &Cursor{region: region, pos: pos, limit: limit}
}

// Pos returns the cursor's current offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Seek moves the cursor to an absolute offset.
func (c *Cursor) Seek(pos int) {
	c.pos = pos
}

// Next returns the byte at the cursor and advances. ok is false once the
// bound is reached.
func (c *Cursor) Next() (byte, bool) {
	if c.pos >= c.limit {
		return 0, false
	}
	v := c.region.ReadByte(c.pos)
	c.pos++
	return v, true
}

// Peek returns the byte at the cursor without advancing.
func (c *Cursor) Peek() (byte, bool) {
	if c.pos >= c.limit {
		return 0, false
	}
	return c.region.ReadByte(c.pos), true
}

// ReadUntilZero reads bytes up to the next 0x00 terminator, consuming the
// terminator but not returning it. ok is false when the bound is hit before
// a terminator appears.
func (c *Cursor) ReadUntilZero() ([]byte, bool) {
	var field []byte
	for {
		v, ok := c.Next()
		if !ok {
			return nil, false
		}
		if v == 0x00 {
			return field, true
		}
		field = append(field, v)
	}
}

// ReadBytes reads exactly n raw bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, bool) {
	if c.pos+n > c.limit {
		return nil, false
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = c.region.ReadByte(c.pos + i)
	}
	c.pos += n
	return out, true
}

// SkipFill advances past a run of fill bytes, stopping at the first byte
// that is not FillByte. ok is false when the bound is reached first.
func (c *Cursor) SkipFill() bool {
	for {
		v, ok := c.Peek()
		if !ok {
			return false
		}
		if v != FillByte {
			return true
		}
		c.pos++
	}
}

// WriteField writes the field bytes followed by the 0x00 terminator.
func (c *Cursor) WriteField(field []byte) {
	c.WriteBytes(field)
	c.WriteBytes([]byte{0x00})
}

// WriteBytes writes raw bytes at the cursor, advancing past them.
func (c *Cursor) WriteBytes(b []byte) {
	for _, v := range b {
		c.region.WriteByte(c.pos, v)
		c.pos++
	}
}

// EraseField overwrites bytes with the fill byte up to and including the
// next 0x00 terminator. ok is false when the bound is hit before the
// terminator, in which case the span up to the bound has been filled.
func (c *Cursor) EraseField() bool {
	for {
		if c.pos >= c.limit {
			return false
		}
		v := c.region.ReadByte(c.pos)
		c.region.WriteByte(c.pos, FillByte)
		c.pos++
		if v == 0x00 {
			return true
		}
	}
}

// Fill writes n fill bytes at the cursor.
func (c *Cursor) Fill(n int) bool {
	if c.pos+n > c.limit {
		return false
	}
	for i := 0; i < n; i++ {
		c.region.WriteByte(c.pos, FillByte)
		c.pos++
	}
	return true
}
