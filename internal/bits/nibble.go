package bits

// Nibble helpers operate on a single 8-bit colour channel. The high nibble is bits 7-4, the low nibble bits 3-0.

const (
	highNibbleMask = 0xF0
	lowNibbleMask  = 0x0F
	nibbleWidth    = 4
)

func HighNibble(b byte) byte {
	return b & highNibbleMask
}

func LowNibble(b byte) byte {
	return b & lowNibbleMask
}

// Pack keeps the high nibble of carrier and stores the high nibble of payload in the low nibble of the result
func Pack(carrier, payload byte) byte {
	return HighNibble(carrier) | payload>>nibbleWidth
}

// Unpack moves the low nibble of b into the high nibble, leaving the low nibble zeroed
func Unpack(b byte) byte {
	return LowNibble(b) << nibbleWidth
}
