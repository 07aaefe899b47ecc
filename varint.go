package binarypack

// LEB128 group geometry. A 64 bit value needs at most ten 7-bit groups; a
// shift of 70 or more means the encoding claims more bits than the domain has.
const (
	maxVarintBytes = 10
	maxVarintShift = 70
)

// zigzag maps a signed integer to an unsigned one so that values of small
// magnitude, positive or negative, encode to small LEB128 values:
// 0, -1, 1, -2, 2, ... become 0, 1, 2, 3, 4, ...
func zigzag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// unzigzag is the inverse of zigzag.
func unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
