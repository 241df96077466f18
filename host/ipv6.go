package host

import (
	"fmt"

	"github.com/jongio/urlkit/percent"
)

const eof = -1

// ParseIPv6 parses the text between the brackets of an IPv6 host: up to eight
// hex pieces, at most one "::" compression, and an optional dotted IPv4 tail
// filling the last two pieces.
func ParseIPv6(input string) ([8]uint16, error) {
	var address [8]uint16
	pieceIndex := 0
	compress := -1
	pointer := 0

	at := func(i int) int {
		if i < len(input) {
			return int(input[i])
		}
		return eof
	}

	if at(pointer) == ':' {
		if at(pointer+1) != ':' {
			return address, ErrIPv6InvalidCompression
		}
		pointer += 2
		pieceIndex++
		compress = pieceIndex
	}

	for at(pointer) != eof {
		if pieceIndex == 8 {
			return address, ErrIPv6TooManyPieces
		}
		if at(pointer) == ':' {
			if compress != -1 {
				return address, ErrIPv6MultipleCompression
			}
			pointer++
			pieceIndex++
			compress = pieceIndex
			continue
		}

		value, length := 0, 0
		for length < 4 && at(pointer) != eof && percent.IsHexDigit(input[pointer]) {
			value = value*0x10 + hexValue(input[pointer])
			pointer++
			length++
		}

		switch at(pointer) {
		case '.':
			if length == 0 {
				return address, ErrIPv4InIPv6InvalidPart
			}
			pointer -= length
			if pieceIndex > 6 {
				return address, ErrIPv4InIPv6TooManyPieces
			}
			numbersSeen := 0
			for at(pointer) != eof {
				ipv4Piece := -1
				if numbersSeen > 0 {
					if at(pointer) != '.' || numbersSeen >= 4 {
						return address, ErrIPv4InIPv6InvalidPart
					}
					pointer++
				}
				if !isDigit(at(pointer)) {
					return address, ErrIPv4InIPv6InvalidPart
				}
				for isDigit(at(pointer)) {
					number := at(pointer) - '0'
					switch ipv4Piece {
					case -1:
						ipv4Piece = number
					case 0:
						return address, fmt.Errorf("%w: leading zero", ErrIPv4InIPv6InvalidPart)
					default:
						ipv4Piece = ipv4Piece*10 + number
					}
					if ipv4Piece > 255 {
						return address, ErrIPv4InIPv6OutOfRange
					}
					pointer++
				}
				address[pieceIndex] = address[pieceIndex]*0x100 + uint16(ipv4Piece)
				numbersSeen++
				if numbersSeen == 2 || numbersSeen == 4 {
					pieceIndex++
				}
			}
			if numbersSeen != 4 {
				return address, ErrIPv4InIPv6TooFewParts
			}
			return finishIPv6(address, pieceIndex, compress)
		case ':':
			pointer++
			if at(pointer) == eof {
				return address, ErrIPv6InvalidCodePoint
			}
		case eof:
		default:
			return address, fmt.Errorf("%w: %q", ErrIPv6InvalidCodePoint, input[pointer])
		}

		address[pieceIndex] = uint16(value)
		pieceIndex++
	}

	return finishIPv6(address, pieceIndex, compress)
}

// finishIPv6 moves the pieces after the compression point to the end.
func finishIPv6(address [8]uint16, pieceIndex, compress int) ([8]uint16, error) {
	if compress == -1 {
		if pieceIndex != 8 {
			return address, ErrIPv6TooFewPieces
		}
		return address, nil
	}
	swaps := pieceIndex - compress
	pieceIndex = 7
	for pieceIndex != 0 && swaps > 0 {
		j := compress + swaps - 1
		address[pieceIndex], address[j] = address[j], address[pieceIndex]
		pieceIndex--
		swaps--
	}
	return address, nil
}

func isDigit(c int) bool {
	return '0' <= c && c <= '9'
}

func hexValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
