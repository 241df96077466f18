package host

import (
	"fmt"
	"strings"
)

// ipv4NumberCap saturates oversized parts. Every bound checked against a part
// is at most 2^32, so clamping keeps comparisons exact without big integers.
const ipv4NumberCap = 1 << 40

// EndsInNumber reports whether the last label of a domain (ignoring one
// trailing dot) is all ASCII digits or parses as an IPv4 number. Hosts that
// end in a number are parsed as IPv4 addresses.
func EndsInNumber(input string) bool {
	parts := strings.Split(input, ".")
	if parts[len(parts)-1] == "" {
		if len(parts) == 1 {
			return false
		}
		parts = parts[:len(parts)-1]
	}
	last := parts[len(parts)-1]
	if last != "" && isASCIIDigits(last) {
		return true
	}
	_, _, ok := parseIPv4Number(last)
	return ok
}

// ParseIPv4 parses the legacy IPv4 notation accepted in URLs: one to four
// dot-separated parts, each decimal, octal (leading 0) or hex (leading 0x),
// with the final part filling all remaining low-order bytes.
func ParseIPv4(input string) (uint32, error) {
	return parseIPv4(input, nil)
}

func parseIPv4(input string, report func(error)) (uint32, error) {
	parts := strings.Split(input, ".")
	if parts[len(parts)-1] == "" {
		reportTo(report, ErrIPv4EmptyPart)
		if len(parts) > 1 {
			parts = parts[:len(parts)-1]
		}
	}
	if len(parts) > 4 {
		return 0, fmt.Errorf("%w: %d parts", ErrIPv4TooManyParts, len(parts))
	}

	numbers := make([]uint64, 0, len(parts))
	for _, part := range parts {
		n, nonDecimal, ok := parseIPv4Number(part)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrIPv4NonNumericPart, part)
		}
		if nonDecimal {
			reportTo(report, ErrIPv4NonDecimalPart)
		}
		numbers = append(numbers, n)
	}

	for i, n := range numbers {
		if n <= 255 {
			continue
		}
		reportTo(report, ErrIPv4OutOfRangePart)
		if i < len(numbers)-1 {
			return 0, fmt.Errorf("%w: part %d is %d", ErrIPv4OutOfRangePart, i+1, n)
		}
	}

	last := numbers[len(numbers)-1]
	if last >= 1<<(8*uint(5-len(numbers))) {
		return 0, fmt.Errorf("%w: final part %d does not fit", ErrIPv4OutOfRangePart, last)
	}

	ipv4 := last
	for i, n := range numbers[:len(numbers)-1] {
		ipv4 += n << (8 * uint(3-i))
	}
	return uint32(ipv4), nil
}

// parseIPv4Number parses one part with radix detection. nonDecimal is set when
// a hex or octal prefix was used.
func parseIPv4Number(input string) (n uint64, nonDecimal bool, ok bool) {
	if input == "" {
		return 0, false, false
	}
	radix := uint64(10)
	switch {
	case len(input) >= 2 && (input[:2] == "0x" || input[:2] == "0X"):
		input, radix, nonDecimal = input[2:], 16, true
	case len(input) >= 2 && input[0] == '0':
		input, radix, nonDecimal = input[1:], 8, true
	}
	if input == "" {
		return 0, nonDecimal, true
	}

	for i := 0; i < len(input); i++ {
		d, valid := digitValue(input[i], radix)
		if !valid {
			return 0, nonDecimal, false
		}
		n = n*radix + d
		if n > ipv4NumberCap {
			n = ipv4NumberCap
		}
	}
	return n, nonDecimal, true
}

func digitValue(c byte, radix uint64) (uint64, bool) {
	var d uint64
	switch {
	case '0' <= c && c <= '9':
		d = uint64(c - '0')
	case radix == 16 && 'a' <= c && c <= 'f':
		d = uint64(c-'a') + 10
	case radix == 16 && 'A' <= c && c <= 'F':
		d = uint64(c-'A') + 10
	default:
		return 0, false
	}
	return d, d < radix
}

func isASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func reportTo(report func(error), err error) {
	if report != nil {
		report(err)
	}
}
