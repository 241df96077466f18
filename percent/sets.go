package percent

// EncodeSet reports whether a byte must be written as a %XX escape.
type EncodeSet func(b byte) bool

// C0Control is the C0 control percent-encode set: bytes up to 0x1F and above 0x7E.
func C0Control(b byte) bool {
	return b <= 0x1F || b > 0x7E
}

// Fragment adds space, '"', '<', '>' and '`' to C0Control.
func Fragment(b byte) bool {
	if C0Control(b) {
		return true
	}
	switch b {
	case ' ', '"', '<', '>', '`':
		return true
	}
	return false
}

// Query adds space, '"', '#', '<' and '>' to C0Control.
func Query(b byte) bool {
	if C0Control(b) {
		return true
	}
	switch b {
	case ' ', '"', '#', '<', '>':
		return true
	}
	return false
}

// SpecialQuery is Query plus the single quote. It applies to queries of special URLs.
func SpecialQuery(b byte) bool {
	return Query(b) || b == '\''
}

// Path is Query plus '?', '`', '{' and '}'.
func Path(b byte) bool {
	if Query(b) {
		return true
	}
	switch b {
	case '?', '`', '{', '}':
		return true
	}
	return false
}

// Userinfo is Path plus '/', ':', ';', '=', '@', '[', '\\', ']', '^' and '|'.
func Userinfo(b byte) bool {
	if Path(b) {
		return true
	}
	switch b {
	case '/', ':', ';', '=', '@', '[', '\\', ']', '^', '|':
		return true
	}
	return false
}
