// Package percent implements the percent-encode sets and the UTF-8 percent codec
// used when URL components are normalized.
//
// An EncodeSet is a predicate over a single byte of UTF-8 output. The sets nest:
//
//	C0Control ⊂ Fragment
//	C0Control ⊂ Query ⊂ SpecialQuery
//	Query ⊂ Path ⊂ Userinfo
//
// Every byte above 0x7E belongs to every set, so non-ASCII input always leaves
// the codec as %XX escapes.
//
// # Usage
//
//	percent.EncodeRune('é', percent.Path)      // "%C3%A9"
//	percent.EncodeString("a b", percent.Query) // "a%20b"
//	percent.DecodeString("%41%zz")             // []byte("A%zz")
package percent
