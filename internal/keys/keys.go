// Package keys classifies logical key tokens and resolves them to physical
// key codes on a standard US layout.
package keys

import "github.com/leandrodaf/midikey/sdk/contracts"

// shiftedPunctuation maps each shifted punctuation token to the unshifted
// character on the same physical key.
var shiftedPunctuation = map[string]string{
	"!":  "1",
	"@":  "2",
	"#":  "3",
	"$":  "4",
	"%":  "5",
	"^":  "6",
	"&":  "7",
	"*":  "8",
	"(":  "9",
	")":  "0",
	"_":  "-",
	"+":  "=",
	"{":  "[",
	"}":  "]",
	"|":  "\\",
	":":  ";",
	"\"": "'",
	"<":  ",",
	">":  ".",
	"?":  "/",
	"~":  "`",
}

// Split decomposes a key token into its base token and a shift flag. A
// shifted token is an uppercase Latin letter or one of the fixed punctuation
// set; everything else passes through unchanged.
func Split(token string) (base string, shift bool) {
	if len(token) == 1 && token[0] >= 'A' && token[0] <= 'Z' {
		return string(token[0] + ('a' - 'A')), true
	}
	if unshifted, ok := shiftedPunctuation[token]; ok {
		return unshifted, true
	}
	return token, false
}

// Key codes from linux/input-event-codes.h.
const (
	CodeLeftShift contracts.KeyCode = 42
	codeSpace     contracts.KeyCode = 57
)

// baseCodes maps base tokens to physical key codes. Tokens absent from this
// table are unsupported and produce no key events.
var baseCodes = map[string]contracts.KeyCode{
	"1": 2, "2": 3, "3": 4, "4": 5, "5": 6,
	"6": 7, "7": 8, "8": 9, "9": 10, "0": 11,
	"-": 12, "=": 13,
	"q": 16, "w": 17, "e": 18, "r": 19, "t": 20,
	"y": 21, "u": 22, "i": 23, "o": 24, "p": 25,
	"[": 26, "]": 27,
	"a": 30, "s": 31, "d": 32, "f": 33, "g": 34,
	"h": 35, "j": 36, "k": 37, "l": 38,
	";": 39, "'": 40, "`": 41, "\\": 43,
	"z": 44, "x": 45, "c": 46, "v": 47, "b": 48,
	"n": 49, "m": 50,
	",": 51, ".": 52, "/": 53,
	"Space": codeSpace,
}

// Code resolves a base token to its physical key code.
func Code(base string) (contracts.KeyCode, bool) {
	code, ok := baseCodes[base]
	return code, ok
}
