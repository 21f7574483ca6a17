package mapping

// DefaultTable returns the built-in five-octave table covering notes 36
// through 96 (C2 to C7). White keys walk the number row and letter rows in
// ascending note order; black keys carry the shifted token of the adjacent
// white key. This exact layout is what existing saved mapping documents and
// users of keyboard-driven piano applications expect, so it is spelled out
// literally rather than generated.
func DefaultTable() Table {
	return Table{
		// C2 octave
		36: "1", 37: "!", 38: "2", 39: "@", 40: "3", 41: "4",
		42: "$", 43: "5", 44: "%", 45: "6", 46: "^", 47: "7",
		// C3 octave
		48: "8", 49: "&", 50: "9", 51: "*", 52: "0", 53: "q",
		54: "Q", 55: "w", 56: "W", 57: "e", 58: "E", 59: "r",
		// C4 octave
		60: "t", 61: "T", 62: "y", 63: "Y", 64: "u", 65: "i",
		66: "I", 67: "o", 68: "O", 69: "p", 70: "P", 71: "a",
		// C5 octave
		72: "s", 73: "S", 74: "d", 75: "D", 76: "f", 77: "g",
		78: "G", 79: "h", 80: "H", 81: "j", 82: "J", 83: "k",
		// C6 octave
		84: "l", 85: "L", 86: "z", 87: "Z", 88: "x", 89: "c",
		90: "C", 91: "v", 92: "V", 93: "b", 94: "B", 95: "n",
		// C7
		96: "m",
	}
}
