package encodings

// Byte tables for the encodings x/text has no chart for. Both start from
// Latin-1 and override the slots where Adobe's tables differ.

var standardTable [256]rune
var pdfDocTable [256]rune

func init() {
	for i := range standardTable {
		standardTable[i] = rune(i)
		pdfDocTable[i] = rune(i)
	}

	for code, r := range standardOverrides {
		standardTable[code] = r
	}
	// StandardEncoding leaves most of the high range unassigned.
	for _, code := range standardUnassigned {
		standardTable[code] = '�'
	}

	for code, r := range pdfDocOverrides {
		pdfDocTable[code] = r
	}
}

// StandardEncoding slots that differ from Latin-1 (PDF 32000-1, Annex D.2).
var standardOverrides = map[byte]rune{
	0x27: '’', // quoteright
	0x60: '‘', // quoteleft
	0xA1: '¡', // exclamdown
	0xA2: '¢', // cent
	0xA3: '£', // sterling
	0xA4: '⁄', // fraction
	0xA5: '¥', // yen
	0xA6: 'ƒ', // florin
	0xA7: '§', // section
	0xA8: '¤', // currency
	0xA9: '\'', // quotesingle
	0xAA: '“', // quotedblleft
	0xAB: '«', // guillemotleft
	0xAC: '‹', // guilsinglleft
	0xAD: '›', // guilsinglright
	0xAE: 'ﬁ', // fi
	0xAF: 'ﬂ', // fl
	0xB1: '–', // endash
	0xB2: '†', // dagger
	0xB3: '‡', // daggerdbl
	0xB4: '·', // periodcentered
	0xB6: '¶', // paragraph
	0xB7: '•', // bullet
	0xB8: '‚', // quotesinglbase
	0xB9: '„', // quotedblbase
	0xBA: '”', // quotedblright
	0xBB: '»', // guillemotright
	0xBC: '…', // ellipsis
	0xBD: '‰', // perthousand
	0xBF: '¿', // questiondown
	0xC1: '`', // grave
	0xC2: '´', // acute
	0xC3: 'ˆ', // circumflex
	0xC4: '˜', // tilde
	0xC5: '¯', // macron
	0xC6: '˘', // breve
	0xC7: '˙', // dotaccent
	0xC8: '¨', // dieresis
	0xCA: '˚', // ring
	0xCB: '¸', // cedilla
	0xCD: '˝', // hungarumlaut
	0xCE: '˛', // ogonek
	0xCF: 'ˇ', // caron
	0xD0: '—', // emdash
	0xE1: 'Æ', // AE
	0xE3: 'ª', // ordfeminine
	0xE8: 'Ł', // Lslash
	0xE9: 'Ø', // Oslash
	0xEA: 'Œ', // OE
	0xEB: 'º', // ordmasculine
	0xF1: 'æ', // ae
	0xF5: 'ı', // dotlessi
	0xF8: 'ł', // lslash
	0xF9: 'ø', // oslash
	0xFA: 'œ', // oe
	0xFB: 'ß', // germandbls
}

var standardUnassigned = []byte{
	0xA0, 0xB0, 0xB5, 0xBE, 0xC0, 0xC9, 0xCC, 0xD1, 0xD2, 0xD3, 0xD4,
	0xD5, 0xD6, 0xD7, 0xD8, 0xD9, 0xDA, 0xDB, 0xDC, 0xDD, 0xDE, 0xDF,
	0xE0, 0xE2, 0xE4, 0xE5, 0xE6, 0xE7, 0xEC, 0xED, 0xEE, 0xEF, 0xF0,
	0xF2, 0xF3, 0xF4, 0xF6, 0xF7, 0xFC, 0xFD, 0xFE, 0xFF,
}

// PDFDocEncoding slots that differ from Latin-1 (PDF 32000-1, Table D.2).
var pdfDocOverrides = map[byte]rune{
	0x18: '˘', // breve
	0x19: 'ˇ', // caron
	0x1A: 'ˆ', // circumflex
	0x1B: '˙', // dotaccent
	0x1C: '˝', // hungarumlaut
	0x1D: '˛', // ogonek
	0x1E: '˚', // ring
	0x1F: '˜', // tilde
	0x80: '•', // bullet
	0x81: '†', // dagger
	0x82: '‡', // daggerdbl
	0x83: '…', // ellipsis
	0x84: '—', // emdash
	0x85: '–', // endash
	0x86: 'ƒ', // florin
	0x87: '⁄', // fraction
	0x88: '‹', // guilsinglleft
	0x89: '›', // guilsinglright
	0x8A: '−', // minus
	0x8B: '‰', // perthousand
	0x8C: '„', // quotedblbase
	0x8D: '“', // quotedblleft
	0x8E: '”', // quotedblright
	0x8F: '‘', // quoteleft
	0x90: '’', // quoteright
	0x91: '‚', // quotesinglbase
	0x92: '™', // trademark
	0x93: 'ﬁ', // fi
	0x94: 'ﬂ', // fl
	0x95: 'Ł', // Lslash
	0x96: 'Œ', // OE
	0x97: 'Š', // Scaron
	0x98: 'Ÿ', // Ydieresis
	0x99: 'Ž', // Zcaron
	0x9A: 'ı', // dotlessi
	0x9B: 'ł', // lslash
	0x9C: 'œ', // oe
	0x9D: 'š', // scaron
	0x9E: 'ž', // zcaron
	0x9F: '�', // unassigned
	0xA0: '€', // Euro
	0xAD: '�', // unassigned
}
