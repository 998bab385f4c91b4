package data

// cp437Pictures holds the glyphs code page 437 draws for bytes 0x00-0x1F.
// charmap decodes that range as ASCII control characters instead.
var cp437Pictures = [32]rune{
	' ', '☺', '☻', '♥', '♦', '♣', '♠', '•', '◘', '○', '◙', '♂', '♀', '♪', '♫', '☼',
	'►', '◄', '↕', '‼', '¶', '§', '▬', '↨', '↑', '↓', '→', '←', '∟', '↔', '▲', '▼',
}

// cp437House is drawn for 0x7F (DEL).
const cp437House = '⌂'

var cp437PictureCodes = func() map[rune]int {
	codes := make(map[rune]int, len(cp437Pictures))
	for code, r := range cp437Pictures[1:] {
		codes[r] = code + 1
	}
	codes[cp437House] = 0x7F
	return codes
}()

func isControl(r rune) bool { return r < 0x20 || r == 0x7F }
