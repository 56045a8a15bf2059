package keyboardlayout

func newEnUS() *Layout {
	l := &Layout{ISOCode: "en-US", Name: "English (US)", Chars: make(map[rune]KeyCombo)}

	upper := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lower := "abcdefghijklmnopqrstuvwxyz"
	for i, c := range upper {
		l.Chars[c] = NewKeyCombo(keyForLetter(byte(lower[i]))).WithShift()
	}
	for _, c := range lower {
		l.Chars[c] = NewKeyCombo(keyForLetter(byte(c)))
	}

	digits := []struct {
		digit, shifted rune
		key            string
	}{
		{'1', '!', "Digit1"}, {'2', '@', "Digit2"}, {'3', '#', "Digit3"},
		{'4', '$', "Digit4"}, {'5', '%', "Digit5"}, {'6', '^', "Digit6"},
		{'7', '&', "Digit7"}, {'8', '*', "Digit8"}, {'9', '(', "Digit9"},
		{'0', ')', "Digit0"},
	}
	for _, d := range digits {
		l.Chars[d.digit] = NewKeyCombo(d.key)
		l.Chars[d.shifted] = NewKeyCombo(d.key).WithShift()
	}

	punct := []struct {
		plain, shifted rune
		key            string
	}{
		{'-', '_', "Minus"},
		{'=', '+', "Equal"},
		{'\'', '"', "Quote"},
		{',', '<', "Comma"},
		{'/', '?', "Slash"},
		{'.', '>', "Period"},
		{';', ':', "Semicolon"},
		{'[', '{', "BracketLeft"},
		{']', '}', "BracketRight"},
		{'\\', '|', "Backslash"},
		{'`', '~', "Backquote"},
	}
	for _, p := range punct {
		l.Chars[p.plain] = NewKeyCombo(p.key)
		l.Chars[p.shifted] = NewKeyCombo(p.key).WithShift()
	}

	l.Chars[' '] = NewKeyCombo("Space")
	l.Chars['\n'] = NewKeyCombo("Enter")

	return l
}

func keyForLetter(c byte) string {
	return "Key" + string([]byte{c - 'a' + 'A'})
}
