package keyboardlayout

// accentSet holds the shared dead-accent prototypes (built by esAccents)
// used by accented vowels below: acute, diaeresis, circumflex, grave and tilde are all
// struck as their own key first, then the vowel.
type accentSet struct {
	trema, acute, hat, grave, tilde KeyCombo
}

func esAccents() accentSet {
	return accentSet{
		trema: NewKeyCombo("Quote").WithShift(),
		acute: NewKeyCombo("Quote"),
		hat:   NewKeyCombo("BracketRight").WithShift(),
		grave: NewKeyCombo("BracketRight"),
		tilde: NewKeyCombo("Digit4").WithAltRight(),
	}
}

func newEsES() *Layout {
	l := &Layout{ISOCode: "es-ES", Name: "Español", Chars: make(map[rune]KeyCombo)}
	ac := esAccents()

	type vowel struct {
		upper, lower                               rune
		uDiaeresis, uAcute, uHat, uGrave, uTilde    rune
		lDiaeresis, lAcute, lHat, lGrave, lTilde    rune
		key                                         string
	}
	vowels := []vowel{
		{upper: 'A', lower: 'a', uDiaeresis: 'Ä', uAcute: 'Á', uHat: 'Â', uGrave: 'À', uTilde: 'Ã',
			lDiaeresis: 'ä', lAcute: 'á', lHat: 'â', lGrave: 'à', lTilde: 'ã', key: "KeyA"},
		{upper: 'E', lower: 'e', uDiaeresis: 'Ë', uAcute: 'É', uHat: 'Ê', uGrave: 'È', uTilde: 'Ẽ',
			lDiaeresis: 'ë', lAcute: 'é', lHat: 'ê', lGrave: 'è', lTilde: 'ẽ', key: "KeyE"},
		{upper: 'I', lower: 'i', uDiaeresis: 'Ï', uAcute: 'Í', uHat: 'Î', uGrave: 'Ì', uTilde: 'Ĩ',
			lDiaeresis: 'ï', lAcute: 'í', lHat: 'î', lGrave: 'ì', lTilde: 'ĩ', key: "KeyI"},
		{upper: 'O', lower: 'o', uDiaeresis: 'Ö', uAcute: 'Ó', uHat: 'Ô', uGrave: 'Ò', uTilde: 'Õ',
			lDiaeresis: 'ö', lAcute: 'ó', lHat: 'ô', lGrave: 'ò', lTilde: 'õ', key: "KeyO"},
		{upper: 'U', lower: 'u', uDiaeresis: 'Ü', uAcute: 'Ú', uHat: 'Û', uGrave: 'Ù', uTilde: 'Ũ',
			lDiaeresis: 'ü', lAcute: 'ú', lHat: 'û', lGrave: 'ù', lTilde: 'ũ', key: "KeyU"},
	}
	for _, v := range vowels {
		l.Chars[v.upper] = NewKeyCombo(v.key).WithShift()
		l.Chars[v.uDiaeresis] = NewKeyCombo(v.key).WithShift().WithAccentKey(ac.trema)
		l.Chars[v.uAcute] = NewKeyCombo(v.key).WithShift().WithAccentKey(ac.acute)
		l.Chars[v.uHat] = NewKeyCombo(v.key).WithShift().WithAccentKey(ac.hat)
		l.Chars[v.uGrave] = NewKeyCombo(v.key).WithShift().WithAccentKey(ac.grave)
		l.Chars[v.uTilde] = NewKeyCombo(v.key).WithShift().WithAccentKey(ac.tilde)

		l.Chars[v.lower] = NewKeyCombo(v.key)
		l.Chars[v.lDiaeresis] = NewKeyCombo(v.key).WithAccentKey(ac.trema)
		l.Chars[v.lAcute] = NewKeyCombo(v.key).WithAccentKey(ac.acute)
		l.Chars[v.lHat] = NewKeyCombo(v.key).WithAccentKey(ac.hat)
		l.Chars[v.lGrave] = NewKeyCombo(v.key).WithAccentKey(ac.grave)
		l.Chars[v.lTilde] = NewKeyCombo(v.key).WithAccentKey(ac.tilde)
	}

	for _, c := range "BCDFGHJKLMNPQRSTVWXYZ" {
		l.Chars[c] = NewKeyCombo("Key" + string(c)).WithShift()
	}
	for _, c := range "bcdfghjklmnpqrstvwxyz" {
		upper := c - 'a' + 'A'
		l.Chars[c] = NewKeyCombo("Key" + string(upper))
	}
	l.Chars['€'] = NewKeyCombo("KeyE").WithAltRight()

	l.Chars['º'] = NewKeyCombo("Backquote")
	l.Chars['ª'] = NewKeyCombo("Backquote").WithShift()
	l.Chars['\\'] = NewKeyCombo("Backquote").WithAltRight()

	type row struct {
		plain, shifted, altRight rune
		key                      string
		hasShifted, hasAltRight  bool
	}
	rows := []row{
		{plain: '1', shifted: '!', altRight: '|', key: "Digit1", hasShifted: true, hasAltRight: true},
		{plain: '2', shifted: '"', altRight: '@', key: "Digit2", hasShifted: true, hasAltRight: true},
		{plain: '3', shifted: '·', altRight: '#', key: "Digit3", hasShifted: true, hasAltRight: true},
		{plain: '4', shifted: '$', key: "Digit4", hasShifted: true},
		{plain: '5', shifted: '%', key: "Digit5", hasShifted: true},
		{plain: '6', shifted: '&', altRight: '¬', key: "Digit6", hasShifted: true, hasAltRight: true},
		{plain: '7', shifted: '/', key: "Digit7", hasShifted: true},
		{plain: '8', shifted: '(', key: "Digit8", hasShifted: true},
		{plain: '9', shifted: ')', key: "Digit9", hasShifted: true},
		{plain: '0', shifted: '=', key: "Digit0", hasShifted: true},
	}
	for _, r := range rows {
		l.Chars[r.plain] = NewKeyCombo(r.key)
		if r.hasShifted {
			l.Chars[r.shifted] = NewKeyCombo(r.key).WithShift()
		}
		if r.hasAltRight {
			l.Chars[r.altRight] = NewKeyCombo(r.key).WithAltRight()
		}
	}

	l.Chars['\''] = NewKeyCombo("Minus")
	l.Chars['?'] = NewKeyCombo("Minus").WithShift()

	l.Chars['¡'] = NewKeyCombo("Equal").WithDeadKey()
	l.Chars['¿'] = NewKeyCombo("Equal").WithShift()

	l.Chars['['] = NewKeyCombo("BracketLeft").WithAltRight()
	l.Chars['+'] = NewKeyCombo("BracketRight")
	l.Chars['*'] = NewKeyCombo("BracketRight").WithShift()
	l.Chars[']'] = NewKeyCombo("BracketRight").WithAltRight()

	l.Chars['ñ'] = NewKeyCombo("Semicolon")
	l.Chars['Ñ'] = NewKeyCombo("Semicolon").WithShift()

	l.Chars['{'] = NewKeyCombo("Quote").WithAltRight()

	l.Chars['ç'] = NewKeyCombo("Backslash")
	l.Chars['Ç'] = NewKeyCombo("Backslash").WithShift()
	l.Chars['}'] = NewKeyCombo("Backslash").WithAltRight()

	l.Chars[','] = NewKeyCombo("Comma")
	l.Chars[';'] = NewKeyCombo("Comma").WithShift()
	l.Chars['.'] = NewKeyCombo("Period")
	l.Chars[':'] = NewKeyCombo("Period").WithShift()
	l.Chars['-'] = NewKeyCombo("Slash")
	l.Chars['_'] = NewKeyCombo("Slash").WithShift()
	l.Chars['<'] = NewKeyCombo("IntlBackslash")
	l.Chars['>'] = NewKeyCombo("IntlBackslash").WithShift()

	l.Chars[' '] = NewKeyCombo("Space")
	l.Chars['\n'] = NewKeyCombo("Enter")

	return l
}
