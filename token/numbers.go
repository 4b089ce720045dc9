package token

// number scans a JSON number at the start of d. It returns the length of the
// literal and whether it has a fraction or exponent part.
func number(d []byte) (int, bool, error) {
	i := 0
	if len(d) > 0 && d[0] == '-' {
		i++
	}
	digits := asciiDigits(d[i:])
	if digits == 0 {
		return i, false, ErrNumber
	}
	if digits > 1 && d[i] == '0' {
		return i + digits, false, ErrNumberLeadingZero
	}
	i += digits
	f, err := fract(d[i:])
	if err != nil {
		return i + f, false, err
	}
	e, err := exp(d[i+f:])
	if err != nil {
		return i + f + e, false, err
	}
	return i + f + e, f+e != 0, nil
}

func asciiDigits(d []byte) int {
	i := 0
	for i < len(d) {
		if !asciiDigit(d[i]) {
			return i
		}
		i++
	}
	return i
}

func asciiDigit(c byte) bool {
	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	default:
		return false
	}
}

func exp(d []byte) (int, error) {
	if len(d) == 0 {
		return 0, nil
	}
	switch d[0] {
	case 'e', 'E':
	default:
		return 0, nil
	}
	i := 1
	if i < len(d) {
		switch d[i] {
		case '+', '-':
			i++
		}
	}
	n := asciiDigits(d[i:])
	if n == 0 {
		return i, ErrNumber
	}
	return n + i, nil
}

func fract(d []byte) (int, error) {
	if len(d) == 0 || d[0] != '.' {
		return 0, nil
	}
	// . must be followed by 1 or more digits rfc 8259
	n := asciiDigits(d[1:])
	if n == 0 {
		return 1, ErrNumber
	}
	return n + 1, nil
}
