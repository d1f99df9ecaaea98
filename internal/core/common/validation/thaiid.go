package validation

// ValidThaiID checks the 13-digit national ID number and its mod-11 check digit.
func ValidThaiID(id string) bool {
	if len(id) != 13 {
		return false
	}
	sum := 0
	for i := 0; i < 12; i++ {
		c := id[i]
		if c < '0' || c > '9' {
			return false
		}
		sum += int(c-'0') * (13 - i)
	}
	last := id[12]
	if last < '0' || last > '9' {
		return false
	}
	return int(last-'0') == (11-sum%11)%10
}
