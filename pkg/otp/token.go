package otp

import (
	"fmt"
	"regexp"
	"sync"
)

var tokenPatterns sync.Map // map[int]*regexp.Regexp

// IsToken reports whether token consists of exactly digits decimal digits.
func IsToken(token string, digits int) bool {
	if digits <= 0 || len(token) != digits {
		return false
	}
	re, ok := tokenPatterns.Load(digits)
	if !ok {
		re, _ = tokenPatterns.LoadOrStore(digits, regexp.MustCompile(fmt.Sprintf("^[0-9]{%d}$", digits)))
	}
	return re.(*regexp.Regexp).MatchString(token)
}
