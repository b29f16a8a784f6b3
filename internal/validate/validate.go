package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// campusDomain is the only address space allowed to register.
const campusDomain = "@student.usm.my"

// Sanitize trims and strips angle brackets from free-text input.
func Sanitize(s string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(strings.TrimSpace(s))
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reEmail.MatchString(s)
}

func CampusEmail(s string) bool {
	return strings.HasSuffix(strings.ToLower(s), campusDomain)
}

func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) >= 2
}

func Password(s string) bool {
	return len(s) >= 6
}

// Price coerces the raw form value; handlers apply this even though the
// client validates, as a second line of defense.
func Price(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return n, err == nil && n > 0
}

func Title(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) >= 3
}

func Description(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) >= 10
}

func Reason(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}
