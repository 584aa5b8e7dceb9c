package wait

import (
	"regexp"
	"strings"
)

// URLPattern matches a navigation URL.
type URLPattern interface {
	Match(url string) bool
	String() string
}

type urlContains string

// URLContains matches any URL containing s.
func URLContains(s string) URLPattern {
	return urlContains(s)
}

func (p urlContains) Match(url string) bool { return strings.Contains(url, string(p)) }
func (p urlContains) String() string        { return string(p) }

type urlRegexp struct {
	re  *regexp.Regexp
	src string
}

func URLRegexp(re *regexp.Regexp) URLPattern {
	return urlRegexp{re: re, src: re.String()}
}

func (p urlRegexp) Match(url string) bool { return p.re.MatchString(url) }
func (p urlRegexp) String() string        { return p.src }

// URLGlob matches the whole URL against a glob where "**" matches any
// run of characters and "*" any run without a slash.
func URLGlob(glob string) URLPattern {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(glob); i++ {
		switch c := glob[i]; c {
		case '*':
			if i+1 < len(glob) && glob[i+1] == '*' {
				b.WriteString(".*")
				i++
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	return urlRegexp{re: regexp.MustCompile(b.String()), src: glob}
}
