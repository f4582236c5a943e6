package logger

import (
	"regexp"
)

const (
	passwordPattern    = `(?i)(password|pwd|passwd)([\'\"\s:=]+)([^\s\'\",&]{1,})`
	basicAuthPattern   = `(?i)(authorization[\'\"\s:=]+(?:basic|bearer)\s+)([a-z0-9=/_\-\+\.]+)`
	dsnPasswordPattern = `([a-zA-Z0-9_.\-]+):([^@/:\s]{1,})@`
	tokenPattern       = `(?i)(token|secret)([\'\"\s:=]+)([a-z0-9=/_\-\+\.]{8,})`
)

var (
	passwordRegexp    = regexp.MustCompile(passwordPattern)
	basicAuthRegexp   = regexp.MustCompile(basicAuthPattern)
	dsnPasswordRegexp = regexp.MustCompile(dsnPasswordPattern)
	tokenRegexp       = regexp.MustCompile(tokenPattern)
)

type secretmasker string

func (s secretmasker) maskPassword() secretmasker {
	return secretmasker(passwordRegexp.ReplaceAllString(string(s), "$1${2}****"))
}

func (s secretmasker) maskAuthorization() secretmasker {
	return secretmasker(basicAuthRegexp.ReplaceAllString(string(s), "${1}****"))
}

func (s secretmasker) maskDsnPassword() secretmasker {
	return secretmasker(dsnPasswordRegexp.ReplaceAllString(string(s), "$1:****@"))
}

func (s secretmasker) maskToken() secretmasker {
	return secretmasker(tokenRegexp.ReplaceAllString(string(s), "$1${2}****"))
}

// MaskSecrets masks passwords, authorization headers, DSN passwords and tokens in text.
func MaskSecrets(text string) string {
	if text == "" {
		return text
	}
	return string(secretmasker(text).
		maskAuthorization().
		maskDsnPassword().
		maskPassword().
		maskToken())
}
