package gopinotdb

import (
	"fmt"
	"runtime"

	"github.com/pinot-dbapi/gopinotdb/internal/platform"
)

// PinotGoDriverVersion is the version of the Go Pinot driver
const PinotGoDriverVersion = "0.3.0"

const clientType = "GoPinotDB"

// userAgent shows up in User-Agent HTTP header
var userAgent = newUserAgent(platform.Distribution())

func newUserAgent(distribution string) string {
	agent := fmt.Sprintf("%v/%v/%v/%v-%v", clientType, PinotGoDriverVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if distribution != "" {
		agent += "/" + distribution
	}
	return agent
}
