package framework

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alessio/shellescape"
)

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// curlCommand returns a shell command that repeats a request, for pasting into a terminal
// when investigating a failure.
func curlCommand(method, url string, headers http.Header, body []byte, timeout time.Duration) string {
	var b commandBuilder
	b.add("curl", "-i", "-X", method)
	if timeout > 0 {
		b.add("--max-time", strconv.FormatFloat(timeout.Seconds(), 'f', -1, 64))
	}
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range headers[name] {
			b.add("-H", name+": "+v)
		}
	}
	if len(body) > 0 {
		b.add("--data-raw", string(body))
	}
	b.add(url)
	return b.String()
}
