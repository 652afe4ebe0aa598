package inspector

import (
	"fmt"
	"strings"
)

// DefaultDocsBaseURL is the hosted best-practices guide.
const DefaultDocsBaseURL = "https://nwbinspector.readthedocs.io/en/dev/checks"

// DocsBaseURL is the page check documentation links point into. The CLI sets
// it from the docs_base_url setting.
var DocsBaseURL = DefaultDocsBaseURL

// BuildDocURL returns the documentation link of a check.
func BuildDocURL(checkName string) string {
	return fmt.Sprintf("%s#%s", DocsBaseURL, strings.ReplaceAll(checkName, "_", "-"))
}

// SetDocsBaseURL overrides the documentation base URL. An empty url restores
// the default.
func SetDocsBaseURL(url string) {
	if url == "" {
		ResetDocsBaseURL()
		return
	}
	DocsBaseURL = strings.TrimSuffix(url, "/")
}

// ResetDocsBaseURL restores the default documentation URL.
func ResetDocsBaseURL() {
	DocsBaseURL = DefaultDocsBaseURL
}
