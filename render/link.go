package render

import "strings"

// unknownRepo is the placeholder builders store when a source has no repo.
const unknownRepo = "unknown"

// GitHubLink rebuilds the upstream documentation URL for a page:
//
//	https://github.com/{sourceRepo}/tree/main/{docsPath}/{path without its package segment}
//
// It returns "" when sourceRepo is empty or "unknown". Paths without a
// slash are used whole. Inputs are not validated or escaped.
func GitHubLink(sourceRepo, docsPath, path string) string {
	if sourceRepo == "" || sourceRepo == unknownRepo {
		return ""
	}

	cleaned := path
	if _, rest, found := strings.Cut(path, "/"); found {
		cleaned = rest
	}

	return "https://github.com/" + sourceRepo + "/tree/main/" + docsPath + "/" + cleaned
}
