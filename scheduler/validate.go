package scheduler

import "strings"

// isRemote reports whether the source must be fetched to a local
// ephemeral file before processing.
func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") ||
		strings.HasPrefix(src, "https://") ||
		strings.HasPrefix(src, "s3://")
}

// validateFormat checks that the source names a WAV container. For
// remote sources any query component is stripped before the suffix
// check, so presigned URLs validate on their path.
func validateFormat(src string) error {
	name := src
	if isRemote(src) {
		if i := strings.IndexByte(name, '?'); i >= 0 {
			name = name[:i]
		}
	}
	if !strings.HasSuffix(strings.ToLower(name), ".wav") {
		return &FormatError{Source: src}
	}
	return nil
}
