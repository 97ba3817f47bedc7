package model

// artifactNotFoundError indicates the artifact file does not exist.
type artifactNotFoundError struct{ path string }

func (e artifactNotFoundError) Error() string { return "model artifact not found: " + e.path }

// IsArtifactNotFound reports whether err indicates a missing artifact file.
func IsArtifactNotFound(err error) bool {
	_, ok := err.(artifactNotFoundError)
	return ok
}

// artifactCorruptError indicates the artifact exists but cannot be decoded
// or fails structural validation.
type artifactCorruptError struct{ msg string }

func (e artifactCorruptError) Error() string { return "model artifact corrupt: " + e.msg }

// IsArtifactCorrupt reports whether err indicates an unreadable artifact.
func IsArtifactCorrupt(err error) bool {
	_, ok := err.(artifactCorruptError)
	return ok
}

// schemaMismatchError indicates the artifact was trained against a feature
// schema this binary does not understand.
type schemaMismatchError struct{ msg string }

func (e schemaMismatchError) Error() string { return "artifact schema mismatch: " + e.msg }

// IsSchemaMismatch reports whether err indicates a train/serve schema divergence.
func IsSchemaMismatch(err error) bool {
	_, ok := err.(schemaMismatchError)
	return ok
}
