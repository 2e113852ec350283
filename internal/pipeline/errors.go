package pipeline

// MissingCredentialError indicates the request carried no API key. This is a
// client error and is detected before any file processing occurs.
type MissingCredentialError struct{}

func (e *MissingCredentialError) Error() string {
	return "missing API key: supply a credential with the request"
}
