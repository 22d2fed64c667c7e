package provisioner

import (
	"fmt"
	"os"
	"strings"
)

// Credential is the plaintext login of one successfully provisioned
// student, kept in memory until the end of the run and then exported
// for the operator to email out. It is never read back.
type Credential struct {
	Name     string
	Username string
	Password string
}

const credentialBlockSeparator = "--------------------------------"

// FormatCredentials renders the credentials as a sequence of delimited
// blocks, one per student.
func FormatCredentials(credentials []Credential) string {
	var b strings.Builder
	for _, c := range credentials {
		b.WriteString(credentialBlockSeparator + "\n")
		b.WriteString(c.Name + "\n")
		fmt.Fprintf(&b, "USERNAME: %s\n", c.Username)
		fmt.Fprintf(&b, "PASSWORD: %s\n", c.Password)
		b.WriteString(credentialBlockSeparator + "\n\n")
	}
	return b.String()
}

// WriteCredentialsFile overwrites path with the rendered credential
// blocks. Written once after all students have been attempted, so a
// crash mid-run loses the credentials collected so far.
func WriteCredentialsFile(path string, credentials []Credential) error {
	if err := os.WriteFile(path, []byte(FormatCredentials(credentials)), 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file %s: %w", path, err)
	}
	return nil
}
