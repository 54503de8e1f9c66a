// Package challenge parses the serialized sign-in challenge the user signed.
// The core only needs the claimed address out of it; the remaining fields are
// surfaced for hosts that audit or re-display the challenge.
package challenge

import (
	"fmt"
	"strings"
)

// Challenge is the structured form of a serialized sign-in message.
type Challenge struct {
	Domain         string
	Address        string
	Statement      string
	URI            string
	Nonce          string
	IssuedAt       string
	ExpirationTime string
}

// Parse extracts the structured challenge from its serialized text form:
//
//	<domain> wants you to sign in with your account:
//	<address>
//
//	<optional statement>
//
//	URI: <uri>
//	Nonce: <nonce>
//	Issued At: <timestamp>
//	Expiration Time: <timestamp>
//
// The address line is mandatory; labeled fields are optional. Parse does not
// re-serialize or normalize the message: signature verification runs over
// the original bytes, never this structure.
func Parse(message string) (*Challenge, error) {
	lines := strings.Split(message, "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("challenge too short: expected header and address lines")
	}

	header := strings.TrimSpace(lines[0])
	const marker = " wants you to sign in with your account:"
	if !strings.HasSuffix(header, marker) {
		return nil, fmt.Errorf("malformed challenge header %q", header)
	}

	c := &Challenge{
		Domain:  strings.TrimSuffix(header, marker),
		Address: strings.TrimSpace(lines[1]),
	}
	if c.Address == "" {
		return nil, fmt.Errorf("challenge is missing the address line")
	}

	var statement []string
	for _, line := range lines[2:] {
		switch {
		case strings.HasPrefix(line, "URI: "):
			c.URI = strings.TrimPrefix(line, "URI: ")
		case strings.HasPrefix(line, "Nonce: "):
			c.Nonce = strings.TrimPrefix(line, "Nonce: ")
		case strings.HasPrefix(line, "Issued At: "):
			c.IssuedAt = strings.TrimPrefix(line, "Issued At: ")
		case strings.HasPrefix(line, "Expiration Time: "):
			c.ExpirationTime = strings.TrimPrefix(line, "Expiration Time: ")
		case strings.TrimSpace(line) != "" && c.URI == "" && c.Nonce == "":
			statement = append(statement, line)
		}
	}
	c.Statement = strings.Join(statement, "\n")
	return c, nil
}
