package common

import (
	"errors"
	"regexp"
)

var ErrInvalidEndpoint = errors.New("invalid endpoint")

var apiMessagePattern = regexp.MustCompile(`Message:([^\]}]+)`)

// ExtractErrorMessage pulls the human-readable part out of a go-github
// error string such as "POST .../user/keys: 422 Validation Failed
// [{Resource:PublicKey Field:key Code:custom Message:key is already in use}]".
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if m := apiMessagePattern.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	return msg
}
