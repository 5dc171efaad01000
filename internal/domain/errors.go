package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrInvalidEmail      = fmt.Errorf("%w: invalid email address", ErrValidation)
	ErrDuplicateIdentity = fmt.Errorf("%w: account already exists", ErrValidation)
	ErrEmptyName         = fmt.Errorf("%w: account name is required", ErrValidation)
	ErrEmptyHost         = fmt.Errorf("%w: host is required", ErrValidation)

	ErrUnknownIdentity         = errors.New("account not found")
	ErrCollaboratorFailure     = errors.New("external tool failed")
	ErrKeyExists               = errors.New("key file already exists")
	ErrAgentUnavailable        = errors.New("ssh-agent is not available")
	ErrDanglingActiveReference = errors.New("active account not found in configuration")
	ErrCorruptMarkerBlock      = errors.New("active mapping start marker has no end marker")
	ErrUnsupportedHost         = errors.New("host does not support key publishing")
	ErrMissingToken            = errors.New("no API token configured")
)
