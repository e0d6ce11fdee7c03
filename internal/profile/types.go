package profile

import (
	"errors"
	"fmt"
)

// Required field keys of a profile table
const (
	FieldEmail  = "email"
	FieldName   = "name"
	FieldSSHKey = "ssh_key"
)

// RequiredFields lists the keys every profile must carry, in check order
var RequiredFields = []string{FieldEmail, FieldName, FieldSSHKey}

var (
	ErrParse         = errors.New("malformed profile document")
	ErrNotFound      = errors.New("profile not found")
	ErrDuplicateName = errors.New("profile name already exists")
	ErrMissingField  = errors.New("profile is missing a required field")
)

// MissingFieldError names the profile and the key it lacks
type MissingFieldError struct {
	Profile string
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("profile '%s' has no %s", e.Profile, e.Field)
}

// Is lets errors.Is match ErrMissingField
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// Profile is a named bundle of git identity fields
type Profile struct {
	Name   string
	Fields map[string]string
}

// New builds a profile from its three required values
func New(name, userName, email, sshKey string) Profile {
	return Profile{
		Name: name,
		Fields: map[string]string{
			FieldEmail:  email,
			FieldName:   userName,
			FieldSSHKey: sshKey,
		},
	}
}

// Email returns the commit email
func (p Profile) Email() string {
	return p.Fields[FieldEmail]
}

// UserName returns the commit author name
func (p Profile) UserName() string {
	return p.Fields[FieldName]
}

// SSHKey returns the private key path
func (p Profile) SSHKey() string {
	return p.Fields[FieldSSHKey]
}

// Validate checks that every required field is present and non-empty
func (p Profile) Validate() error {
	for _, key := range RequiredFields {
		if p.Fields[key] == "" {
			return &MissingFieldError{Profile: p.Name, Field: key}
		}
	}
	return nil
}
