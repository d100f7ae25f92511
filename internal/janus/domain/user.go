package domain

import "time"

// User is an enrolled identity. Credential material is opaque: it is produced
// by the enrollment ceremony on the device and never interpreted here.
type User struct {
	ID                  string
	DisplayName         string
	Email               string  // unique, compared case-sensitively as stored
	CredentialReference *string // nullable until a credential is attached
	PublicKey           *string // nullable
	EnrolledAt          time.Time
}

// HasCredential reports whether a credential reference has been attached.
func (u User) HasCredential() bool {
	return u.CredentialReference != nil && *u.CredentialReference != ""
}
