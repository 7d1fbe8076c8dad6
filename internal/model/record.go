package model

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrEmptyField is returned when a record is missing one of its three fields.
var ErrEmptyField = errors.New("please fill all fields")

// Record is one stored website/username/password triple.
// The JSON shape is the persisted layout; keep the tags stable.
type Record struct {
	Website  string `json:"website"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewRecord builds a record from raw form input. Website and username are
// trimmed, the password is kept as typed.
func NewRecord(website, username, password string) (Record, error) {
	r := Record{
		Website:  strings.TrimSpace(website),
		Username: strings.TrimSpace(username),
		Password: password,
	}
	if r.Website == "" || r.Username == "" || r.Password == "" {
		return Record{}, ErrEmptyField
	}
	return r, nil
}

// Mask replaces every character of the password with '*'.
func Mask(password string) string {
	return strings.Repeat("*", utf8.RuneCountInString(password))
}

// Masked is the display form of the record's password.
func (r Record) Masked() string { return Mask(r.Password) }
