package session

import "fmt"

// Profile holds the user's display name and body-type category. Both fields
// must be set before a generation request may be sent.
type Profile struct {
	UserName string
	BodyType string
}

// Complete reports whether both profile fields are set.
func (p Profile) Complete() bool {
	return p.UserName != "" && p.BodyType != ""
}

// BodyTypes lists the accepted body-type categories.
var BodyTypes = []string{"slim", "athletic", "average", "muscular", "stocky", "plus-size"}

// ValidBodyType reports whether s is one of the accepted categories.
func ValidBodyType(s string) bool {
	for _, bt := range BodyTypes {
		if s == bt {
			return true
		}
	}
	return false
}

// Persisted key names. These are the external key-value contract: readers
// of the store see exactly these keys.
const (
	keyUserName = "userName"
	keyBodyType = "bodyType"
)

// KV is the key-value store the profile persists through.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// LoadProfile reads the persisted profile. Missing keys yield empty fields,
// which callers treat as an incomplete profile requiring setup.
func LoadProfile(kv KV) (Profile, error) {
	name, err := kv.Get(keyUserName)
	if err != nil {
		return Profile{}, fmt.Errorf("load userName: %w", err)
	}
	bodyType, err := kv.Get(keyBodyType)
	if err != nil {
		return Profile{}, fmt.Errorf("load bodyType: %w", err)
	}
	return Profile{UserName: name, BodyType: bodyType}, nil
}

// SaveProfile writes both profile fields to the store.
func SaveProfile(kv KV, p Profile) error {
	if err := kv.Set(keyUserName, p.UserName); err != nil {
		return fmt.Errorf("save userName: %w", err)
	}
	if err := kv.Set(keyBodyType, p.BodyType); err != nil {
		return fmt.Errorf("save bodyType: %w", err)
	}
	return nil
}
