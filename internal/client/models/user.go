package models

import (
	"encoding/json"
	"fmt"
)

// UserRecord is one row of the admin user listing.
type UserRecord struct {
	ID    int64
	Name  string
	Email string
	Role  string
}

// UnmarshalJSON decodes the backend's [id, name, email, role] row.
func (u *UserRecord) UnmarshalJSON(data []byte) error {
	cols, err := splitRow(data, 4)
	if err != nil {
		return err
	}

	var r UserRecord
	if r.ID, err = decodeInt(cols[0]); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	if r.Name, err = decodeString(cols[1]); err != nil {
		return fmt.Errorf("user name: %w", err)
	}
	if r.Email, err = decodeString(cols[2]); err != nil {
		return fmt.Errorf("user email: %w", err)
	}
	if r.Role, err = decodeString(cols[3]); err != nil {
		return fmt.Errorf("user role: %w", err)
	}
	*u = r
	return nil
}

// MarshalJSON mirrors the wire row shape.
func (u UserRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{u.ID, u.Name, u.Email, u.Role})
}
