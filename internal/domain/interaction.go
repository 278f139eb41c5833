package domain

import (
	"encoding/json"
	"strings"
)

// Interaction is one canvassing event from the upstream API. Sub-resources
// are referenced by id and resolved separately.
type Interaction struct {
	ID        int64             `json:"id"`
	ContactID int64             `json:"contact_id"`
	HouseID   int64             `json:"house_id"`
	CreatedBy int64             `json:"created_by"`
	Status    InteractionStatus `json:"status"`
	Rating    int               `json:"rating"`
	CreatedAt string            `json:"created_at"`
}

// InteractionStatus tolerates the upstream API returning either a plain
// string or an object with a "name" field.
type InteractionStatus string

// UnmarshalJSON accepts `"Visited"` as well as `{"name": "Visited"}`.
func (s *InteractionStatus) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*s = InteractionStatus(plain)
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*s = InteractionStatus(obj.Name)
	return nil
}

// CustomField is a name/value pair attached to an upstream contact.
type CustomField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ContactDetails carries the primary contact methods of an upstream contact.
type ContactDetails struct {
	Mobile string `json:"mobile"`
	Home   string `json:"home"`
	Email  string `json:"email"`
}

// CanvassContact is the upstream contact resource linked to an interaction.
type CanvassContact struct {
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	ContactDetails ContactDetails `json:"contact_details"`
	CustomFields   []CustomField  `json:"customFields"`
}

// CustomFieldValue returns the value of the first custom field whose name
// matches exactly.
func (c CanvassContact) CustomFieldValue(name string) string {
	for _, field := range c.CustomFields {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}

// CustomFieldValues returns the values of all custom fields whose names
// start with the given prefix, in declaration order.
func (c CanvassContact) CustomFieldValues(prefix string) []string {
	var values []string
	for _, field := range c.CustomFields {
		if strings.HasPrefix(field.Name, prefix) {
			values = append(values, field.Value)
		}
	}
	return values
}

// House is the upstream location resource linked to an interaction.
type House struct {
	Unit        string `json:"unit"`
	HouseName   string `json:"house_name"`
	HouseNumber string `json:"house_number"`
	StreetName  string `json:"street_name"`
	City        string `json:"city"`
	State       string `json:"state"`
}

// User is the upstream staff member who logged an interaction.
type User struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName joins the user's name parts for the ledger organizer column.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
