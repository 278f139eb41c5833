package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFirstName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"RICHARD M U & RACHEL Y", "Richard"},
		{"John Doe", "John"},
		{"mary-jane", "Mary-Jane"},
		{"MARY-JANE", "Mary-Jane"},
		{"ERIC & DEBORAH", "Eric"},
		{"ANNA / BEN", "Anna"},
		{"  frank  ", "Frank"},
		{"", FallbackFirstName},
		{"   ", FallbackFirstName},
		{"123 456", FallbackFirstName},
		{"&", FallbackFirstName},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, FirstName(tc.in), "input %q", tc.in)
	}
}

func TestOrganizerFirstName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Ferdy", OrganizerFirstName("Ferdy Salmons"))
	require.Equal(t, "Tom", OrganizerFirstName("tom smith"))
	require.Equal(t, FallbackOrganizer, OrganizerFirstName(""))
	require.Equal(t, FallbackOrganizer, OrganizerFirstName("   "))
}

func TestPhoneE164(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2245004255", "+12245004255", true},
		{"(224) 500-4255", "+12245004255", true},
		{"+1-224-500-4255", "+12245004255", true},
		{"12245004255", "+12245004255", true},
		{"442071234567", "+442071234567", true},
		{"123", "", false},
		{"", "", false},
		{"abc", "", false},
	}

	for _, tc := range cases {
		got, ok := PhoneE164(tc.in)
		require.Equal(t, tc.ok, ok, "input %q", tc.in)
		require.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestAddressKey(t *testing.T) {
	t.Parallel()

	require.Equal(t, "123 Main St", AddressKey("123", "Main St"))
	require.Equal(t, "123 Main St", AddressKey(" 123 ", " Main St "))
	require.Equal(t, "", AddressKey("", "Main St"))
	require.Equal(t, "", AddressKey("123", ""))
}
