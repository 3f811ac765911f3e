package authflow

import "testing"

func TestClassifyEmail(t *testing.T) {
	cases := []string{
		"user@example.com",
		"first.last+tag@sub.example.co",
		"  padded@example.com  ",
		"UPPER@EXAMPLE.COM",
	}
	for _, in := range cases {
		if got := Classify(in, "US"); got != IdentifierEmail {
			t.Fatalf("Classify(%q) = %v, want email", in, got)
		}
	}
}

func TestClassifyEmailRequiresDottedDomain(t *testing.T) {
	// Bare-host domains are treated as non-emails; with an '@' present the
	// input cannot be a username either, so it comes back invalid.
	if got := Classify("user@localhost", "US"); got != IdentifierInvalid {
		t.Fatalf("Classify(user@localhost) = %v, want invalid", got)
	}
}

func TestClassifyPhone(t *testing.T) {
	cases := []string{
		"+16502530000",
		"6502530000",
		"+447911123456",
	}
	for _, in := range cases {
		if got := Classify(in, "US"); got != IdentifierPhone {
			t.Fatalf("Classify(%q) = %v, want phone", in, got)
		}
	}
}

func TestClassifyPhoneRespectsRegion(t *testing.T) {
	// A bare UK national mobile number only parses under a GB region.
	if got := Classify("07911123456", "GB"); got != IdentifierPhone {
		t.Fatalf("Classify under GB = %v, want phone", got)
	}
}

func TestClassifyValidLandlineIsInvalidNotUsername(t *testing.T) {
	// A valid fixed-line number short-circuits classification: it is not a
	// mobile identifier, and it must not fall through to the username rule.
	const londonLandline = "+442071838750"
	if got := Classify(londonLandline, "US"); got != IdentifierInvalid {
		t.Fatalf("Classify(%q) = %v, want invalid", londonLandline, got)
	}
}

func TestClassifyUsername(t *testing.T) {
	cases := []string{
		"jack",
		"jack_dorsey",
		"User_123",
		"abc",
	}
	for _, in := range cases {
		if got := Classify(in, "US"); got != IdentifierUsername {
			t.Fatalf("Classify(%q) = %v, want username", in, got)
		}
	}
}

func TestClassifyInvalid(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"ab",
		"this_username_is_way_too_long_to_be_accepted",
		"has spaces",
		"emoji😀name",
		"semi;colon",
	}
	for _, in := range cases {
		if got := Classify(in, "US"); got != IdentifierInvalid {
			t.Fatalf("Classify(%q) = %v, want invalid", in, got)
		}
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	inputs := []string{"user@example.com", "+16502530000", "jack_dorsey", "??"}
	for _, in := range inputs {
		first := Classify(in, "US")
		second := Classify(in, "US")
		if first != second {
			t.Fatalf("Classify(%q) unstable: %v then %v", in, first, second)
		}
	}
}

func TestWireType(t *testing.T) {
	if got := IdentifierPhone.WireType(); got != "phone_number" {
		t.Fatalf("phone wire type = %q, want phone_number", got)
	}
	if got := IdentifierEmail.WireType(); got != "email" {
		t.Fatalf("email wire type = %q", got)
	}
	if got := IdentifierUsername.WireType(); got != "username" {
		t.Fatalf("username wire type = %q", got)
	}
	if got := IdentifierInvalid.WireType(); got != "" {
		t.Fatalf("invalid wire type = %q, want empty", got)
	}
}
