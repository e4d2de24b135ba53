package logger

import "testing"

func TestRedactEmail(t *testing.T) {
	cases := map[string]string{
		"jane.doe@example.com": "ja***@example.com",
		"ab@example.com":       "***@example.com",
		"not-an-email":         "***@***",
	}
	for in, want := range cases {
		if got := RedactEmail(in); got != want {
			t.Errorf("RedactEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRedactPIIValue(t *testing.T) {
	if got := redactPIIValue("email", "jane.doe@example.com"); got != "ja***@example.com" {
		t.Errorf("email field not redacted: %q", got)
	}
	got := redactPIIValue("detail", "sent to jane.doe@example.com today")
	if got != "sent to ja***@example.com today" {
		t.Errorf("embedded email not redacted: %q", got)
	}
}
