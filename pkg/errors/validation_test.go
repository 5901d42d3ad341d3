package errors

import "testing"

func TestValidateSnapshotID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"3f1c9a3e-8c1b-4e0a-9d2f-5b7c6a1e2d34", false},
		{"", true},
		{"not-a-uuid", true},
		{"../../etc/passwd", true},
		{"{3f1c9a3e-8c1b-4e0a-9d2f-5b7c6a1e2d34}", true},
		{"3F1C9A3E-8C1B-4E0A-9D2F-5B7C6A1E2D34", false},
	}
	for _, tt := range tests {
		err := ValidateSnapshotID(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSnapshotID(%q) = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidID) {
			t.Errorf("ValidateSnapshotID(%q) code = %v", tt.id, GetCode(err))
		}
	}
}

func TestParseEntityID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"-1", 0, true},
		{"x", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseEntityID("vertex", tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEntityID(%q) err = %v, wantErr %v", tt.raw, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseEntityID(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestValidateChoice(t *testing.T) {
	if err := ValidateChoice("plane", "xy", "xy", "xz", "yz"); err != nil {
		t.Errorf("valid choice rejected: %v", err)
	}
	err := ValidateChoice("plane", "ab", "xy", "xz", "yz")
	if !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("invalid choice err = %v", err)
	}
}
