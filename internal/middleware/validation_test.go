package middleware

import "testing"

var testPlatforms = []string{"youtube", "tiktok", "instagram"}

func TestValidatePlatform(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "youtube", "youtube", false},
		{"uppercase normalized", "YouTube", "youtube", false},
		{"trims whitespace", "  tiktok  ", "tiktok", false},
		{"empty", "", "", true},
		{"unsupported", "vimeo", "", true},
		{"invalid chars", "you tube", "", true},
		{"sql injection", "youtube'; DROP--", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidatePlatform(tt.input, testPlatforms)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateOptionalPlatform(t *testing.T) {
	if got, errMsg := ValidateOptionalPlatform("", testPlatforms); got != "" || errMsg != "" {
		t.Errorf("empty platform should pass through, got %q / %q", got, errMsg)
	}
	if _, errMsg := ValidateOptionalPlatform("vimeo", testPlatforms); errMsg == "" {
		t.Error("unsupported platform should still be rejected")
	}
}

func TestValidateLimit(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		max     int
		want    int
		wantErr bool
	}{
		{"valid", 20, 100, 20, false},
		{"minimum", 1, 100, 1, false},
		{"at max", 100, 100, 100, false},
		{"zero", 0, 100, 0, true},
		{"negative", -5, 100, 0, true},
		{"over max", 101, 100, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateLimit(tt.input, tt.max)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateDays(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		max     int
		wantErr bool
	}{
		{"valid", 3, 30, false},
		{"minimum", 1, 30, false},
		{"at max", 30, 30, false},
		{"zero", 0, 30, true},
		{"negative", -1, 30, true},
		{"over max", 31, 30, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errMsg := ValidateDays(tt.input, tt.max)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
		})
	}
}

func TestValidateVelocityDays(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"default", 1.0, false},
		{"fractional", 0.5, false},
		{"at max", 7.0, false},
		{"zero", 0, true},
		{"negative", -1.0, true},
		{"over max", 7.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errMsg := ValidateVelocityDays(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
		})
	}
}

func TestValidateChannelID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "UCabc123_-", "UCabc123_-", false},
		{"trims whitespace", "  UCabc  ", "UCabc", false},
		{"empty", "", "", true},
		{"too long", string(make([]byte, 65)), "", true},
		{"invalid chars", "UC abc", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateChannelID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid ascii", "gaming", false},
		{"valid unicode", "게임", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"slash", "a/b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errMsg := ValidateCategory(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
		})
	}
}
