package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestURLValidator_Validate(t *testing.T) {
	v := NewURLValidator()

	tests := []struct {
		name    string
		rawURL  string
		wantErr error
	}{
		{name: "valid http", rawURL: "http://example.com/path?q=1"},
		{name: "valid https", rawURL: "https://example.com"},
		{name: "empty string", rawURL: "", wantErr: ErrMissingInput},
		{name: "blank string", rawURL: "   ", wantErr: ErrMissingInput},
		{name: "too long", rawURL: "https://example.com/" + strings.Repeat("a", 3000), wantErr: ErrTooLong},
		{name: "javascript scheme", rawURL: "javascript:alert(1)", wantErr: ErrDisallowedScheme},
		{name: "data scheme", rawURL: "data:text/html,hi", wantErr: ErrDisallowedScheme},
		{name: "file scheme", rawURL: "file:///etc/passwd", wantErr: ErrDisallowedScheme},
		{name: "vbscript scheme", rawURL: "vbscript:msgbox(1)", wantErr: ErrDisallowedScheme},
		{name: "ftp scheme", rawURL: "ftp://example.com/file", wantErr: ErrDisallowedScheme},
		{name: "no scheme", rawURL: "example.com/path", wantErr: ErrMalformed},
		{name: "spaces inside", rawURL: "https://exa mple.com", wantErr: ErrMalformed},
		{name: "no host", rawURL: "http://", wantErr: ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsedURL, err := v.Validate(tt.rawURL)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, parsedURL)
		})
	}
}

// Повторная проверка при редиректе использует тот же валидатор: запись,
// сохраненная при более мягких правилах, должна отбиваться.
func TestURLValidator_Validate_StoredRecord(t *testing.T) {
	v := NewURLValidator()

	_, err := v.Validate("javascript:alert(document.cookie)")
	require.ErrorIs(t, err, ErrDisallowedScheme)
}
