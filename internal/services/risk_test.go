package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskClassifier_Classify(t *testing.T) {
	r := NewRiskClassifier(RiskClassifierConfig{})

	tests := []struct {
		name        string
		rawURL      string
		wantVerdict Verdict
	}{
		{name: "clean url", rawURL: "https://example.com/page", wantVerdict: VerdictClean},
		{name: "keyword in path only", rawURL: "http://example.com/secure-login", wantVerdict: VerdictClean},
		{name: "low trust tld alone", rawURL: "http://example.tk/page", wantVerdict: VerdictSuspicious},
		{name: "ip hostname", rawURL: "http://192.168.1.1/page", wantVerdict: VerdictSuspicious},
		{name: "too many labels", rawURL: "http://a.b.c.d.example.com", wantVerdict: VerdictSuspicious},
		{name: "keyword plus free tld", rawURL: "http://secure-login.tk/verify", wantVerdict: VerdictBlocked},
		{name: "keyword plus pw tld", rawURL: "http://paypal-verify.pw", wantVerdict: VerdictBlocked},
		{name: "keyword on normal tld", rawURL: "https://login.example.com", wantVerdict: VerdictClean},
		{name: "brand keyword without tld signal", rawURL: "https://apple.com", wantVerdict: VerdictClean},
		{name: "unparseable", rawURL: "://nope", wantVerdict: VerdictSuspicious},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := r.Classify(tt.rawURL)
			assert.Equal(t, tt.wantVerdict, report.Verdict, "reasons: %v", report.Reasons)
		})
	}
}

func TestRiskClassifier_Classify_Reasons(t *testing.T) {
	r := NewRiskClassifier(RiskClassifierConfig{})

	report := r.Classify("http://one.two.three.four.example.xyz")
	require.Equal(t, VerdictSuspicious, report.Verdict)
	// Одиночные сигналы копятся в причинах, но сами по себе не блокируют.
	assert.NotEmpty(t, report.Reasons)
}

func TestRiskClassifier_CustomConfig(t *testing.T) {
	r := NewRiskClassifier(RiskClassifierConfig{
		LowTrustTLDs:     []string{".evil"},
		FreeTLDs:         []string{".evil"},
		PhishingKeywords: []string{"bank"},
	})

	assert.Equal(t, VerdictBlocked, r.Classify("http://my-bank.evil").Verdict)
	// Списки по умолчанию заменены целиком, .tk больше не сигнал.
	assert.Equal(t, VerdictClean, r.Classify("http://secure-login.tk").Verdict)
}
