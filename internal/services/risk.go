package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Verdict вердикт классификатора риска.
type Verdict int

// VerdictClean сигналов нет.
// VerdictSuspicious есть одиночный сигнал, ссылка пропускается с пометкой в логе.
// VerdictBlocked сильный комбинированный сигнал, создание отклоняется.
const (
	VerdictClean Verdict = iota
	VerdictSuspicious
	VerdictBlocked
)

func (v Verdict) String() string {
	switch v {
	case VerdictSuspicious:
		return "suspicious"
	case VerdictBlocked:
		return "blocked"
	default:
		return "clean"
	}
}

// RiskReport результат классификации: вердикт плюс причины для лога.
type RiskReport struct {
	Verdict Verdict
	Reasons []string
}

// Списки по умолчанию, собраны по реальным фишинговым кампаниям на
// одноразовых доменах.
var (
	defaultLowTrustTLDs = []string{
		".tk", ".ml", ".ga", ".cf", ".gq", ".xyz", ".top", ".work", ".click", ".link",
	}
	// Бесплатные зоны для комбинации с ключевыми словами. Чуть шире списка
	// низкодоверенных зон.
	defaultFreeTLDs = []string{
		".tk", ".ml", ".ga", ".cf", ".gq", ".xyz", ".top", ".work", ".click", ".link",
		".pw", ".cc", ".ws",
	}
	defaultPhishingKeywords = []string{
		"login", "signin", "verify", "secure", "account", "update", "confirm",
		"banking", "password", "credential", "auth",
		"paypal", "apple", "microsoft", "google", "amazon", "facebook",
		"instagram", "twitter", "netflix", "spotify",
		"coinbase", "binance", "metamask", "wallet", "crypto",
	}
)

// dottedQuadRegex hostname в виде литерального ip адреса.
var dottedQuadRegex = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)

// maxHostnameLabels допустимое количество сегментов в hostname.
const maxHostnameLabels = 4

// RiskClassifierConfig настройки эвристик. Пустые срезы заменяются
// значениями по умолчанию.
type RiskClassifierConfig struct {
	LowTrustTLDs     []string
	FreeTLDs         []string
	PhishingKeywords []string
}

// RiskClassifier эвристическая оценка ссылки на фишинг и прочий мусор.
// Все эвристики локальные и дешевые, сетевых вызовов здесь нет.
//
// Одиночный сигнал дает максимум VerdictSuspicious, VerdictBlocked возможен
// только по комбинации ключевое слово + бесплатная зона. Ключевые слова
// ищутся в hostname, путь и query не учитываются.
type RiskClassifier struct {
	conf RiskClassifierConfig
}

func NewRiskClassifier(conf RiskClassifierConfig) *RiskClassifier {
	if len(conf.LowTrustTLDs) == 0 {
		conf.LowTrustTLDs = defaultLowTrustTLDs
	}
	if len(conf.FreeTLDs) == 0 {
		conf.FreeTLDs = defaultFreeTLDs
	}
	if len(conf.PhishingKeywords) == 0 {
		conf.PhishingKeywords = defaultPhishingKeywords
	}
	return &RiskClassifier{conf: conf}
}

// Classify оценивает ссылку. Никогда не возвращает ошибку: неразборчивый
// вход это просто подозрительный вход.
func (r *RiskClassifier) Classify(rawURL string) RiskReport {
	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Hostname() == "" {
		return RiskReport{Verdict: VerdictSuspicious, Reasons: []string{"unparseable url"}}
	}
	hostname := strings.ToLower(parsedURL.Hostname())

	var reasons []string
	for _, tld := range r.conf.LowTrustTLDs {
		if strings.HasSuffix(hostname, tld) {
			reasons = append(reasons, fmt.Sprintf("low trust tld %s", tld))
			break
		}
	}
	if dottedQuadRegex.MatchString(hostname) {
		reasons = append(reasons, "ip address hostname")
	}
	if len(strings.Split(hostname, ".")) > maxHostnameLabels {
		reasons = append(reasons, "too many hostname labels")
	}

	if kw := r.phishingKeyword(hostname); kw != "" {
		for _, tld := range r.conf.FreeTLDs {
			if strings.HasSuffix(hostname, tld) {
				reasons = append(reasons, fmt.Sprintf("phishing keyword %q on free tld %s", kw, tld))
				return RiskReport{Verdict: VerdictBlocked, Reasons: reasons}
			}
		}
	}

	if len(reasons) > 0 {
		return RiskReport{Verdict: VerdictSuspicious, Reasons: reasons}
	}
	return RiskReport{Verdict: VerdictClean}
}

func (r *RiskClassifier) phishingKeyword(hostname string) string {
	for _, kw := range r.conf.PhishingKeywords {
		if strings.Contains(hostname, kw) {
			return kw
		}
	}
	return ""
}
