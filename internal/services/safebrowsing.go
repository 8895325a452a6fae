package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// SafeBrowsingEndpoint адрес Google Safe Browsing v4 threatMatches:find.
const SafeBrowsingEndpoint = "https://safebrowsing.googleapis.com/v4/threatMatches:find"

// DefaultReputationTimeout потолок ожидания внешней проверки. Вызов стоит на
// пути создания ссылки, долго ждать нельзя.
const DefaultReputationTimeout = 3 * time.Second

// ReputationChecker внешняя проверка репутации ссылки.
type ReputationChecker interface {
	// Check возвращает категорию найденной угрозы или пустую строку, если
	// ссылка чистая.
	Check(ctx context.Context, rawURL string) (string, error)
}

// SafeBrowsingOptions настройки клиента.
type SafeBrowsingOptions struct {
	Endpoint string
	Timeout  time.Duration
}

// SafeBrowsingClient клиент Google Safe Browsing v4.
type SafeBrowsingClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewSafeBrowsingClient создает клиента с ключом apiKey.
//
// Параметры:
//   - apiKey: ключ API
//   - opts: функции для настройки клиента
func NewSafeBrowsingClient(apiKey string, opts ...func(*SafeBrowsingOptions)) *SafeBrowsingClient {
	options := SafeBrowsingOptions{
		Endpoint: SafeBrowsingEndpoint,
		Timeout:  DefaultReputationTimeout,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &SafeBrowsingClient{
		apiKey:   apiKey,
		endpoint: options.Endpoint,
		client:   &http.Client{Timeout: options.Timeout},
	}
}

type threatEntry struct {
	URL string `json:"url"`
}

type threatInfo struct {
	ThreatTypes      []string      `json:"threatTypes"`
	PlatformTypes    []string      `json:"platformTypes"`
	ThreatEntryTypes []string      `json:"threatEntryTypes"`
	ThreatEntries    []threatEntry `json:"threatEntries"`
}

type clientInfo struct {
	ClientID      string `json:"clientId"`
	ClientVersion string `json:"clientVersion"`
}

type threatMatchesRequest struct {
	Client     clientInfo `json:"client"`
	ThreatInfo threatInfo `json:"threatInfo"`
}

type threatMatchesResponse struct {
	Matches []struct {
		ThreatType   string `json:"threatType"`
		PlatformType string `json:"platformType"`
	} `json:"matches"`
}

// Check опрашивает Safe Browsing по заданной ссылке. Пустой ключ API
// означает, что проверка не настроена: возвращается чистый результат без
// сетевого вызова. Решение о политике при ошибке (fail-open или fail-closed)
// принимает вызывающая сторона.
func (c *SafeBrowsingClient) Check(ctx context.Context, rawURL string) (string, error) {
	if c.apiKey == "" {
		return "", nil
	}

	reqBody := threatMatchesRequest{
		Client: clientInfo{
			ClientID:      "shortlink",
			ClientVersion: "1.0.0",
		},
		ThreatInfo: threatInfo{
			ThreatTypes: []string{
				"MALWARE", "SOCIAL_ENGINEERING", "UNWANTED_SOFTWARE", "POTENTIALLY_HARMFUL_APPLICATION",
			},
			PlatformTypes:    []string{"ANY_PLATFORM"},
			ThreatEntryTypes: []string{"URL"},
			ThreatEntries:    []threatEntry{{URL: rawURL}},
		},
	}
	payload, marshalErr := json.Marshal(reqBody)
	if marshalErr != nil {
		return "", errors.Wrap(marshalErr, "marshal threat matches request")
	}

	req, reqErr := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s?key=%s", c.endpoint, c.apiKey),
		bytes.NewReader(payload),
	)
	if reqErr != nil {
		return "", errors.Wrap(reqErr, "build threat matches request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, doErr := c.client.Do(req)
	if doErr != nil {
		return "", errors.Wrap(doErr, "threat matches request failed")
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode != http.StatusOK {
		return "", errors.Errorf("threat matches request status %d", res.StatusCode)
	}

	var matches threatMatchesResponse
	if decodeErr := json.NewDecoder(res.Body).Decode(&matches); decodeErr != nil {
		return "", errors.Wrap(decodeErr, "decode threat matches response")
	}
	if len(matches.Matches) > 0 {
		return matches.Matches[0].ThreatType, nil
	}
	return "", nil
}
