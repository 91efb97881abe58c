package models

// Supported SMS provider backends.
const (
	ProviderHostPinnacle = "hostpinnacle"
	ProviderMobitech     = "mobitech"
)

// ProviderConfig holds the active SMS provider settings loaded from the
// provider configuration store.
type ProviderConfig struct {
	APIURL      string            `json:"api_url"`
	Username    string            `json:"username,omitempty"`
	Password    string            `json:"password,omitempty"`
	APIKey      string            `json:"api_key,omitempty"`
	Provider    string            `json:"provider"`
	Sender      string            `json:"sender,omitempty"`
	HTTPMethod  string            `json:"http_method,omitempty"`
	ContentType string            `json:"content_type,omitempty"`
	ExtraParams map[string]string `json:"extra_params,omitempty"`
	TestMode    bool              `json:"test_mode,omitempty"`
}

// Masked returns a copy safe for display and audit snapshots: secrets are
// replaced, everything else is kept.
func (c ProviderConfig) Masked() ProviderConfig {
	masked := c
	if masked.Password != "" {
		masked.Password = "****"
	}
	if masked.APIKey != "" {
		masked.APIKey = "****"
	}
	return masked
}

// ProviderResult is the normalized outcome of one transport call. The shape
// is provider-agnostic; Raw carries whatever JSON body the provider returned.
type ProviderResult struct {
	OK         bool                   `json:"ok"`
	StatusCode int                    `json:"status_code,omitempty"`
	Raw        map[string]interface{} `json:"json,omitempty"`
	Text       string                 `json:"text,omitempty"`
	Error      string                 `json:"error,omitempty"`
}
