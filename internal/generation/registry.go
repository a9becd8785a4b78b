package generation

import (
	"fmt"
	"strings"

	"github.com/phrazzld/gtm-api/internal/config"
)

// Vendor names used as registry keys and adapter identities.
const (
	VendorOpenAI    = "openai"
	VendorAnthropic = "anthropic"
	VendorGemini    = "gemini"
)

// vendorPrecedence fixes the failover order: earlier vendors are tried
// first. The order reflects this deployment's cost/quota judgement and is
// deliberately compile-time constant so registry output is reproducible.
var vendorPrecedence = []string{VendorOpenAI, VendorAnthropic, VendorGemini}

// BuildRegistry maps the configured credentials to the ordered list of
// eligible providers. Vendors without any key are skipped; if no vendor
// has a key the registry fails with ErrNoProviders. The function performs
// no I/O and is deterministic for identical input.
func BuildRegistry(cfg config.LLMConfig) ([]ProviderConfig, error) {
	keysByVendor := map[string]string{
		VendorOpenAI:    cfg.OpenAIAPIKeys,
		VendorAnthropic: cfg.AnthropicAPIKeys,
		VendorGemini:    cfg.GeminiAPIKeys,
	}
	modelByVendor := map[string]string{
		VendorOpenAI:    cfg.OpenAIModel,
		VendorAnthropic: cfg.AnthropicModel,
		VendorGemini:    cfg.GeminiModel,
	}

	var providers []ProviderConfig
	for _, vendor := range vendorPrecedence {
		keys := splitKeys(vendor, keysByVendor[vendor])
		if len(keys) == 0 {
			continue
		}
		providers = append(providers, ProviderConfig{
			Name:  vendor,
			Model: modelByVendor[vendor],
			Keys:  keys,
		})
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf(
			"%w: set at least one of GTM_LLM_OPENAI_API_KEYS, GTM_LLM_ANTHROPIC_API_KEYS, GTM_LLM_GEMINI_API_KEYS",
			ErrNoProviders)
	}

	return providers, nil
}

// splitKeys turns a comma-separated key list into ordered credential
// entries with stable key IDs. Blank entries are dropped.
func splitKeys(vendor, raw string) []Credential {
	var creds []Credential
	for _, part := range strings.Split(raw, ",") {
		secret := strings.TrimSpace(part)
		if secret == "" {
			continue
		}
		creds = append(creds, Credential{
			KeyID:  fmt.Sprintf("%s/%d", vendor, len(creds)),
			Secret: secret,
		})
	}
	return creds
}
