// internal/sov/aliases.go
package sov

import "strings"

// AliasRegistry maps canonical brand names to known aliases. It is built
// once at startup and injected into the matcher; AddAlias and
// AddDomainVariants are configuration-phase calls and must not race with
// resolution.
type AliasRegistry struct {
	aliases map[string][]string
}

// NewAliasRegistry returns a registry seeded with well-known companies and
// their common aliases.
func NewAliasRegistry() *AliasRegistry {
	r := &AliasRegistry{aliases: make(map[string][]string)}

	seed := map[string][]string{
		"google":      {"alphabet", "alphabet inc", "google llc", "google inc"},
		"microsoft":   {"msft", "microsoft corporation", "microsoft corp"},
		"apple":       {"apple inc", "apple computer"},
		"amazon":      {"amazon.com", "amazon web services", "aws"},
		"meta":        {"facebook", "meta platforms", "instagram"},
		"netflix":     {"netflix inc"},
		"salesforce":  {"salesforce.com", "sfdc"},
		"hubspot":     {"hubspot inc"},
		"oracle":      {"oracle corporation", "oracle corp"},
		"ibm":         {"international business machines", "big blue"},
		"adobe":       {"adobe systems", "adobe inc"},
		"intel":       {"intel corporation", "intel corp"},
		"nvidia":      {"nvidia corporation", "nvidia corp"},
		"amd":         {"advanced micro devices"},
		"cisco":       {"cisco systems"},
		"zoom":        {"zoom video", "zoom video communications"},
		"slack":       {"slack technologies"},
		"shopify":     {"shopify inc"},
		"stripe":      {"stripe inc"},
		"paypal":      {"paypal holdings"},
		"block":       {"square", "block inc"},
		"uber":        {"uber technologies"},
		"lyft":        {"lyft inc"},
		"airbnb":      {"airbnb inc"},
		"spotify":     {"spotify technology"},
		"x":           {"twitter", "x corp"},
		"linkedin":    {"linkedin corporation"},
		"tiktok":      {"bytedance"},
		"snap":        {"snapchat", "snap inc"},
		"pinterest":   {"pinterest inc"},
		"dropbox":     {"dropbox inc"},
		"atlassian":   {"atlassian corporation", "jira", "confluence"},
		"github":      {"github inc"},
		"gitlab":      {"gitlab inc"},
		"mongodb":     {"mongo", "mongodb inc"},
		"snowflake":   {"snowflake inc"},
		"databricks":  {"databricks inc"},
		"openai":      {"open ai", "chatgpt"},
		"anthropic":   {"claude"},
		"perplexity":  {"perplexity ai"},
		"mailchimp":   {"intuit mailchimp"},
		"zendesk":     {"zendesk inc"},
	}
	for brand, aliasList := range seed {
		r.AddAlias(brand, aliasList...)
	}

	return r
}

// AddAlias registers aliases for a brand. Brand and aliases are stored
// case-folded.
func (r *AliasRegistry) AddAlias(brand string, aliasList ...string) {
	key := foldBrand(brand)
	if key == "" {
		return
	}
	existing := r.aliases[key]
	for _, alias := range aliasList {
		folded := foldBrand(alias)
		if folded == "" || folded == key {
			continue
		}
		duplicate := false
		for _, have := range existing {
			if have == folded {
				duplicate = true
				break
			}
		}
		if !duplicate {
			existing = append(existing, folded)
		}
	}
	r.aliases[key] = existing
}

// AddDomainVariants registers the domain itself and its bare prefix as
// aliases of brand, e.g. "acme.io" adds "acme.io", "www.acme.io" and "acme".
func (r *AliasRegistry) AddDomainVariants(domain, brand string) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	domain = strings.TrimPrefix(domain, "www.")
	if domain == "" {
		return
	}

	variants := []string{domain, "www." + domain}
	if idx := strings.Index(domain, "."); idx > 0 {
		variants = append(variants, domain[:idx])
	}
	r.AddAlias(brand, variants...)
}

// AliasesOf returns the registered aliases for a brand, or nil.
func (r *AliasRegistry) AliasesOf(brand string) []string {
	return r.aliases[foldBrand(brand)]
}

// IsAlias reports whether entity is a registered alias of brand. Comparison
// runs over the same punctuation-stripped normal form the matcher uses, so
// "Amazon.com" matches the stored "amazon.com".
func (r *AliasRegistry) IsAlias(entity, brand string) bool {
	normalized := normalizeName(entity)
	for _, alias := range r.aliases[foldBrand(brand)] {
		if normalizeName(alias) == normalized {
			return true
		}
	}
	return false
}

// Size returns the number of brands with registered aliases.
func (r *AliasRegistry) Size() int {
	return len(r.aliases)
}

func foldBrand(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
