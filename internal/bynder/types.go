package bynder

// Credentials address one portal. Both fields are required for any call.
type Credentials struct {
	Domain string
	Token  string
}

// Complete reports whether both the domain and the token are set.
func (c Credentials) Complete() bool {
	return c.Domain != "" && c.Token != ""
}

// Derivative is one entry of GET /api/v4/account/derivatives.
type Derivative struct {
	Prefix     string `json:"prefix"`
	IsPublic   bool   `json:"isPublic"`
	IsOnTheFly bool   `json:"isOnTheFly"`
}

// Usage links one asset to one piece of content.
type Usage struct {
	AssetID    string `json:"asset_id"`
	URI        string `json:"uri"`
	Additional string `json:"additional"`
}

// UsageReport is the body of POST /api/media/usage/sync. The portal replaces
// every usage previously reported for IntegrationID with this snapshot.
type UsageReport struct {
	IntegrationID string   `json:"integration_id"`
	URIs          []string `json:"uris"`
	Usages        []Usage  `json:"usages"`
}
