package adminapi

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutResponse struct{}

type GetSettingsRequest struct{}

// Settings never carries the permanent token itself, only whether it is set.
type Settings struct {
	Domain               string   `json:"domain"`
	PermanentTokenSet    bool     `json:"permanent_token_set"`
	DefaultSearchTerm    string   `json:"default_search_term"`
	ImageDerivative      string   `json:"image_derivative"`
	AvailableDerivatives []string `json:"available_derivatives"`
	DerivativesFetched   bool     `json:"derivatives_fetched"`
}

// UpdateSettingsRequest changes only the fields that are set.
type UpdateSettingsRequest struct {
	Domain            *string `json:"domain,omitempty"`
	PermanentToken    *string `json:"permanent_token,omitempty"`
	DefaultSearchTerm *string `json:"default_search_term,omitempty"`
	ImageDerivative   *string `json:"image_derivative,omitempty"`
}

type Notice struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type UpdateSettingsResponse struct {
	Settings Settings `json:"settings"`
	Notices  []Notice `json:"notices,omitempty"`
}

type FetchDerivativesRequest struct{}

type FetchDerivativesResponse struct {
	Derivatives []string `json:"derivatives"`
}

type SyncUsageRequest struct{}

type SyncResult struct {
	Status     string        `json:"status"`
	Posts      int           `json:"posts"`
	Usages     int           `json:"usages"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	ArchiveKey string        `json:"archive_key,omitempty"`
	Error      string        `json:"error,omitempty"`
}

type SyncUsageResponse struct {
	Result SyncResult `json:"result"`
}

type SyncStatusRequest struct{}

type SyncStatusResponse struct {
	State   string      `json:"state"`
	NextRun time.Time   `json:"next_run,omitzero"`
	LastRun *SyncResult `json:"last_run,omitempty"`
}
