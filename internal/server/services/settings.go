package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/dmitrijs2005/bynderpress/internal/bynder"
	"github.com/dmitrijs2005/bynderpress/internal/common"
	"github.com/dmitrijs2005/bynderpress/internal/cryptox"
	"github.com/dmitrijs2005/bynderpress/internal/dbx"
	"github.com/dmitrijs2005/bynderpress/internal/logging"
	"github.com/dmitrijs2005/bynderpress/internal/server/metrics"
	"github.com/dmitrijs2005/bynderpress/internal/server/models"
	"github.com/dmitrijs2005/bynderpress/internal/server/repositories/repomanager"
)

// domainPattern accepts a bare host name such as "myportal.getbynder.com".
var domainPattern = regexp.MustCompile(`^([a-z-]+\.)?[a-z-]+\.[a-z]+$`)

// User-facing messages of the settings page.
const (
	MsgInvalidDomain     = "Invalid domain, please only enter the domain name"
	MsgInvalidDerivative = "Invalid image derivative, please select one of the fetched derivatives"
	MsgNotConfigured     = "Domain or permanent token not configured!"
	MsgFetchDisabled     = "You must configure both the portal domain and permanent token to fetch derivatives."
	MsgFetchFailed       = "Could not fetch derivatives, please verify domain and permanent token are configured correctly."
	MsgFetchSucceeded    = "The following custom derivatives were retrieved:"
	MsgFetchFirst        = "Please fetch derivatives first"
)

// Settings is the Bynder integration configuration, loaded once per
// operation and passed along explicitly.
type Settings struct {
	Domain            string `json:"domain"`
	PermanentToken    string `json:"permanent_token"`
	DefaultSearchTerm string `json:"default_search_term"`
	ImageDerivative   string `json:"image_derivative"`
	// AvailableDerivatives is nil until derivatives have been fetched once.
	AvailableDerivatives []string `json:"available_derivatives"`
}

// Credentials returns what the Bynder client needs to call the portal.
func (s *Settings) Credentials() bynder.Credentials {
	return bynder.Credentials{Domain: s.Domain, Token: s.PermanentToken}
}

// CanFetchDerivatives reports whether both domain and token are configured.
func (s *Settings) CanFetchDerivatives() bool {
	return s.Credentials().Complete()
}

// DerivativesFetched distinguishes "never fetched" from "none qualified".
func (s *Settings) DerivativesFetched() bool {
	return s.AvailableDerivatives != nil
}

// DerivativeOptions is the image derivative dropdown: "" (webImage) first,
// then every fetched derivative.
func (s *Settings) DerivativeOptions() []string {
	return append([]string{""}, s.AvailableDerivatives...)
}

// SettingsUpdate is a submitted settings form. Nil fields keep their
// stored value.
type SettingsUpdate struct {
	Domain            *string `json:"domain,omitempty"`
	PermanentToken    *string `json:"permanent_token,omitempty"`
	DefaultSearchTerm *string `json:"default_search_term,omitempty"`
	ImageDerivative   *string `json:"image_derivative,omitempty"`
}

// Notice is a rejected field value reported back to the administrator.
type Notice struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldKind selects how a settings field is rendered.
type FieldKind string

const (
	FieldText   FieldKind = "text"
	FieldSelect FieldKind = "select"
)

// Field describes one input of the settings form.
type Field struct {
	Name        string
	Label       string
	Description string
	Section     string
	Kind        FieldKind
	// DescriptionLink is appended to Description as "here".
	DescriptionLink string
}

const (
	SectionGeneral     = "General"
	SectionDerivatives = "Derivatives"
)

// SettingsFields drives the settings form, in display order.
var SettingsFields = []Field{
	{
		Name:        "domain",
		Label:       "Portal domain",
		Description: "Used to synchronize asset usage and set the domain in Compact View. E.g. myportal.getbynder.com",
		Section:     SectionGeneral,
		Kind:        FieldText,
	},
	{
		Name:            "permanent_token",
		Label:           "Permanent token",
		Description:     "Used to fetch derivatives and sync usage. Read more about permanent tokens",
		DescriptionLink: "https://help.bynder.com/system/oauth2-permanent-tokens.htm",
		Section:         SectionGeneral,
		Kind:            FieldText,
	},
	{
		Name:        "default_search_term",
		Label:       "Default search term",
		Description: "When set, Compact View will automatically search for the entered value",
		Section:     SectionGeneral,
		Kind:        FieldText,
	},
	{
		Name:        "image_derivative",
		Label:       "Image derivative",
		Description: "Defines which public derivative will be used after an asset is selected from Compact View. When not configured or available for the selected asset, the webImage will be used as fallback.",
		Section:     SectionDerivatives,
		Kind:        FieldSelect,
	},
}

// Value returns the current value of the named field.
func (s *Settings) Value(field string) string {
	switch field {
	case "domain":
		return s.Domain
	case "permanent_token":
		return s.PermanentToken
	case "default_search_term":
		return s.DefaultSearchTerm
	case "image_derivative":
		return s.ImageDerivative
	}
	return ""
}

// ValidDomain reports whether domain is acceptable. Empty clears the domain.
func ValidDomain(domain string) bool {
	return domain == "" || domainPattern.MatchString(domain)
}

// Apply merges u over s and returns the notices for rejected values. A
// rejected value leaves the previous one in place.
func (s *Settings) Apply(u SettingsUpdate) []Notice {
	var notices []Notice

	if u.Domain != nil {
		if ValidDomain(*u.Domain) {
			s.Domain = *u.Domain
		} else {
			notices = append(notices, Notice{Field: "domain", Message: MsgInvalidDomain})
		}
	}
	if u.PermanentToken != nil {
		s.PermanentToken = *u.PermanentToken
	}
	if u.DefaultSearchTerm != nil {
		s.DefaultSearchTerm = *u.DefaultSearchTerm
	}
	if u.ImageDerivative != nil {
		if *u.ImageDerivative == "" || slices.Contains(s.AvailableDerivatives, *u.ImageDerivative) {
			s.ImageDerivative = *u.ImageDerivative
		} else {
			notices = append(notices, Notice{Field: "image_derivative", Message: MsgInvalidDerivative})
		}
	}

	return notices
}

// SelectDerivatives keeps public, pre-rendered derivatives and sorts their
// prefixes. The result is never nil.
func SelectDerivatives(all []bynder.Derivative) []string {
	out := make([]string, 0, len(all))
	for _, d := range all {
		if d.IsPublic && !d.IsOnTheFly {
			out = append(out, d.Prefix)
		}
	}
	slices.Sort(out)
	return out
}

// DerivativeSource lists the derivatives of a portal.
type DerivativeSource interface {
	Derivatives(ctx context.Context, creds bynder.Credentials) ([]bynder.Derivative, error)
}

// SettingsService loads and stores the settings singleton and runs the
// derivative fetch.
type SettingsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sealer      *cryptox.Sealer
	portal      DerivativeSource
	log         logging.Logger
}

func NewSettingsService(db *sql.DB, m repomanager.RepositoryManager, sealer *cryptox.Sealer, portal DerivativeSource, log logging.Logger) *SettingsService {
	return &SettingsService{
		db:          db,
		repomanager: m,
		sealer:      sealer,
		portal:      portal,
		log:         log.With("module", "settings"),
	}
}

// Load returns the current settings. Settings that were never saved load
// as the zero value.
func (s *SettingsService) Load(ctx context.Context) (*Settings, error) {
	return s.load(ctx, s.db)
}

func (s *SettingsService) load(ctx context.Context, db dbx.DBTX) (*Settings, error) {
	rec, err := s.repomanager.Settings(db).Get(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("error loading settings: %w", err)
	}

	token, err := s.sealer.Open(rec.SealedToken)
	if err != nil {
		return nil, fmt.Errorf("error opening permanent token: %w", err)
	}

	return &Settings{
		Domain:               rec.Domain,
		PermanentToken:       string(token),
		DefaultSearchTerm:    rec.DefaultSearchTerm,
		ImageDerivative:      rec.ImageDerivative,
		AvailableDerivatives: rec.AvailableDerivatives,
	}, nil
}

// Save merges u into the stored settings. Rejected fields are reported as
// notices and keep their previous value; the rest is saved.
func (s *SettingsService) Save(ctx context.Context, u SettingsUpdate) (*Settings, []Notice, error) {
	var (
		current *Settings
		notices []Notice
	)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		if current, err = s.load(ctx, tx); err != nil {
			return err
		}

		notices = current.Apply(u)

		sealed, err := s.sealer.Seal([]byte(current.PermanentToken))
		if err != nil {
			return fmt.Errorf("error sealing permanent token: %w", err)
		}

		return s.repomanager.Settings(tx).Save(ctx, &models.SettingsRecord{
			Domain:               current.Domain,
			SealedToken:          sealed,
			DefaultSearchTerm:    current.DefaultSearchTerm,
			ImageDerivative:      current.ImageDerivative,
			AvailableDerivatives: current.AvailableDerivatives,
		})
	})
	if err != nil {
		return nil, nil, err
	}

	for _, n := range notices {
		metrics.RecordSettingsNotice(n.Field)
		s.log.Warn(ctx, "settings value rejected", "field", n.Field)
	}
	s.log.Info(ctx, "settings saved", "domain", current.Domain)

	return current, notices, nil
}

// FetchDerivatives asks the portal for its derivatives and replaces the
// cached list. On any failure the stored settings are left untouched.
func (s *SettingsService) FetchDerivatives(ctx context.Context) ([]string, error) {
	settings, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	if !settings.CanFetchDerivatives() {
		metrics.RecordDerivativeFetch(metrics.StatusSkipped)
		return nil, common.ErrNotConfigured
	}

	all, err := s.portal.Derivatives(ctx, settings.Credentials())
	if err != nil {
		metrics.RecordDerivativeFetch(metrics.StatusError)
		s.log.Warn(ctx, "derivative fetch failed", "domain", settings.Domain, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrFetchFailed, err)
	}

	derivatives := SelectDerivatives(all)
	if err := s.repomanager.Settings(s.db).SaveDerivatives(ctx, derivatives); err != nil {
		metrics.RecordDerivativeFetch(metrics.StatusError)
		return nil, fmt.Errorf("error saving derivatives: %w", err)
	}

	metrics.RecordDerivativeFetch(metrics.StatusOK)
	s.log.Info(ctx, "derivatives fetched", "count", len(derivatives))
	return derivatives, nil
}
