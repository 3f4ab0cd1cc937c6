package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/bynderpress/internal/adminapi"
	"github.com/dmitrijs2005/bynderpress/internal/common"
)

// settingFields maps the names accepted by "set" onto the settings form
// fields. Short and long names are both accepted.
var settingFields = map[string]string{
	"domain":              "domain",
	"token":               "permanent_token",
	"permanent_token":     "permanent_token",
	"search":              "default_search_term",
	"default_search_term": "default_search_term",
	"derivative":          "image_derivative",
	"image_derivative":    "image_derivative",
}

func (a *App) printSettings(s *adminapi.Settings) {
	token := "not set"
	if s.PermanentTokenSet {
		token = "set"
	}
	derivative := s.ImageDerivative
	if derivative == "" {
		derivative = "webImage"
	}
	available := "not fetched"
	switch {
	case s.DerivativesFetched && len(s.AvailableDerivatives) == 0:
		available = "none"
	case s.DerivativesFetched:
		available = strings.Join(s.AvailableDerivatives, ", ")
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Portal domain:\t%s\n", s.Domain)
	fmt.Fprintf(w, "Permanent token:\t%s\n", token)
	fmt.Fprintf(w, "Default search term:\t%s\n", s.DefaultSearchTerm)
	fmt.Fprintf(w, "Image derivative:\t%s\n", derivative)
	fmt.Fprintf(w, "Available derivatives:\t%s\n", available)
	_ = w.Flush()
}

// ShowSettings prints the current Bynder settings.
func (a *App) ShowSettings(ctx context.Context) error {
	s, err := a.api.GetSettings(ctx)
	if err != nil {
		return err
	}
	a.printSettings(s)
	return nil
}

// Set updates a single settings field. An empty value clears the field.
// The permanent token is prompted for without echo when no value is given.
func (a *App) Set(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: set <domain|token|search|derivative> [value]")
	}
	field, ok := settingFields[args[0]]
	if !ok {
		return fmt.Errorf("unknown field %q", args[0])
	}
	value := strings.Join(args[1:], " ")

	if field == "permanent_token" && value == "" {
		secret, err := getPassword(a.out, "Enter permanent token")
		if err != nil {
			return err
		}
		value = string(secret)
		common.WipeByteArray(secret)
	}

	req := &adminapi.UpdateSettingsRequest{}
	switch field {
	case "domain":
		req.Domain = &value
	case "permanent_token":
		req.PermanentToken = &value
	case "default_search_term":
		req.DefaultSearchTerm = &value
	case "image_derivative":
		req.ImageDerivative = &value
	}

	resp, err := a.api.UpdateSettings(ctx, req)
	if err != nil {
		return err
	}
	for _, n := range resp.Notices {
		a.printf("! %s\n", n.Message)
	}
	if len(resp.Notices) == 0 {
		a.printf("Settings saved\n")
	}
	a.printSettings(&resp.Settings)
	return nil
}

// FetchDerivatives refreshes the derivative list from the portal.
func (a *App) FetchDerivatives(ctx context.Context) error {
	derivatives, err := a.api.FetchDerivatives(ctx)
	if err != nil {
		return err
	}
	if len(derivatives) == 0 {
		a.printf("The portal has no public, pre-rendered derivatives\n")
		return nil
	}
	a.printf("The following custom derivatives were retrieved:\n")
	for _, d := range derivatives {
		a.printf("  - %s\n", d)
	}
	return nil
}

func (a *App) printResult(r *adminapi.SyncResult) {
	a.printf("%s  %s: %d posts, %d usages in %s\n",
		r.StartedAt.Local().Format(time.DateTime), r.Status, r.Posts, r.Usages, r.Duration.Round(time.Millisecond))
	if r.ArchiveKey != "" {
		a.printf("  archived as %s\n", r.ArchiveKey)
	}
	if r.Error != "" {
		a.printf("  error: %s\n", r.Error)
	}
}

// Sync asks the server to run a usage sync now and prints the outcome.
func (a *App) Sync(ctx context.Context) error {
	r, err := a.api.SyncUsage(ctx)
	if err != nil {
		return err
	}
	a.printResult(r)
	return nil
}

// Status prints the scheduler state.
func (a *App) Status(ctx context.Context) error {
	st, err := a.api.SyncStatus(ctx)
	if err != nil {
		return err
	}
	a.printf("Scheduler: %s\n", st.State)
	if !st.NextRun.IsZero() {
		a.printf("Next run:  %s\n", st.NextRun.Local().Format(time.DateTime))
	}
	if st.LastRun != nil {
		a.printf("Last run:\n")
		a.printResult(st.LastRun)
	}
	return nil
}

// Ping checks the server and updates the connectivity mode.
func (a *App) Ping(ctx context.Context) error {
	a.checkOnline(ctx)
	a.printf("Server is %s\n", a.getMode())
	return nil
}
