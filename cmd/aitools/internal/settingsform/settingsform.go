// Package settingsform edits provider settings with a huh form and asks for
// confirmation, showing a diff, before anything is saved.
package settingsform

import (
	"context"
	"slices"

	"github.com/charmbracelet/huh"

	"github.com/germanamz/aitools/pkg/providers/provider"
	"github.com/germanamz/aitools/pkg/settings"
)

// Values are the fields the form edits.
type Values struct {
	Provider string
	APIKey   string // empty keeps the stored key
	Model    string

	modelFor string // provider Model was picked for
}

// FromSettings seeds the form from s. The key is left blank so it is never
// echoed back.
func FromSettings(s settings.Settings) Values {
	p := s.Provider()
	return Values{Provider: string(p), Model: s.Model(p), modelFor: string(p)}
}

// ModelChoices returns the models offered for v.Provider. When the provider
// changed since Model was picked, Model is reset to the one stored in current
// for the new provider.
func (v *Values) ModelChoices(current settings.Settings) []string {
	kind, err := provider.ParseKind(v.Provider)
	if err != nil {
		return nil
	}

	stored := current.Model(kind)
	if v.modelFor != v.Provider {
		v.Model = stored
		v.modelFor = v.Provider
	}
	return ModelOptions(v.Provider, stored)
}

// Apply returns a copy of s with v applied.
func Apply(s settings.Settings, v Values) (settings.Settings, error) {
	kind, err := provider.ParseKind(v.Provider)
	if err != nil {
		return nil, err
	}

	out := s.Clone()
	out.SetProvider(kind)
	out.SetAPIKey(kind, v.APIKey)
	out.SetModel(kind, v.Model)
	return out, nil
}

// ModelOptions lists the models offered for p, keeping current selectable
// even when it is not one of the presets.
func ModelOptions(p, current string) []string {
	kind, err := provider.ParseKind(p)
	if err != nil {
		return nil
	}

	opts := kind.ModelOptions()
	if current != "" && !slices.Contains(opts, current) {
		opts = append(opts, current)
	}
	return opts
}

// NewForm builds the settings form bound to v. The model list, and the
// selected model, follow the provider selection.
func NewForm(v *Values, current settings.Settings) *huh.Form {
	providerOpts := make([]huh.Option[string], len(provider.Kinds))
	for i, k := range provider.Kinds {
		providerOpts[i] = huh.NewOption(k.String(), k.String())
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Provider").
				Options(providerOpts...).
				Value(&v.Provider),
			huh.NewInput().
				Title("API key").
				DescriptionFunc(func() string {
					if hasKey(current, v.Provider) {
						return "A key is stored; leave blank to keep it."
					}
					return "No key stored for this provider."
				}, &v.Provider).
				EchoMode(huh.EchoModePassword).
				Value(&v.APIKey),
			huh.NewSelect[string]().
				Title("Model").
				OptionsFunc(func() []huh.Option[string] {
					return huh.NewOptions(v.ModelChoices(current)...)
				}, &v.Provider).
				Value(&v.Model),
		),
	)
}

func hasKey(s settings.Settings, p string) bool {
	k, err := provider.ParseKind(p)
	return err == nil && s.APIKey(k) != ""
}

// Confirm asks whether to save, showing diff.
func Confirm(ctx context.Context, diff string) (bool, error) {
	ok := true
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Save these changes?").
			Description(diff).
			Affirmative("Save").
			Negative("Discard").
			Value(&ok),
	)).RunWithContext(ctx)
	return ok, err
}

// Run edits current interactively. It returns the new settings and whether
// the user confirmed saving them; unchanged settings are never confirmed.
func Run(ctx context.Context, current settings.Settings) (settings.Settings, bool, error) {
	v := FromSettings(current)

	form := NewForm(&v, current)
	if err := form.RunWithContext(ctx); err != nil {
		return nil, false, err
	}

	next, err := Apply(current, v)
	if err != nil {
		return nil, false, err
	}

	diff := settings.Diff(current, next)
	if diff == "" {
		return next, false, nil
	}

	ok, err := Confirm(ctx, diff)
	if err != nil {
		return nil, false, err
	}
	return next, ok, nil
}
