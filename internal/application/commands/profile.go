package commands

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"opennoution/internal/application"
	"opennoution/internal/domain"
	"opennoution/internal/ports"
)

// GetUserProfileCommand loads the singleton profile, or nil
type GetUserProfileCommand struct {
	store ports.Collections
}

// NewGetUserProfileCommand creates a new GetUserProfileCommand
func NewGetUserProfileCommand(store ports.Collections) *GetUserProfileCommand {
	return &GetUserProfileCommand{store: store}
}

// Execute runs the get profile command
func (c *GetUserProfileCommand) Execute(ctx context.Context) (*domain.UserProfile, error) {
	return c.store.GetUser(ctx)
}

// SaveUserProfileCommand stores the profile under the fixed ID, replacing
// any previous profile
type SaveUserProfileCommand struct {
	store      ports.Store
	Name       string
	Email      string
	Occupation string
	Purpose    string
}

// NewSaveUserProfileCommand creates a new SaveUserProfileCommand
func NewSaveUserProfileCommand(store ports.Store, profile domain.UserProfile) *SaveUserProfileCommand {
	return &SaveUserProfileCommand{
		store:      store,
		Name:       strings.TrimSpace(profile.Name),
		Email:      strings.TrimSpace(profile.Email),
		Occupation: strings.TrimSpace(profile.Occupation),
		Purpose:    strings.TrimSpace(profile.Purpose),
	}
}

// Validate requires a name and a well-formed email when one is given
func (c *SaveUserProfileCommand) Validate() error {
	return application.Validate(c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&c.Email, is.EmailFormat),
	)
}

// Execute runs the save profile command
func (c *SaveUserProfileCommand) Execute(ctx context.Context) (*domain.UserProfile, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	profile := c.profile()
	err := ports.WithTx(ctx, c.store, func(tx ports.Collections) error {
		return replaceUser(ctx, tx, profile)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

func (c *SaveUserProfileCommand) profile() *domain.UserProfile {
	return &domain.UserProfile{
		ID:         domain.UserProfileID,
		Name:       c.Name,
		Email:      c.Email,
		Occupation: c.Occupation,
		Purpose:    c.Purpose,
		CreatedAt:  now(),
	}
}

// replaceUser clears the singleton profile and inserts profile
func replaceUser(ctx context.Context, tx ports.Collections, profile *domain.UserProfile) error {
	if err := tx.ClearUser(ctx); err != nil {
		return err
	}
	return tx.AddUser(ctx, profile)
}

// GetSettingCommand reads a setting, returning nil when unset
type GetSettingCommand struct {
	store ports.Collections
	Key   string
}

// NewGetSettingCommand creates a new GetSettingCommand
func NewGetSettingCommand(store ports.Collections, key string) *GetSettingCommand {
	return &GetSettingCommand{store: store, Key: key}
}

// Execute runs the get setting command
func (c *GetSettingCommand) Execute(ctx context.Context) (*domain.Setting, error) {
	if strings.TrimSpace(c.Key) == "" {
		return nil, &application.ValidationError{Field: "key", Message: "key is required"}
	}
	return c.store.GetSetting(ctx, c.Key)
}

// SaveSettingCommand inserts or replaces a setting
type SaveSettingCommand struct {
	store ports.Collections
	Key   string
	Value any
}

// NewSaveSettingCommand creates a new SaveSettingCommand
func NewSaveSettingCommand(store ports.Collections, key string, value any) *SaveSettingCommand {
	return &SaveSettingCommand{store: store, Key: key, Value: value}
}

// Execute runs the save setting command
func (c *SaveSettingCommand) Execute(ctx context.Context) error {
	if strings.TrimSpace(c.Key) == "" {
		return &application.ValidationError{Field: "key", Message: "key is required"}
	}
	if err := c.store.PutSetting(ctx, domain.Setting{Key: c.Key, Value: c.Value}); err != nil {
		return fmt.Errorf("failed to save setting %s: %w", c.Key, err)
	}
	return nil
}

// IsOnboardingComplete reports whether the first-run profile form was
// submitted. Anything other than a stored true reads as incomplete.
func IsOnboardingComplete(ctx context.Context, store ports.Collections) (bool, error) {
	setting, err := NewGetSettingCommand(store, domain.SettingOnboardingComplete).Execute(ctx)
	if err != nil {
		return false, err
	}
	return setting.Bool(), nil
}

// CompleteOnboardingCommand saves the profile and marks onboarding done
type CompleteOnboardingCommand struct {
	store   ports.Store
	Profile domain.UserProfile
}

// NewCompleteOnboardingCommand creates a new CompleteOnboardingCommand
func NewCompleteOnboardingCommand(store ports.Store, profile domain.UserProfile) *CompleteOnboardingCommand {
	return &CompleteOnboardingCommand{store: store, Profile: profile}
}

// Execute runs the onboarding command. The profile and the flag are
// written in one transaction.
func (c *CompleteOnboardingCommand) Execute(ctx context.Context) (*domain.UserProfile, error) {
	save := NewSaveUserProfileCommand(c.store, c.Profile)
	if err := save.Validate(); err != nil {
		return nil, err
	}

	profile := save.profile()
	err := ports.WithTx(ctx, c.store, func(tx ports.Collections) error {
		if err := replaceUser(ctx, tx, profile); err != nil {
			return err
		}
		return NewSaveSettingCommand(tx, domain.SettingOnboardingComplete, true).Execute(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete onboarding: %w", err)
	}
	return profile, nil
}
