package pages

import (
	"context"
	"fmt"

	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/usecase/interaction"
)

type LoginPage struct {
	screen
}

func NewLoginPage(ui *interaction.Interactor) *LoginPage {
	return &LoginPage{screen{
		ui: ui,
		ready: entity.Readiness{
			Name:   "login",
			Checks: visible(UsernameInput, PasswordInput, LoginButton),
			Title:  PageTitle,
		},
	}}
}

func (p *LoginPage) Open(ctx context.Context) error {
	return p.ui.Navigate(ctx, PathLogin)
}

func (p *LoginPage) Login(ctx context.Context, username, password string) error {
	if err := p.ui.Fill(ctx, UsernameInput, username); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := p.ui.Fill(ctx, PasswordInput, password); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := p.ui.Click(ctx, LoginButton); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func (p *LoginPage) LoginAs(ctx context.Context, creds entity.Credentials) error {
	return p.Login(ctx, creds.Username, creds.Password)
}

// Error returns the text of the login error banner.
func (p *LoginPage) Error(ctx context.Context) (string, error) {
	return p.ui.ReadText(ctx, ErrorMessage)
}

func (p *LoginPage) HasError(ctx context.Context) bool {
	return p.ui.IsVisible(ctx, ErrorMessage)
}

func (p *LoginPage) DismissError(ctx context.Context) error {
	return p.ui.Click(ctx, ErrorButton)
}
