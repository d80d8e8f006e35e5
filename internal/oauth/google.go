package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// Email и Photo повторяют форму профиля OAuth-провайдера.
type Email struct {
	Value string `json:"value"`
}

type Photo struct {
	Value string `json:"value"`
}

// Profile — уже аутентифицированный провайдером профиль пользователя.
type Profile struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"displayName"`
	Emails      []Email `json:"emails"`
	Photos      []Photo `json:"photos"`
}

// PrimaryEmail returns the first email or "".
func (p *Profile) PrimaryEmail() string {
	if len(p.Emails) == 0 {
		return ""
	}
	return p.Emails[0].Value
}

// PrimaryPhoto returns the first photo URL or "".
func (p *Profile) PrimaryPhoto() string {
	if len(p.Photos) == 0 {
		return ""
	}
	return p.Photos[0].Value
}

type GoogleProvider struct {
	conf        *oauth2.Config
	userInfoURL string
}

func NewGoogleProvider(clientID, clientSecret, callbackURL string) *GoogleProvider {
	return &GoogleProvider{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

// AuthCodeURL возвращает URL страницы согласия Google с привязанным state.
func (g *GoogleProvider) AuthCodeURL(state string) string {
	return g.conf.AuthCodeURL(state)
}

// FetchProfile обменивает код авторизации на токен и забирает userinfo.
func (g *GoogleProvider) FetchProfile(ctx context.Context, code string) (*Profile, error) {
	token, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	client := g.conf.Client(ctx, token)
	resp, err := client.Get(g.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var info struct {
		Sub     string `json:"sub"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}

	profile := &Profile{
		ID:          info.Sub,
		DisplayName: info.Name,
	}
	if info.Email != "" {
		profile.Emails = []Email{{Value: info.Email}}
	}
	if info.Picture != "" {
		profile.Photos = []Photo{{Value: info.Picture}}
	}
	return profile, nil
}
