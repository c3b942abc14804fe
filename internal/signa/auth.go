package signa

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"signa-dashboard/internal/models"
)

const (
	pathLogin    = "/auth/login"
	pathMe       = "/auth/me"
	pathRegister = "/auth/register"
)

// Login exchanges credentials for a bearer token. The token is returned to
// the caller, never stored by the client.
func (c *Client) Login(ctx context.Context, nationalID, password string) (*models.AuthToken, error) {
	if err := ValidateLogin(nationalID, password); err != nil {
		return nil, err
	}

	raw, err := c.do(ctx, call{
		method:    http.MethodPost,
		path:      pathLogin,
		body:      models.LoginInput{NationalID: nationalID, Password: password},
		want:      ShapeObject,
		anonymous: true,
	})
	if err != nil {
		return nil, err
	}

	var token models.AuthToken
	if err := decode(pathLogin, ShapeObject, raw, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, &MalformedResponseError{Path: pathLogin, Want: ShapeObject, Detail: "missing access_token"}
	}
	return &token, nil
}

// Me returns the identity behind the current bearer token.
func (c *Client) Me(ctx context.Context) (*models.DoctorAuth, error) {
	raw, err := c.do(ctx, call{method: http.MethodGet, path: pathMe, want: ShapeObject, envelope: "doctor"})
	if err != nil {
		return nil, err
	}
	var doctor models.DoctorAuth
	if err := decode(pathMe, ShapeObject, raw, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// RegisterDoctor creates a doctor account; the remote API gates it with the
// shared secret passed as a query parameter.
func (c *Client) RegisterDoctor(ctx context.Context, in models.RegisterDoctorInput, secret string) (*models.DoctorAuth, error) {
	in = models.RegisterDoctorInput{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		NationalID: strings.TrimSpace(in.NationalID),
		Password:   in.Password,
		Specialty:  strings.TrimSpace(in.Specialty),
	}
	secret = strings.TrimSpace(secret)
	if err := ValidateRegistration(in, secret); err != nil {
		return nil, err
	}

	raw, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     pathRegister,
		query:    url.Values{"secret": []string{secret}},
		body:     in,
		want:     ShapeObject,
		envelope: "doctor",
	})
	if err != nil {
		return nil, err
	}
	var doctor models.DoctorAuth
	if err := decode(pathRegister, ShapeObject, raw, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}
