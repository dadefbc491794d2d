package authnz

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc"
	"go.uber.org/zap"
	"gopkg.in/square/go-jose.v2"
)

type OIDCConfig struct {
	URL  string
	Keys []jose.JSONWebKey

	ClientID  string
	UserClaim string
}

type provider struct {
	Config   OIDCConfig
	Verifier *oidc.IDTokenVerifier
}

type OIDC struct {
	providers []*provider
	logger    *zap.Logger
}

type LocalKeySet []jose.JSONWebKey

func (keys LocalKeySet) VerifySignature(ctx context.Context, jwt string) ([]byte, error) {
	jws, err := jose.ParseSigned(jwt)
	if err != nil {
		return nil, fmt.Errorf("oidc: malformed jwt: %v", err)
	}

	keyID := ""
	for _, sig := range jws.Signatures {
		keyID = sig.Header.KeyID
		break
	}

	for _, key := range keys {
		if keyID == "" || key.KeyID == keyID {
			if payload, err := jws.Verify(&key); err == nil {
				return payload, nil
			}
		}
	}

	return nil, errors.New("failed to verify id token signature")
}

func NewOIDCAuthenticator(ctx context.Context, providerConfigs []OIDCConfig, logger *zap.Logger) (Authenticator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	oidcConfig := OIDC{
		providers: make([]*provider, len(providerConfigs)),
		logger:    logger,
	}

	for idx, providerConfig := range providerConfigs {
		var verifier *oidc.IDTokenVerifier

		if providerConfig.UserClaim == "" {
			providerConfig.UserClaim = "sub"
		}

		verifierConfig := &oidc.Config{ClientID: providerConfig.ClientID}

		if len(providerConfig.Keys) > 0 {
			keySet := LocalKeySet(providerConfig.Keys)
			verifier = oidc.NewVerifier(providerConfig.URL, keySet, verifierConfig)
		} else {
			p, err := oidc.NewProvider(ctx, providerConfig.URL)
			if err != nil {
				return nil, fmt.Errorf("discovering %s: %w", providerConfig.URL, err)
			}

			verifier = p.Verifier(verifierConfig)
		}

		oidcConfig.providers[idx] = &provider{
			Config:   providerConfig,
			Verifier: verifier,
		}
	}

	return &oidcConfig, nil
}

func (o *OIDC) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		if header == "" {
			o.logger.Debug("no Authorization header found")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		headerParts := strings.Split(header, " ")

		if len(headerParts) != 2 || headerParts[0] != "Bearer" || headerParts[1] == "" {
			o.logger.Debug("expected Authorization header to contain a Bearer token", zap.String("scheme", headerParts[0]))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		rawIDToken := headerParts[1]

		var idToken *oidc.IDToken
		var err error
		var verifiedProvider *provider

		for _, provider := range o.providers {
			idToken, err = provider.Verifier.Verify(r.Context(), rawIDToken)
			if err == nil {
				verifiedProvider = provider
				break
			}
		}

		if verifiedProvider == nil {
			o.logger.Info("failed to find a provider that could validate the token", zap.Error(err))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		claims := map[string]interface{}{}

		if err := idToken.Claims(&claims); err != nil {
			o.logger.Error("failed to dump the claims into a map", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		user, ok := claims[verifiedProvider.Config.UserClaim].(string)
		if !ok || user == "" {
			o.logger.Error("couldn't extract user from token", zap.String("claim", verifiedProvider.Config.UserClaim))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}
