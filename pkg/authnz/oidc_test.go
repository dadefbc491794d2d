package authnz

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/uswitch/typearchive/pkg/authnz/authnztest"
)

var (
	expectedUser   = "wibble@bibble.com"
	keys, token, _ = authnztest.SetupKeysAndToken(expectedUser, "https://bibble.com", "api", "sub")
	providerConfig = OIDCConfig{
		URL:       "https://bibble.com",
		Keys:      keys,
		ClientID:  "api",
		UserClaim: "sub",
	}
	keys2, token2, _ = authnztest.SetupKeysAndToken(expectedUser, "https://thing.bibble.com", "thing", "sub")
	providerConfig2  = OIDCConfig{
		URL:       "https://thing.bibble.com",
		Keys:      keys2,
		ClientID:  "thing",
		UserClaim: "sub",
	}
)

func TestOIDCHappyPath(t *testing.T) {
	response, user := doOIDCMiddleware(t, []OIDCConfig{providerConfig}, fmt.Sprintf("Bearer %s", token))

	if response.StatusCode != 200 {
		t.Errorf("%d expected but got %d", 200, response.StatusCode)
	}

	if user != expectedUser {
		t.Errorf("'%s' expected, but got '%s'", expectedUser, user)
	}
}

func TestOIDCTwoProviders(t *testing.T) {
	response, user := doOIDCMiddleware(t, []OIDCConfig{providerConfig, providerConfig2}, fmt.Sprintf("Bearer %s", token2))

	if response.StatusCode != 200 {
		t.Errorf("%d expected but got %d", 200, response.StatusCode)
	}

	if user != expectedUser {
		t.Errorf("'%s' expected, but got '%s'", expectedUser, user)
	}
}

func TestOIDCNoAuthHeader(t *testing.T) {
	response, _ := doOIDCMiddleware(t, []OIDCConfig{}, "")

	if response.StatusCode != 401 {
		t.Errorf("%d expected but got %d", 401, response.StatusCode)
	}
}

func TestOIDCAuthHeaderMalformed(t *testing.T) {
	headers := []string{
		"Basic af54hhrd",
		"   ",
		"bearer sgerg",
		"token   ",
		"Bearer ",
	}

	for _, header := range headers {
		response, _ := doOIDCMiddleware(t, []OIDCConfig{providerConfig}, header)

		if response.StatusCode != 401 {
			t.Errorf("'%s': %d expected but got %d", header, 401, response.StatusCode)
		}
	}
}

func TestOIDCNoVerifiedProvider(t *testing.T) {
	response, user := doOIDCMiddleware(t, []OIDCConfig{providerConfig}, fmt.Sprintf("Bearer %s", token2))

	if response.StatusCode != 401 {
		t.Errorf("%d expected but got %d", 401, response.StatusCode)
	}

	if user == expectedUser {
		t.Error("user shouldn't be correct")
	}
}

func TestOIDCExpiredToken(t *testing.T) {
	priv, pub, err := authnztest.Keys()
	if err != nil {
		t.Fatal(err)
	}

	expired, err := authnztest.Token(priv, expectedUser, "https://bibble.com", "api", "sub", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	config := providerConfig
	config.Keys = append(config.Keys[:0:0], priv, pub)

	response, _ := doOIDCMiddleware(t, []OIDCConfig{config}, fmt.Sprintf("Bearer %s", expired))

	if response.StatusCode != 401 {
		t.Errorf("%d expected but got %d", 401, response.StatusCode)
	}
}

func TestOIDCCustomUserClaim(t *testing.T) {
	keys, token, err := authnztest.SetupKeysAndToken(expectedUser, "https://bibble.com", "api", "email")
	if err != nil {
		t.Fatalf("Couldn't create keys and token: %v", err)
	}
	config := OIDCConfig{
		URL:       "https://bibble.com",
		Keys:      keys,
		ClientID:  "api",
		UserClaim: "email",
	}

	response, user := doOIDCMiddleware(t, []OIDCConfig{config}, fmt.Sprintf("Bearer %s", token))

	if response.StatusCode != 200 {
		t.Errorf("%d expected but got %d", 200, response.StatusCode)
	}

	if user != expectedUser {
		t.Errorf("'%s' expected, but got '%s'", expectedUser, user)
	}
}

func TestOIDCNoMatchingUserClaim(t *testing.T) {
	config := providerConfig
	config.UserClaim = "user"

	response, user := doOIDCMiddleware(t, []OIDCConfig{config}, fmt.Sprintf("Bearer %s", token))

	if response.StatusCode != 500 {
		t.Errorf("%d expected but got %d", 500, response.StatusCode)
	}

	if user == expectedUser {
		t.Error("user shouldn't be correct")
	}
}

func TestAnonymous(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	var user string
	NewAnonymousAuthenticator("local").Middleware(userTestHandler(&user)).ServeHTTP(w, req)

	if user != "local" {
		t.Errorf("'%s' expected, but got '%s'", "local", user)
	}
}

func userTestHandler(out *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*out, _ = UserFromContext(r.Context())
		w.WriteHeader(200)
	})
}

func doOIDCMiddleware(t *testing.T, config []OIDCConfig, authorizationHeader string) (*http.Response, string) {
	authenticator, err := NewOIDCAuthenticator(context.Background(), config, nil)
	if err != nil {
		t.Fatalf("Couldn't create the authenticator: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	if authorizationHeader != "" {
		req.Header.Add("Authorization", authorizationHeader)
	}

	w := httptest.NewRecorder()

	var user string
	authenticator.Middleware(userTestHandler(&user)).ServeHTTP(w, req)

	return w.Result(), user
}
