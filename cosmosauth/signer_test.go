package cosmosauth_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/raywall/book-library-toolkit/cosmosauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chave de 32 bytes 0x00..0x1f
const testKey = "AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8="

func baseRequest() cosmosauth.Request {
	return cosmosauth.Request{
		Verb:         "POST",
		ResourceType: "docs",
		ResourceLink: "dbs/BookLibraryDB/colls/Books",
		Date:         "Tue, 01 Jan 2019 00:00:00 GMT",
	}
}

func TestCanonicalString(t *testing.T) {
	got := cosmosauth.CanonicalString(baseRequest())
	assert.Equal(t, "post\ndocs\ndbs/BookLibraryDB/colls/Books\ntue, 01 jan 2019 00:00:00 gmt\n\n", got)
}

func TestSign_KnownVector(t *testing.T) {
	token, err := cosmosauth.Sign(baseRequest(), testKey)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(token, "type=master&ver=1.0&sig="))
	assert.Equal(t, "type=master&ver=1.0&sig=xZPtkGVxStk+6kSgDVNmKMKmq+F+8rGcYPiKB9JFpvs=", token)
}

func TestSign_MatchesReferenceHMAC(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	payload := "delete\ndocs\ndbs/BookLibraryDB/colls/Books/docs/book001\ntue, 01 jan 2019 00:00:00 gmt\n\n"
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(payload))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	token, err := cosmosauth.Sign(cosmosauth.Request{
		Verb:         "DELETE",
		ResourceType: "DOCS",
		ResourceLink: "dbs/BookLibraryDB/colls/Books/docs/book001",
		Date:         "Tue, 01 Jan 2019 00:00:00 GMT",
	}, base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)

	assert.Equal(t, cosmosauth.TokenPrefix+want, token)
	assert.Equal(t, "type=master&ver=1.0&sig=yIaBLJ4UzRgVtUuS+MFVd+94VTlP4ViJpSP0Dv4nycA=", token)
}

func TestSign_Deterministic(t *testing.T) {
	signer, err := cosmosauth.NewSigner(testKey)
	require.NoError(t, err)

	first := signer.Sign(baseRequest())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, signer.Sign(baseRequest()))
	}

	viaFunc, err := cosmosauth.Sign(baseRequest(), testKey)
	require.NoError(t, err)
	assert.Equal(t, first, viaFunc)
}

func TestSign_AnyInputChangesSignature(t *testing.T) {
	signer, err := cosmosauth.NewSigner(testKey)
	require.NoError(t, err)
	base := signer.Sign(baseRequest())

	tests := []struct {
		name   string
		mutate func(*cosmosauth.Request)
	}{
		{"verb", func(r *cosmosauth.Request) { r.Verb = "GET" }},
		{"resource type", func(r *cosmosauth.Request) { r.ResourceType = "colls" }},
		{"resource link", func(r *cosmosauth.Request) { r.ResourceLink = "dbs/BookLibraryDB/colls/Users" }},
		{"resource link case", func(r *cosmosauth.Request) { r.ResourceLink = "dbs/booklibrarydb/colls/books" }},
		{"date one second later", func(r *cosmosauth.Request) { r.Date = "Tue, 01 Jan 2019 00:00:01 GMT" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)
			assert.NotEqual(t, base, signer.Sign(req))
		})
	}
}

func TestSign_CaseInsensitiveFields(t *testing.T) {
	signer, err := cosmosauth.NewSigner(testKey)
	require.NoError(t, err)

	req := baseRequest()
	req.Verb = "post"
	req.ResourceType = "DOCS"
	req.Date = strings.ToUpper(req.Date)

	assert.Equal(t, signer.Sign(baseRequest()), signer.Sign(req))
}

func TestSign_InvalidKey(t *testing.T) {
	tests := []string{
		"not base64!",
		"AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8",   // sem padding
		"AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8=x", // lixo no final
		"AAE=CAwQ",
	}

	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			token, err := cosmosauth.Sign(baseRequest(), key)
			require.Error(t, err)
			assert.ErrorIs(t, err, cosmosauth.ErrInvalidKey)
			assert.Empty(t, token)

			_, err = cosmosauth.NewSigner(key)
			assert.ErrorIs(t, err, cosmosauth.ErrInvalidKey)
		})
	}
}

func TestHeaderValue(t *testing.T) {
	token, err := cosmosauth.Sign(baseRequest(), testKey)
	require.NoError(t, err)

	escaped := cosmosauth.HeaderValue(token)
	assert.NotContains(t, escaped, "&")
	assert.NotContains(t, escaped, "+")
	assert.NotContains(t, escaped, "=")

	unescaped, err := url.QueryUnescape(escaped)
	require.NoError(t, err)
	assert.Equal(t, token, unescaped)
}

func TestFormatDate(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	ts := time.Date(2018, 12, 31, 21, 0, 0, 0, loc)

	assert.Equal(t, "Tue, 01 Jan 2019 00:00:00 GMT", cosmosauth.FormatDate(ts))
}
