package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provenly/commerce/internal/inventory"
)

type fakeVerifier struct {
	results map[string]*inventory.VerifyResult
	calls   int
}

func (f *fakeVerifier) Lookup(_ context.Context, authcode string) (*inventory.VerifyResult, error) {
	f.calls++
	res, ok := f.results[authcode]
	if !ok {
		return nil, inventory.ErrAuthcodeNotFound
	}
	res.Views++
	return res, nil
}

func TestVerifyEndpoint(t *testing.T) {
	fv := &fakeVerifier{results: map[string]*inventory.VerifyResult{
		"abcd1234": {
			Authcode:     "abcd1234",
			ProductID:    1,
			ProductTitle: "Heritage Teapot",
			BatchID:      10,
			Views:        2,
			Claimed:      true,
			BatchedAt:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}}
	r := NewRouter()
	(&ProvenanceHandler{Verifier: fv}).Register(r)
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/verify/abcd1234")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Heritage Teapot", body["product_name"])
	assert.EqualValues(t, 3, body["number_of_views"], "every scan counts a view")
	assert.Equal(t, true, body["claimed"])
	assert.Equal(t, 1, fv.calls)
}

func TestVerifyEndpointUnknownAuthcode(t *testing.T) {
	r := NewRouter()
	(&ProvenanceHandler{Verifier: &fakeVerifier{}}).Register(r)
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/verify/nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
