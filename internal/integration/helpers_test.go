package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// call sends a JSON request through the router and decodes a successful
// response into dst.
func call(t testing.TB, testApp *TestApp, method, path, token string, body any, wantStatus int, dst any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(js))
	}

	req, err := prepareRequest(method, path, reader, bearer(token))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	testApp.App.Routes().ServeHTTP(rec, req)

	require.Equal(t, wantStatus, rec.Code, "unexpected status for %s %s: %s", method, path, rec.Body.String())

	if dst != nil {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(dst))
	}
}

func execSQL(t testing.TB, testApp *TestApp, query string, args ...any) {
	t.Helper()

	_, err := testApp.DB.Exec(context.Background(), query, args...)
	require.NoError(t, err, fmt.Sprintf("failed to execute %q", query))
}

func countRows(t testing.TB, testApp *TestApp, query string, args ...any) int {
	t.Helper()

	var n int
	err := testApp.DB.QueryRow(context.Background(), query, args...).Scan(&n)
	require.NoError(t, err)

	return n
}
