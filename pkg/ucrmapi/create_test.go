package ucrmapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ubnt/ucrm-plugin-sdk-go/pkg/pluginconfig"
)

var pluginTestdata = filepath.Join("..", "pluginconfig", "testdata")

// writePluginRoot creates a plugin root whose ucrm.json points at ucrmURL.
func writePluginRoot(t *testing.T, ucrmURL string) string {
	t.Helper()
	root := t.TempDir()
	content := fmt.Sprintf(`{"ucrmLocalUrl": %q, "pluginAppKey": %q, "pluginId": 7}`, ucrmURL, testAppKey)
	require.NoError(t, os.WriteFile(filepath.Join(root, pluginconfig.OptionsFile), []byte(content), 0600))
	return root
}

func TestCreate(t *testing.T) {
	c, err := Create(filepath.Join(pluginTestdata, "files_enabled"))
	require.NoError(t, err)
	assert.Equal(t, testAppKey, c.AppKey())
}

func TestCreateWrongPath(t *testing.T) {
	c, err := Create(".")
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrInvalidPluginRootPath)
	assert.NotErrorIs(t, err, ErrConfiguration)
}

func TestCreateDisabledPlugin(t *testing.T) {
	c, err := Create(filepath.Join(pluginTestdata, "files_disabled"))
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorIs(t, err, pluginconfig.ErrPluginDisabled)
	assert.NotErrorIs(t, err, ErrInvalidPluginRootPath)
}

func TestNewFromConfigNil(t *testing.T) {
	_, err := NewFromConfig(nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestCreateEndToEnd(t *testing.T) {
	f := newFakeUcrm()
	f.respondToClients(cannedResponse{status: http.StatusCreated, contentType: "text/plain", body: "lorem ipsum dolor"})
	srv := httptest.NewServer(f.router)
	defer srv.Close()

	c, err := Create(writePluginRoot(t, srv.URL+"/"), WithTimeout(5*time.Second))
	require.NoError(t, err)

	result, err := c.Get(context.Background(), "clients", clientQuery())
	require.NoError(t, err)
	assert.Equal(t, "lorem ipsum dolor", result.Value())

	req := f.lastRequest(t)
	assert.Equal(t, "/api/v1.0/clients", req.Path)
	assert.Equal(t, "order=client.id&direction=DESC", req.RawQuery)
	assert.Equal(t, testAppKey, req.Header.Get(AppKeyHeader))
}

func TestCreateTLS(t *testing.T) {
	f := newFakeUcrm()
	srv := httptest.NewTLSServer(f.router)
	defer srv.Close()
	root := writePluginRoot(t, srv.URL)

	c, err := Create(root)
	require.NoError(t, err)
	_, err = c.Delete(context.Background(), "clients/1")
	require.NoError(t, err)

	c, err = Create(root, WithTLSVerification(true))
	require.NoError(t, err)
	_, err = c.Delete(context.Background(), "clients/1")
	assert.ErrorIs(t, err, ErrTransport)

	c, err = Create(root, WithHTTPClient(srv.Client()), WithTLSVerification(true))
	require.NoError(t, err)
	_, err = c.Delete(context.Background(), "clients/1")
	require.NoError(t, err)
}

func TestCreateErrorsAreDistinguishable(t *testing.T) {
	roots := map[string]error{
		filepath.Join(pluginTestdata, "not_a_plugin"):     ErrInvalidPluginRootPath,
		filepath.Join(pluginTestdata, "files_malformed"):  ErrInvalidPluginRootPath,
		filepath.Join(pluginTestdata, "files_no_app_key"): ErrConfiguration,
		filepath.Join(pluginTestdata, "files_disabled"):   ErrConfiguration,
	}
	for root, expected := range roots {
		t.Run(filepath.Base(root), func(t *testing.T) {
			_, err := Create(root)
			require.Error(t, err)
			assert.True(t, errors.Is(err, expected))
			assert.NotErrorIs(t, err, ErrAPI)
		})
	}
}
