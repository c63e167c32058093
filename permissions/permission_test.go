package permissions_test

import (
	"smartpark/permissions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_EmbeddedIsValid(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.True(t, data.FindPermissions("/v1/entries", "POST").Skip)
	assert.Equal(t, []string{"superadmin", "admin"}, data.FindPermissions("/v1/admin/slots/status", "PATCH").Permissions)
	assert.Contains(t, data.FindPermissions("/v1/admin/slots/{id}", "GET").Permissions, "operator")
	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/v1/admin/slots/{id}", "DELETE"))
}

func TestFindPermissions_AnyMethod(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints": [
		{"path": "/v1/admin/alerts", "method": "*", "permissions": ["admin"]},
		{"path": "/v1/admin/alerts", "method": "GET", "permissions": ["operator"]}
	]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"operator"}, data.FindPermissions("/v1/admin/alerts", "GET").Permissions)
	assert.Equal(t, []string{"admin"}, data.FindPermissions("/v1/admin/alerts", "POST").Permissions)
}

func TestParse_Rejects(t *testing.T) {
	_, err := permissions.Parse([]byte(`{"endpoints": [{"path": "/v1/admin/alerts", "method": "GET"}]}`))
	assert.Error(t, err)

	_, err = permissions.Parse([]byte(`{"endpoints": [{"method": "GET", "skip": true}]}`))
	assert.Error(t, err)

	_, err = permissions.Parse([]byte(`{`))
	assert.Error(t, err)
}
