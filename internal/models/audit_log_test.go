package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLog_SetMetadata(t *testing.T) {
	log := &AuditLog{}
	log.SetMetadata("transaction_id", "abc")
	log.SetMetadata("amount", "12.50")

	assert.Equal(t, JSONBMap{"transaction_id": "abc", "amount": "12.50"}, log.Metadata)
}

func TestAuditLog_String(t *testing.T) {
	userID := uuid.New()
	createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	withUser := &AuditLog{UserID: &userID, Action: AuditActionLogin, Resource: "user", ResourceID: userID.String(), IPAddress: "10.0.0.1", CreatedAt: createdAt}
	anonymous := &AuditLog{Action: AuditActionFailedLogin, Resource: "user", CreatedAt: createdAt}

	assert.Contains(t, withUser.String(), userID.String())
	assert.Contains(t, withUser.String(), "2024-03-01T10:00:00Z")
	assert.Contains(t, anonymous.String(), "anonymous")
}

func TestJSONBMap_ValueAndScan(t *testing.T) {
	original := JSONBMap{"category": "Food", "count": float64(2)}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned JSONBMap
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)

	var fromBytes JSONBMap
	require.NoError(t, fromBytes.Scan([]byte(`{"a":"b"}`)))
	assert.Equal(t, JSONBMap{"a": "b"}, fromBytes)
}

func TestJSONBMap_EmptyAndInvalid(t *testing.T) {
	value, err := JSONBMap{}.Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	var m JSONBMap
	require.NoError(t, m.Scan(nil))
	assert.Nil(t, m)

	assert.Error(t, m.Scan(42))
}
