package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockNotifier stands in for the real SMTP mailer in pipeline tests.
type mockNotifier struct {
	wasCalled bool
	lastTo    string
	lastTitle string
}

func (m *mockNotifier) SendListingPublishedEmail(toEmail, listingTitle string) error {
	m.wasCalled = true
	m.lastTo = toEmail
	m.lastTitle = listingTitle
	return nil
}

func TestSendListingPublishedEmail_Mock(t *testing.T) {
	mock := &mockNotifier{}
	err := mock.SendListingPublishedEmail("owner@example.com", "Cozy Studio Apartment")

	assert.NoError(t, err)
	assert.True(t, mock.wasCalled)
	assert.Equal(t, "owner@example.com", mock.lastTo)
	assert.Equal(t, "Cozy Studio Apartment", mock.lastTitle)
}
