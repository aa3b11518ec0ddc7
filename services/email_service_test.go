package services

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"worksmis/milestone"
	"worksmis/models"
	"worksmis/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertHTMLToText(t *testing.T) {
	in := `<html><head><style>p{}</style></head><body><h2>Title</h2><p>Hello <b>there</b></p><ul><li>one</li></ul></body></html>`
	out := convertHTMLToText(in)

	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "- one")
	assert.NotContains(t, out, "p{}")
	assert.NotContains(t, out, "<")
}

func TestNewEmailServiceDisabled(t *testing.T) {
	assert.Nil(t, NewEmailService(&storage.Config{}))
	assert.Nil(t, NewEmailService(&storage.Config{SMTPHost: "smtp.example.org"}))
}

func testService(send sendFunc) *EmailService {
	es := NewEmailService(&storage.Config{
		SMTPHost:      "smtp.example.org",
		SMTPPort:      "587",
		SMTPUser:      "mailer@example.org",
		SMTPPassword:  "secret",
		NotifyEmails:  []string{"ee@example.org", "de@example.org"},
		PublicBaseURL: "https://works.example.org",
	})
	es.send = send
	return es
}

func TestWorkPackageCreated(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg string
	es := testService(func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, string(msg)
		return nil
	})

	comp := milestone.AutoDistribute(milestone.Component{
		Name:           "Canal lining",
		Unit:           "Sqm",
		Total:          decimal.NewFromInt(100),
		MilestoneCount: 3,
	})
	wp := models.WorkPackageGorm{
		ID:             7,
		ReferenceCode:  "WP-ABC12345",
		WorkName:       "Minor canal repair",
		PeriodMonths:   36,
		MilestoneCount: 3,
		CreatedBy:      "je@example.org",
	}

	require.NoError(t, es.WorkPackageCreated(wp, []milestone.Component{comp}))
	assert.Equal(t, "smtp.example.org:587", gotAddr)
	assert.Equal(t, "mailer@example.org", gotFrom)
	assert.Equal(t, []string{"ee@example.org", "de@example.org"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Work package WP-ABC12345 created: Minor canal repair")
	assert.Contains(t, gotMsg, "M1:33.33,M2:33.33,M3:33.34")
	assert.Contains(t, gotMsg, "https://works.example.org/api/works/7")
	assert.Equal(t, 2, strings.Count(gotMsg, "Content-Type: text/"))
}

func TestWorkPackageCreatedSendError(t *testing.T) {
	es := testService(func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	})

	err := es.WorkPackageCreated(models.WorkPackageGorm{ReferenceCode: "WP-1"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWorkPackageCreatedSubjectHeader(t *testing.T) {
	var gotMsg string
	es := testService(func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotMsg = string(msg)
		return nil
	})

	wp := models.WorkPackageGorm{ReferenceCode: "WP-1", WorkName: "Canal\r\nBcc: attacker@evil.test"}
	require.NoError(t, es.WorkPackageCreated(wp, nil))

	headers, _, _ := strings.Cut(gotMsg, "\r\n\r\n")
	for _, line := range strings.Split(headers, "\r\n") {
		assert.False(t, strings.HasPrefix(line, "Bcc:"), "unexpected header %q", line)
	}
	assert.Contains(t, headers, "Subject: Work package WP-1 created: Canal Bcc: attacker@evil.test")
	assert.Len(t, strings.Split(headers, "\r\n"), 5)
}

func TestEncodeSubject(t *testing.T) {
	assert.Equal(t, "Work package WP-1 created", encodeSubject("Work package WP-1 created"))
	assert.Equal(t, "a b c", encodeSubject("a\nb\rc"))

	encoded := encodeSubject("Nala dûrusti")
	assert.True(t, strings.HasPrefix(encoded, "=?utf-8?q?"), encoded)
	assert.NotContains(t, encoded, "\n")
}
