package email

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"contact-relay/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() InquiryEmailData {
	return InquiryEmailData{
		Name:      "Ann",
		Email:     "a@x.com",
		Phone:     "+12024561111",
		City:      "Phoenix",
		Service:   "Repair",
		Message:   "Hi",
		Page:      "https://example.com/contact",
		UserAgent: "Mozilla/5.0",
	}
}

func TestComposeInquiry_Subject(t *testing.T) {
	c := ComposeInquiry("Stallion SteelWorks", sampleData())
	assert.Equal(t, "Stallion SteelWorks Contact — Ann (Repair)", c.Subject)
	assert.Contains(t, c.Subject, "Ann")
	assert.Contains(t, c.Subject, "Repair")
}

func TestComposeInquiry_SubjectFoldsLineBreaks(t *testing.T) {
	d := sampleData()
	d.Name = "Ann\r\nBcc: victim@example.com"
	c := ComposeInquiry("Site", d)
	assert.NotContains(t, c.Subject, "\n")
	assert.NotContains(t, c.Subject, "\r")
	assert.Equal(t, "Site Contact — Ann Bcc: victim@example.com (Repair)", c.Subject)
}

func TestComposeInquiry_TextBody(t *testing.T) {
	c := ComposeInquiry("Site", sampleData())
	for _, want := range []string{
		"New inquiry:",
		"Name: Ann\n",
		"Email: a@x.com\n",
		"Phone: +12024561111\n",
		"City/Area: Phoenix\n",
		"Service: Repair\n",
		"Message:\nHi\n",
		"Page: https://example.com/contact\n",
		"User-Agent: Mozilla/5.0\n",
	} {
		assert.Contains(t, c.Text, want)
	}
}

func TestComposeInquiry_HTMLEscapesEveryField(t *testing.T) {
	hostile := `<b>hi</b> & "q" 'a'`
	escaped := `&lt;b&gt;hi&lt;/b&gt; &amp; &#34;q&#34; &#39;a&#39;`

	d := InquiryEmailData{
		Name: hostile, Email: hostile, Phone: hostile, City: hostile,
		Service: hostile, Message: hostile, Page: hostile, UserAgent: hostile,
	}
	c := ComposeInquiry("Site", d)

	assert.NotContains(t, c.HTML, "<b>hi</b>")
	assert.Equal(t, 8, strings.Count(c.HTML, escaped))
	// the plain-text part carries values as typed
	assert.Contains(t, c.Text, "Name: "+hostile)
}

func TestComposeInquiry_MessageLineBreaks(t *testing.T) {
	d := sampleData()
	d.Message = "line one\r\nline <two>\nline three"
	c := ComposeInquiry("Site", d)
	assert.Contains(t, c.HTML, "line one<br>line &lt;two&gt;<br>line three")
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;hi&lt;/b&gt;", Escape("<b>hi</b>"))
	assert.Equal(t, "&amp;&lt;&gt;&#34;&#39;", Escape(`&<>"'`))
}

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSender_Send(t *testing.T) {
	fake := &fakeSES{}
	s := newSESSenderWithClient(fake)

	err := s.Send(context.Background(), Message{
		From:    "no-reply@example.com",
		To:      "owner@example.com",
		ReplyTo: "a@x.com",
		Subject: "Subject",
		Text:    "text body",
		HTML:    "<p>html body</p>",
	})
	require.NoError(t, err)

	in := fake.input
	require.NotNil(t, in)
	assert.Equal(t, "no-reply@example.com", aws.ToString(in.FromEmailAddress))
	assert.Equal(t, []string{"owner@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, []string{"a@x.com"}, in.ReplyToAddresses)

	simple := in.Content.Simple
	assert.Equal(t, "Subject", aws.ToString(simple.Subject.Data))
	assert.Equal(t, "UTF-8", aws.ToString(simple.Subject.Charset))
	assert.Equal(t, "text body", aws.ToString(simple.Body.Text.Data))
	assert.Equal(t, "UTF-8", aws.ToString(simple.Body.Text.Charset))
	assert.Equal(t, "<p>html body</p>", aws.ToString(simple.Body.Html.Data))
	assert.Equal(t, "UTF-8", aws.ToString(simple.Body.Html.Charset))
}

func TestSESSender_SendError(t *testing.T) {
	s := newSESSenderWithClient(&fakeSES{err: errors.New("MessageRejected")})
	err := s.Send(context.Background(), Message{From: "a@x.com", To: "b@x.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ses send: MessageRejected")
}

func TestBuildSMTPMessage(t *testing.T) {
	valid := Message{
		From:    "no-reply@example.com",
		To:      "owner@example.com",
		ReplyTo: "a@x.com",
		Subject: "Subject",
		Text:    "text",
		HTML:    "<p>html</p>",
	}

	t.Run("valid message", func(t *testing.T) {
		m, err := buildSMTPMessage(valid)
		require.NoError(t, err)
		var buf bytes.Buffer
		_, err = m.WriteTo(&buf)
		require.NoError(t, err)
		raw := buf.String()
		assert.Contains(t, raw, "Reply-To: <a@x.com>")
		assert.Contains(t, raw, "multipart/alternative")
		assert.Contains(t, raw, "text/plain")
		assert.Contains(t, raw, "text/html")
	})

	t.Run("bad reply-to", func(t *testing.T) {
		bad := valid
		bad.ReplyTo = "not an address"
		_, err := buildSMTPMessage(bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "smtp reply-to")
	})

	t.Run("bad from", func(t *testing.T) {
		bad := valid
		bad.From = ""
		_, err := buildSMTPMessage(bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "smtp from")
	})
}

func TestNewSender(t *testing.T) {
	ctx := context.Background()

	s, err := NewSender(ctx, &config.Config{EmailProvider: config.ProviderLog})
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, s)

	s, err = NewSender(ctx, &config.Config{EmailProvider: config.ProviderSMTP, SMTPHost: "smtp.example.com", SMTPPort: 587})
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, s)

	_, err = NewSender(ctx, &config.Config{EmailProvider: config.ProviderSMTP})
	assert.EqualError(t, err, `email provider "smtp" requires SMTP_HOST`)

	_, err = NewSender(ctx, &config.Config{EmailProvider: "pigeon"})
	assert.EqualError(t, err, `unknown email provider "pigeon"`)
}

func TestLogSender_Send(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, s.Send(context.Background(), Message{From: "a@x.com", To: "b@x.com", Subject: "Hello"}))
	assert.Contains(t, buf.String(), `"subject":"Hello"`)
}
