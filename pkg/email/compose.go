package email

import (
	"fmt"
	"html"
	"strings"
)

// InquiryEmailData holds the trimmed fields of one contact inquiry.
type InquiryEmailData struct {
	Name      string
	Email     string
	Phone     string
	City      string
	Service   string
	Message   string
	Page      string
	UserAgent string
}

// Content is the composed subject and bodies for an inquiry email.
type Content struct {
	Subject string
	Text    string
	HTML    string
}

var headerFolder = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// ComposeInquiry builds the notification email for an inquiry. The subject
// names the visitor and the requested service; user values in the HTML body
// are escaped and message line breaks become <br>.
func ComposeInquiry(prefix string, d InquiryEmailData) Content {
	subject := fmt.Sprintf("%s Contact — %s (%s)", prefix, d.Name, d.Service)

	var text strings.Builder
	text.WriteString("New inquiry:\n\n")
	fmt.Fprintf(&text, "Name: %s\n", d.Name)
	fmt.Fprintf(&text, "Email: %s\n", d.Email)
	fmt.Fprintf(&text, "Phone: %s\n", d.Phone)
	fmt.Fprintf(&text, "City/Area: %s\n", d.City)
	fmt.Fprintf(&text, "Service: %s\n\n", d.Service)
	fmt.Fprintf(&text, "Message:\n%s\n\n", d.Message)
	fmt.Fprintf(&text, "Page: %s\n", d.Page)
	fmt.Fprintf(&text, "User-Agent: %s\n", d.UserAgent)

	var body strings.Builder
	body.WriteString("<h2>New inquiry</h2>\n")
	fmt.Fprintf(&body, "<p><strong>Name:</strong> %s<br>\n", Escape(d.Name))
	fmt.Fprintf(&body, "<strong>Email:</strong> %s<br>\n", Escape(d.Email))
	fmt.Fprintf(&body, "<strong>Phone:</strong> %s<br>\n", Escape(d.Phone))
	fmt.Fprintf(&body, "<strong>City/Area:</strong> %s<br>\n", Escape(d.City))
	fmt.Fprintf(&body, "<strong>Service:</strong> %s</p>\n", Escape(d.Service))
	fmt.Fprintf(&body, "<p><strong>Message:</strong><br>%s</p>\n", escapeMultiline(d.Message))
	body.WriteString("<hr>\n")
	fmt.Fprintf(&body, "<p><strong>Page:</strong> %s<br>\n", Escape(d.Page))
	fmt.Fprintf(&body, "<strong>User-Agent:</strong> %s</p>", Escape(d.UserAgent))

	return Content{
		Subject: headerFolder.Replace(subject),
		Text:    text.String(),
		HTML:    body.String(),
	}
}

// Escape replaces &, <, >, " and ' with HTML entities.
func Escape(s string) string {
	return html.EscapeString(s)
}

func escapeMultiline(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(Escape(s), "\n", "<br>")
}
