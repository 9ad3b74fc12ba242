// Package email builds and delivers the PageSpeed Insight summary email:
// a plain-text run summary with the HTML report attached when available.
package email

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mazway/psi-notify/internal/report"
	"github.com/mazway/psi-notify/pkg/timeutil"
)

// ErrAttachmentNotFound marks a report path that does not exist. Callers
// warn and send without the attachment instead of aborting the run.
var ErrAttachmentNotFound = errors.New("attachment file not found")

// Attachment is a single file carried by the message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is one outbound email. Built once per invocation, handed to the
// Sender, then discarded.
type Message struct {
	From       string
	To         []string
	Subject    string
	Body       string
	Date       time.Time
	MessageID  string
	Attachment *Attachment
}

// Compose builds the summary email for one run. now must already be in the
// reporting timezone; the subject carries a literal WIB label regardless of
// which zone that actually is.
func Compose(res report.Result, from string, to []string, now time.Time) *Message {
	subject := fmt.Sprintf("PageSpeed Insight Report - %s | %s WIB",
		now.Format(timeutil.FormatSubjectDate), now.Format(timeutil.FormatClock))

	body := fmt.Sprintf(
		"Site     : %s\n"+
			"Summary:\n"+
			"• Status   : %s\n"+
			"• Duration : %s seconds\n\n"+
			"Check the attached HTML report for the full test results\n"+
			"This report is auto-generated and maintained by Mazway",
		res.Site, res.Status, res.Duration)

	return &Message{
		From:      from,
		To:        append([]string(nil), to...),
		Subject:   subject,
		Body:      body,
		Date:      now,
		MessageID: fmt.Sprintf("<%s@psi-notify>", uuid.NewString()),
	}
}

// Attach reads the report at path into the message. The MIME type is
// inferred from the file extension, defaulting to application/octet-stream.
func (m *Message) Attach(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrAttachmentNotFound, path)
		}
		return fmt.Errorf("read attachment: %w", err)
	}

	ctype := mime.TypeByExtension(filepath.Ext(path))
	if ctype == "" {
		ctype = "application/octet-stream"
	}

	m.Attachment = &Attachment{
		Filename:    filepath.Base(path),
		ContentType: ctype,
		Data:        data,
	}
	return nil
}

// Encode renders the message as an RFC 5322 byte stream ready for the SMTP
// DATA command: a plain text/plain message, or multipart/mixed with a
// base64 attachment part when a report is attached.
func (m *Message) Encode() []byte {
	var buf bytes.Buffer

	writeHeader(&buf, "From", m.From)
	writeHeader(&buf, "To", strings.Join(m.To, ", "))
	writeHeader(&buf, "Subject", m.Subject)
	writeHeader(&buf, "Date", m.Date.Format(time.RFC1123Z))
	if m.MessageID != "" {
		writeHeader(&buf, "Message-ID", m.MessageID)
	}
	writeHeader(&buf, "MIME-Version", "1.0")

	if m.Attachment == nil {
		writeHeader(&buf, "Content-Type", `text/plain; charset="utf-8"`)
		buf.WriteString("\r\n")
		buf.WriteString(m.Body)
		buf.WriteString("\r\n")
		return buf.Bytes()
	}

	mw := multipart.NewWriter(&buf)
	writeHeader(&buf, "Content-Type",
		fmt.Sprintf("multipart/mixed; boundary=%q", mw.Boundary()))
	buf.WriteString("\r\n")

	// Writes into a bytes.Buffer cannot fail, so part errors are ignored.
	text, _ := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/plain; charset="utf-8"`},
	})
	fmt.Fprintf(text, "%s\r\n", m.Body)

	part, _ := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {m.Attachment.ContentType},
		"Content-Disposition": {
			fmt.Sprintf("attachment; filename=%q", m.Attachment.Filename),
		},
		"Content-Transfer-Encoding": {"base64"},
	})
	part.Write(wrapBase64(m.Attachment.Data))
	mw.Close()

	return buf.Bytes()
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	fmt.Fprintf(buf, "%s: %s\r\n", key, value)
}

// wrapBase64 encodes data and folds it at 76 columns per RFC 2045.
func wrapBase64(data []byte) []byte {
	const lineLen = 76

	enc := base64.StdEncoding.EncodeToString(data)
	var out bytes.Buffer
	for len(enc) > lineLen {
		out.WriteString(enc[:lineLen])
		out.WriteString("\r\n")
		enc = enc[lineLen:]
	}
	out.WriteString(enc)
	out.WriteString("\r\n")
	return out.Bytes()
}
