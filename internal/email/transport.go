package email

import (
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
)

// SecurityMode selects how the SMTP session is encrypted.
type SecurityMode int

const (
	// ModeSTARTTLS dials in plaintext and upgrades when the server offers it.
	ModeSTARTTLS SecurityMode = iota
	// ModeImplicitTLS wraps the connection in TLS before any SMTP traffic.
	ModeImplicitTLS
)

// String returns the mode name for logging.
func (m SecurityMode) String() string {
	switch m {
	case ModeImplicitTLS:
		return "implicit-tls"
	case ModeSTARTTLS:
		return "starttls"
	default:
		return "unknown"
	}
}

// ImplicitTLSPort is the SMTPS port where TLS starts before the greeting.
const ImplicitTLSPort = 465

// ModeForPort maps the target port to a security mode: 465 means implicit
// TLS, everything else starts plain and attempts a STARTTLS upgrade.
func ModeForPort(port int) SecurityMode {
	if port == ImplicitTLSPort {
		return ModeImplicitTLS
	}
	return ModeSTARTTLS
}

// Sender delivers one message over a single SMTP session. No retries: a
// failed invocation is reported to the CI workflow, which owns re-runs.
type Sender struct {
	Host     string
	Port     int
	User     string
	Password string
	Logger   *slog.Logger
}

func (s *Sender) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Send opens one SMTP session, transmits msg and quits. Authentication
// happens only when both user and password are configured.
func (s *Sender) Send(msg *Message) error {
	if len(msg.To) == 0 {
		return errors.New("no recipients")
	}

	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))

	var (
		client *smtp.Client
		err    error
	)
	switch ModeForPort(s.Port) {
	case ModeImplicitTLS:
		client, err = s.dialImplicitTLS(addr)
	default:
		client, err = s.dialSTARTTLS(addr)
	}
	if err != nil {
		return err
	}
	defer client.Close()

	if s.User != "" && s.Password != "" {
		auth := smtp.PlainAuth("", s.User, s.Password, s.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(msg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range msg.To {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg.Encode()); err != nil {
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close body: %w", err)
	}

	return client.Quit()
}

func (s *Sender) dialImplicitTLS(addr string) (*smtp.Client, error) {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.Host})
	if err != nil {
		return nil, fmt.Errorf("smtp tls dial: %w", err)
	}
	client, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp handshake: %w", err)
	}
	return client, nil
}

func (s *Sender) dialSTARTTLS(addr string) (*smtp.Client, error) {
	client, err := smtp.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("smtp dial: %w", err)
	}
	if err := client.Hello("localhost"); err != nil {
		client.Close()
		return nil, fmt.Errorf("smtp ehlo: %w", err)
	}

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.Host}); err != nil {
			var protoErr *textproto.Error
			if !errors.As(err, &protoErr) {
				// The TLS handshake itself failed; the connection state
				// is undefined, so the session cannot continue.
				client.Close()
				return nil, fmt.Errorf("smtp starttls: %w", err)
			}
			// The server refused the STARTTLS command outright; the
			// plaintext session is still intact.
			s.logger().Warn("smtp server rejected STARTTLS, continuing in plaintext",
				"host", s.Host, "port", s.Port,
				"mode", ModeSTARTTLS.String(), "reply", protoErr.Error())
		}
	} else {
		// Port 25 relays without STARTTLS still get the report.
		s.logger().Warn("smtp server does not offer STARTTLS, continuing in plaintext",
			"host", s.Host, "port", s.Port, "mode", ModeSTARTTLS.String())
	}
	return client, nil
}
