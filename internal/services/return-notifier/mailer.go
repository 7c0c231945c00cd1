package notifier

import (
	"context"
	"crypto/tls"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	config "github.com/NordCoder/tsreturn/internal/config/return-notifier"
	"github.com/NordCoder/tsreturn/internal/domain/returns"
	"go.uber.org/zap"
)

var _ returns.MessageSender = (*Mailer)(nil)

type Mailer struct {
	addr       string
	auth       smtp.Auth
	useTLS     bool
	timeout    time.Duration
	from       string
	subjPrefix string

	log *zap.Logger
}

func NewMailer(cfg config.SMTP) *Mailer {
	var auth smtp.Auth
	if cfg.User != "" || cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, host(cfg.Addr))
	}
	return &Mailer{
		addr:       cfg.Addr,
		auth:       auth,
		useTLS:     cfg.UseTLS,
		timeout:    cfg.Timeout,
		from:       cfg.From,
		subjPrefix: cfg.SubjPrefix,
		log:        zap.L().With(zap.String("component", "return-notifier.mailer")),
	}
}

func (m *Mailer) WithLogger(l *zap.Logger) *Mailer {
	if l == nil {
		return m
	}
	cp := *m
	cp.log = l.With(zap.String("component", "return-notifier.mailer"))
	return &cp
}

func (m *Mailer) SendEmail(
	ctx context.Context,
	msg returns.EmailMessage,
	resellerID int64,
	clientID *int64,
	event string,
	status *returns.Status,
) error {
	if msg.From == "" {
		msg.From = m.from
	}
	msg.Subject = strings.TrimSpace(m.subjPrefix + " " + msg.Subject)
	raw := buildMessage(msg, resellerID, clientID, event, status)

	start := time.Now()
	log := m.log.With(
		zap.String("smtp_addr", m.addr),
		zap.Bool("tls", m.useTLS),
		zap.String("from", msg.From),
		zap.String("to", msg.To),
		zap.String("event", event),
	)

	if err := ctx.Err(); err != nil {
		return err
	}

	if m.useTLS {
		log.Debug("sending email (TLS)...")
		if err := m.sendTLS(msg.From, msg.To, raw); err != nil {
			log.Error("smtp send failed", zap.Error(err))
			return err
		}
		log.Info("email sent (TLS)", zap.Duration("elapsed", time.Since(start)))
		return nil
	}

	log.Debug("sending email (PLAIN)...")
	if err := smtp.SendMail(m.addr, m.auth, msg.From, []string{msg.To}, raw); err != nil {
		log.Error("sendmail failed", zap.Error(err))
		return err
	}
	log.Info("email sent (PLAIN)", zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (m *Mailer) sendTLS(from, to string, raw []byte) error {
	dialer := net.Dialer{Timeout: m.timeout}
	conn, err := tls.DialWithDialer(&dialer, "tcp", m.addr, &tls.Config{ServerName: host(m.addr)})
	if err != nil {
		return err
	}
	c, err := smtp.NewClient(conn, host(m.addr))
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() { _ = c.Close() }()

	if m.auth != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(m.auth); err != nil {
				return err
			}
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(raw); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func buildMessage(msg returns.EmailMessage, resellerID int64, clientID *int64, event string, status *returns.Status) []byte {
	var b strings.Builder
	b.WriteString("From: " + headerValue(msg.From) + "\r\n")
	b.WriteString("To: " + headerValue(msg.To) + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", headerValue(msg.Subject)) + "\r\n")
	b.WriteString("X-Reseller-Id: " + strconv.FormatInt(resellerID, 10) + "\r\n")
	if clientID != nil {
		b.WriteString("X-Client-Id: " + strconv.FormatInt(*clientID, 10) + "\r\n")
	}
	b.WriteString("X-Event: " + headerValue(event) + "\r\n")
	if status != nil {
		b.WriteString("X-Status: " + strconv.Itoa(int(*status)) + "\r\n")
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n" + msg.Body + "\r\n")
	return []byte(b.String())
}

// headerValue folds CR and LF into spaces so rendered text stays on one header line.
func headerValue(v string) string {
	return strings.TrimSpace(headerBreaks.Replace(v))
}

var headerBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func host(addr string) string {
	if h, _, err := net.SplitHostPort(addr); err == nil {
		return h
	}
	return addr
}
