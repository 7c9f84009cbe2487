package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/smtp"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/config"
)

var ErrSMTPNotConfigured = errors.New("SMTP credentials not configured")

type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

type Mailer interface {
	Send(ctx context.Context, m ContactMessage) error
}

// SMTPMailer sends contact messages with PLAIN auth over STARTTLS.
type SMTPMailer struct {
	host, port string
	user, pass string
	to         string
}

func NewSMTPMailer(cfg config.Config) *SMTPMailer {
	return &SMTPMailer{
		host: cfg.SMTP.Host,
		port: cfg.SMTP.Port,
		user: cfg.SMTP.User,
		pass: cfg.SMTP.Pass,
		to:   cfg.SMTP.To,
	}
}

// headerSafe strips CR and LF so user input cannot add mail headers.
var headerSafe = strings.NewReplacer("\r", " ", "\n", " ")

func composeMessage(from, to string, m ContactMessage) []byte {
	name := headerSafe.Replace(m.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, m.Email, m.Message)

	return []byte("To: " + to + "\r\n" +
		"Subject: Portfolio Contact: " + name + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + headerSafe.Replace(m.Email) + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")
}

// Send ignores ctx; net/smtp has no cancellation.
func (s *SMTPMailer) Send(_ context.Context, m ContactMessage) error {
	if s.user == "" || s.pass == "" {
		return ErrSMTPNotConfigured
	}
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	msg := composeMessage(s.user, s.to, m)
	if err := smtp.SendMail(s.host+":"+s.port, auth, s.user, []string{s.to}, msg); err != nil {
		return fmt.Errorf("failed to send contact email: %w", err)
	}
	return nil
}

type contactForm struct {
	FullName string `form:"fullName" binding:"required,max=100"`
	Email    string `form:"email" binding:"required,email,max=254"`
	Message  string `form:"message" binding:"required,max=5000"`
}

func (s *Server) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{"title": "Contact Me"})
}

// submitContact answers with an HTMX fragment. Failures use 200 too so the
// fragment is swapped in.
func (s *Server) submitContact(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		s.metrics.ContactMessage("invalid")
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, a valid email address and a message.",
		})
		return
	}
	form.FullName = strings.TrimSpace(form.FullName)
	form.Message = strings.TrimSpace(form.Message)
	if form.FullName == "" || form.Message == "" {
		s.metrics.ContactMessage("invalid")
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, a valid email address and a message.",
		})
		return
	}

	visitor := s.visitorHash(c)
	if !s.contact.Allow(visitor) {
		s.metrics.ContactMessage("rate_limited")
		c.HTML(http.StatusTooManyRequests, "contact-error.html", gin.H{
			"error": "You've sent several messages already. Please wait a minute and try again.",
		})
		return
	}

	err := s.mailer.Send(c.Request.Context(), ContactMessage{
		Name:    form.FullName,
		Email:   form.Email,
		Message: form.Message,
	})
	if err != nil {
		s.metrics.ContactMessage("failed")
		s.log.Error("contact email failed", zap.String("visitor", visitor), zap.Error(err))
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	s.metrics.ContactMessage("sent")
	s.log.Info("contact email sent", zap.String("visitor", visitor))
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
