package imap

import (
	"context"
	"fmt"
	"io"
	"strings"

	emaildomain "mailrag-backend/internal/email/domain"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
)

// Service fetches messages over IMAP for accounts without OAuth providers.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// FetchRecent retrieves the newest messages from the INBOX, mapped to the
// same corpus record shape as the Gmail provider.
func (s *Service) FetchRecent(ctx context.Context, server string, port int, username, password string, maxResults int) ([]emaildomain.Email, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	c, err := client.DialTLS(fmt.Sprintf("%s:%d", server, port), nil)
	if err != nil {
		return nil, fmt.Errorf("imap dial %s:%d: %w", server, port, err)
	}
	defer c.Logout()

	if err := c.Login(username, password); err != nil {
		return nil, fmt.Errorf("imap login %s: %w", username, err)
	}

	mbox, err := c.Select("INBOX", true)
	if err != nil {
		return nil, fmt.Errorf("imap select INBOX: %w", err)
	}
	if mbox.Messages == 0 {
		return []emaildomain.Email{}, nil
	}

	// Sequence numbers are oldest-first; take the tail of the mailbox.
	from := uint32(1)
	to := mbox.Messages
	if mbox.Messages > uint32(maxResults) {
		from = mbox.Messages - uint32(maxResults) + 1
	}
	seqset := new(imap.SeqSet)
	seqset.AddRange(from, to)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}

	messages := make(chan *imap.Message, maxResults)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, items, messages)
	}()

	emails := make([]emaildomain.Email, 0, maxResults)
	for msg := range messages {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		emails = append(emails, convertImapMessage(msg, section))
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("imap fetch: %w", err)
	}

	// Newest first, matching the Gmail provider.
	for i, j := 0, len(emails)-1; i < j; i, j = i+1, j-1 {
		emails[i], emails[j] = emails[j], emails[i]
	}

	return emails, nil
}

func convertImapMessage(msg *imap.Message, section *imap.BodySectionName) emaildomain.Email {
	email := emaildomain.Email{}

	if msg.Envelope != nil {
		email.ID = msg.Envelope.MessageId
		email.Subject = msg.Envelope.Subject
		if len(msg.Envelope.From) > 0 {
			addr := msg.Envelope.From[0]
			if addr.PersonalName != "" {
				email.From = fmt.Sprintf("%s <%s>", addr.PersonalName, addr.Address())
			} else {
				email.From = addr.Address()
			}
		}
	}
	if email.ID == "" {
		email.ID = fmt.Sprintf("imap-%d", msg.SeqNum)
	}

	if r := msg.GetBody(section); r != nil {
		email.Body = extractPlainText(r)
	}
	email.Snippet = makeSnippet(email.Body)

	return email
}

// extractPlainText reads the text/plain parts of a MIME message.
func extractPlainText(r io.Reader) string {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return ""
	}

	var body strings.Builder
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		if h, ok := p.Header.(*mail.InlineHeader); ok {
			contentType, _, err := h.ContentType()
			if err == nil && contentType == "text/plain" {
				data, err := io.ReadAll(p.Body)
				if err == nil {
					body.Write(data)
				}
			}
		}
	}
	return body.String()
}

// makeSnippet produces a short whitespace-collapsed preview of the body,
// standing in for the provider-generated snippet Gmail supplies.
func makeSnippet(body string) string {
	snippet := strings.Join(strings.Fields(body), " ")
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}
	return snippet
}
